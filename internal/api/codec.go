// codec.go - JSON / MessagePack content negotiation
package api

import (
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/vmihailenco/msgpack/v5"
)

// MIMEApplicationMsgpack is the media type for MessagePack bodies.
const MIMEApplicationMsgpack = "application/msgpack"

var errEmptyBody = errors.New("request body is empty")

func isMsgpack(mediaType string) bool {
	return strings.Contains(mediaType, MIMEApplicationMsgpack) ||
		strings.Contains(mediaType, "application/x-msgpack")
}

// respond writes body as MessagePack when the client accepts it, JSON otherwise.
func respond(c echo.Context, status int, body interface{}) error {
	if isMsgpack(c.Request().Header.Get(echo.HeaderAccept)) {
		data, err := msgpack.Marshal(body)
		if err != nil {
			return err
		}
		return c.Blob(status, MIMEApplicationMsgpack, data)
	}
	return c.JSON(status, body)
}

// decodeBody reads a JSON or MessagePack request body into dst.
func decodeBody(c echo.Context, dst interface{}) error {
	req := c.Request()
	if req.Body == nil {
		return errEmptyBody
	}

	var err error
	if isMsgpack(req.Header.Get(echo.HeaderContentType)) {
		err = msgpack.NewDecoder(req.Body).Decode(dst)
	} else {
		err = json.NewDecoder(req.Body).Decode(dst)
	}
	if errors.Is(err, io.EOF) {
		return errEmptyBody
	}
	return err
}
