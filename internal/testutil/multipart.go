// multipart.go - Multipart request builders for handler tests
package testutil

import (
	"bytes"
	"mime/multipart"
	"net/textproto"
)

// MultipartFile builds a multipart body with a single file part.
// It returns the body and its Content-Type header value.
func MultipartFile(field, filename string, content []byte) (*bytes.Buffer, string) {
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	part, _ := writer.CreateFormFile(field, filename)
	part.Write(content)
	writer.Close()
	return body, writer.FormDataContentType()
}

// MultipartEmptyFilename builds a body whose file part carries filename="",
// as browsers send when no file was chosen.
func MultipartEmptyFilename(field string) (*bytes.Buffer, string) {
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename=""`)
	h.Set("Content-Type", "application/octet-stream")
	part, _ := writer.CreatePart(h)
	part.Write(nil)
	writer.Close()
	return body, writer.FormDataContentType()
}

// MultipartField builds a body with a plain text field only.
func MultipartField(name, value string) (*bytes.Buffer, string) {
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	writer.WriteField(name, value)
	writer.Close()
	return body, writer.FormDataContentType()
}
