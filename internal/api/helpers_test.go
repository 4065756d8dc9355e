package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/sales-advisor/backend/internal/analysis"
	"github.com/sales-advisor/backend/internal/llm"
	"github.com/sales-advisor/backend/internal/parser"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.DiscardHandler)

func newTestDeps(completer llm.Completer) *Dependencies {
	return &Dependencies{
		Parser:        parser.NewCSVTableParser(parser.MaxUploadBytes),
		Analyzer:      analysis.NewAnalyzer(analysis.NewMemoryEngine(), analysis.WithLogger(discard)),
		Completer:     completer,
		Provider:      "mock",
		LLMConfigured: true,
		Version:       "test",
		Logger:        discard,
	}
}

// newTestServer wires handlers and middleware the way the server command does.
func newTestServer(deps *Dependencies, bodyLimit int64) *echo.Echo {
	e := echo.New()
	SetupMiddleware(e, MiddlewareConfig{
		Logger:               discard,
		BodyLimitBytes:       bodyLimit,
		EnableCORS:           true,
		EnableRequestLogging: true,
	})
	RegisterRoutes(e, NewHandlers(deps))
	return e
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, r io.Reader) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(r).Decode(&out))
	return out
}

func requireEnvelope(t *testing.T, rec *httptest.ResponseRecorder, status int, message, code string) {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
	body := decodeJSON(t, rec.Body)
	require.Equal(t, false, body["success"])
	require.Equal(t, message, body["error"])
	require.Equal(t, code, body["code"])
}
