package loggingmw

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/require"
)

func runLogged(t *testing.T, prepare func(*http.Request)) string {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	e := echo.New()
	e.Use(middleware.RequestID(), RequestLogger(logger))
	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if prepare != nil {
		prepare(req)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	return buf.String()
}

func TestRequestLoggerClientRequestID(t *testing.T) {
	out := runLogged(t, func(req *http.Request) {
		req.Header.Set(echo.HeaderXRequestID, "client-id-1")
	})
	require.Contains(t, out, `"request_id":"client-id-1"`)
	require.Contains(t, out, `"status":200`)
}

// Ids generated by the RequestID middleware land on the response header
// only; the log line must still carry them.
func TestRequestLoggerGeneratedRequestID(t *testing.T) {
	out := runLogged(t, nil)
	require.Contains(t, out, `"request_id":`)
}
