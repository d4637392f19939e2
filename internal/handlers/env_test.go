package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mkhaliddev/foodrush/internal/models"
	"github.com/mkhaliddev/foodrush/internal/mykafka"
	"github.com/mkhaliddev/foodrush/internal/service/lifecycle"
	"github.com/mkhaliddev/foodrush/internal/service/qr"
	"github.com/mkhaliddev/foodrush/internal/service/token"
	"github.com/mkhaliddev/foodrush/internal/uploads"
)

type testEnv struct {
	T     *testing.T
	E     *echo.Echo
	DB    *gorm.DB
	Auth  *AuthHandler
	Food  *FoodHandler
	Order *OrderHandler
	Files *uploads.Storage
}

func newTestEnv(t *testing.T) *testEnv {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.FoodItem{},
		&models.Order{},
		&models.MadeOrder{},
		&models.CompletedOrder{},
		&models.RefreshToken{},
	))

	files, err := uploads.NewStorage(t.TempDir(), "http://localhost:5000")
	require.NoError(t, err)

	prod := &mykafka.Producer{}
	timeout := 5 * time.Second

	return &testEnv{
		T:    t,
		E:    echo.New(),
		DB:   db,
		Auth: &AuthHandler{
			DB:       db,
			Tokens:   &token.Service{DB: db, JWTSecret: []byte("test-secret"), RefreshSecret: []byte("test-refresh")},
			Producer: prod,
			Timeout:  timeout,
		},
		Food: &FoodHandler{DB: db, Files: files, Producer: prod, Timeout: timeout},
		Order: &OrderHandler{
			Svc:      lifecycle.NewService(db),
			Producer: prod,
			QR:       qr.Generator{BaseURL: "http://localhost:5000"},
			Timeout:  timeout,
		},
		Files: files,
	}
}

func (env *testEnv) doJSONRequest(method, target string, payload any) (*httptest.ResponseRecorder, echo.Context) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(env.T, err)
		body = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return rec, env.E.NewContext(req, rec)
}

func (env *testEnv) doMultipartRequest(target string, fields map[string]string, fileField, fileName string, fileContent []byte) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(env.T, w.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := w.CreateFormFile(fileField, fileName)
		require.NoError(env.T, err)
		_, err = fw.Write(fileContent)
		require.NoError(env.T, err)
	}
	require.NoError(env.T, w.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	return rec, env.E.NewContext(req, rec)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}
