package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dmuuo/portfolio-backend/database"
	"github.com/dmuuo/portfolio-backend/models"
	"github.com/dmuuo/portfolio-backend/services"
)

const testJWTSecret = "test-secret"

type testEnv struct {
	router *chi.Mux
	db     database.Database
	gormDB *gorm.DB
}

// newTestEnv builds a full router over an in-memory sqlite store and a
// temporary upload directory.
func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWithConfig(t, nil)
}

func newTestEnvWithConfig(t *testing.T, extra map[string]string) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(gormDB))

	uploader, err := services.NewUploader(t.TempDir())
	require.NoError(t, err)

	db := database.New(gormDB)
	cfg := map[string]string{"JWT_SECRET": testJWTSecret}
	for k, v := range extra {
		cfg[k] = v
	}

	router, err := newRouter(db, uploader, withConfig(cfg))
	require.NoError(t, err)

	return &testEnv{router: router, db: db, gormDB: gormDB}
}

// seedUser creates a user and returns it with a valid bearer token.
func (e *testEnv) seedUser(t *testing.T, role string) (*models.User, string) {
	t.Helper()

	user := &models.User{
		Username:     "user-" + uuid.NewString()[:8],
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
		Role:         role,
	}
	require.NoError(t, e.db.UserRepo().Add(user))

	token, err := newAuthMiddleware(testJWTSecret).issueToken(user.ID, user.Username, user.Role)
	require.NoError(t, err)
	return user, token
}

func (e *testEnv) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

// jsonRequest builds a request with a JSON body.
func jsonRequest(t *testing.T, method, path string, body any, token string) *http.Request {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

// multipartRequest builds a multipart form request from field values. Fields
// may repeat to submit list values as arrays.
func multipartRequest(t *testing.T, method, path string, fields [][2]string, token string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, field := range fields {
		require.NoError(t, writer.WriteField(field[0], field[1]))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}
