package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"storeapi/internal/handlers"
	authmw "storeapi/internal/middleware/auth"
	"storeapi/internal/models"
	"storeapi/internal/repo"
	"storeapi/internal/service"
	httpserver "storeapi/internal/transport/http"
)

var (
	testJWTSecret     = []byte("test-access-secret")
	testRefreshSecret = []byte("test-refresh-secret")
)

type testEnv struct {
	T    *testing.T
	E    *echo.Echo
	DB   *gorm.DB
	Repo *repo.GormRepo
	Svc  *service.AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)

	// a pooled second connection would see its own empty in-memory db
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)

	require.NoError(t, db.AutoMigrate(
		&models.Store{},
		&models.Product{},
		&models.User{},
		&models.BlocklistEntry{},
	))

	r := repo.New(db)
	svc := &service.AuthService{
		Repo:          r,
		JWTSecret:     testJWTSecret,
		RefreshSecret: testRefreshSecret,
	}

	e := echo.New()
	httpserver.Register(e, &httpserver.Deps{
		AuthHandler:    &handlers.AuthHandler{Svc: svc},
		StoreHandler:   &handlers.StoreHandler{Repo: r},
		ProductHandler: &handlers.ProductHandler{Repo: r},
		AuthMW:         authmw.New(r, testJWTSecret),
	})

	return &testEnv{T: t, E: e, DB: db, Repo: r, Svc: svc}
}

func (env *testEnv) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	env.T.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) login(username string) (access, refresh string) {
	env.T.Helper()

	creds := map[string]string{"username": username, "password": "secret123"}

	rec := env.do(http.MethodPost, "/register", creds, "")
	require.Equal(env.T, http.StatusCreated, rec.Code)

	rec = env.do(http.MethodPost, "/login", creds, "")
	require.Equal(env.T, http.StatusOK, rec.Code)

	var resp struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(env.T, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(env.T, resp.AccessToken)
	require.NotEmpty(env.T, resp.RefreshToken)
	return resp.AccessToken, resp.RefreshToken
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var resp struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error
}
