package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/munihub/civic-portal/internal/utils"
)

const testSecret = "test-secret"

func protectedServer(roles ...string) *echo.Echo {
	e := echo.New()
	g := e.Group("/v1")
	g.Use(JWTAuth(testSecret))
	g.Use(RequireRole(roles...))
	g.GET("/ping", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"user_id": c.Get("user_id"), "role": c.Get("role")})
	})
	return e
}

func doGet(e *echo.Echo, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/v1/ping", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuth(t *testing.T) {
	e := protectedServer("CITIZEN")

	t.Run("missing token", func(t *testing.T) {
		rec := doGet(e, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := doGet(e, "not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		tok, err := utils.NewAccessToken("other-secret", 1, "CITIZEN", 5)
		require.NoError(t, err)
		rec := doGet(e, tok.Token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		tok, err := utils.NewAccessToken(testSecret, 1, "CITIZEN", 5)
		require.NoError(t, err)
		rec := doGet(e, tok.Token)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	admins := protectedServer("ADMIN")

	citizen, err := utils.NewAccessToken(testSecret, 1, "CITIZEN", 5)
	require.NoError(t, err)
	admin, err := utils.NewAccessToken(testSecret, 2, "ADMIN", 5)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, doGet(admins, citizen.Token).Code)
	assert.Equal(t, http.StatusOK, doGet(admins, admin.Token).Code)
}
