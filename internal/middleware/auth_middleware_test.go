package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ejoh/storefront-backend/pkg/util"
)

const testSecret = "test-secret"

func setupAuthMiddlewareTest(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	m := NewAuthMiddleware(testSecret)
	router.GET("/protected", m.Authenticate(), func(c *gin.Context) {
		sessionID, _ := GetSessionID(c)
		email, _ := GetSessionEmail(c)
		c.JSON(http.StatusOK, gin.H{
			"session_id": sessionID,
			"email":      email,
		})
	})
	return router
}

func performAuth(router *gin.Engine, header, query string) *httptest.ResponseRecorder {
	path := "/protected"
	if query != "" {
		path += "?token=" + query
	}
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	router := setupAuthMiddlewareTest(t)

	token, err := util.GenerateToken(1, "demo@example.com", "Demo User", testSecret, time.Hour)
	require.NoError(t, err)

	w := performAuth(router, "Bearer "+token, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "demo@example.com")
}

func TestAuthMiddleware_TokenFromQuery(t *testing.T) {
	router := setupAuthMiddlewareTest(t)

	token, err := util.GenerateToken(1, "demo@example.com", "Demo User", testSecret, time.Hour)
	require.NoError(t, err)

	w := performAuth(router, "", token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	router := setupAuthMiddlewareTest(t)

	w := performAuth(router, "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_UNAUTHORIZED")
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	router := setupAuthMiddlewareTest(t)

	w := performAuth(router, "NotBearer abc", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_TOKEN_INVALID")
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	router := setupAuthMiddlewareTest(t)

	token, err := util.GenerateToken(1, "demo@example.com", "Demo User", testSecret, -time.Hour)
	require.NoError(t, err)

	w := performAuth(router, "Bearer "+token, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_TOKEN_EXPIRED")
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	router := setupAuthMiddlewareTest(t)

	token, err := util.GenerateToken(1, "demo@example.com", "Demo User", "other-secret", time.Hour)
	require.NoError(t, err)

	w := performAuth(router, "Bearer "+token, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_TOKEN_INVALID")
}
