package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gstbooks/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "test-secret"
	testIssuer = "gstbooks"
)

func authRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ping", AuthMiddleware(testSecret, testIssuer), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"company_id": CompanyID(c),
			"user_id":    UserID(c),
		})
	})
	return r
}

func ping(t *testing.T, token string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	authRouter().ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	token, err := util.GenerateToken(testSecret, testIssuer, 7, 42, "accountant", time.Hour)
	require.NoError(t, err)

	w := ping(t, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"company_id":7`)
	assert.Contains(t, w.Body.String(), `"user_id":42`)
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	w := ping(t, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareBadSignature(t *testing.T) {
	token, err := util.GenerateToken("other-secret", testIssuer, 7, 42, "accountant", time.Hour)
	require.NoError(t, err)

	w := ping(t, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareWrongIssuer(t *testing.T) {
	token, err := util.GenerateToken(testSecret, "someone-else", 7, 42, "accountant", time.Hour)
	require.NoError(t, err)

	w := ping(t, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareNoCompanyScope(t *testing.T) {
	token, err := util.GenerateToken(testSecret, testIssuer, 0, 42, "accountant", time.Hour)
	require.NoError(t, err)

	w := ping(t, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
