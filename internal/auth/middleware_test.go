package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protectedRouter(a *Authority, hit *bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protegido", RequireAuth(a), func(c *gin.Context) {
		*hit = true
		claims, _ := ClaimsFrom(c)
		c.JSON(http.StatusOK, gin.H{"user": claims.Username})
	})
	return r
}

func TestRequireAuthMissingHeader(t *testing.T) {
	var hit bool
	r := protectedRouter(testAuthority(), &hit)

	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Token no proporcionado"}`, rec.Body.String())
	assert.False(t, hit, "handler must not run without a token")
}

func TestRequireAuthMalformedToken(t *testing.T) {
	var hit bool
	r := protectedRouter(testAuthority(), &hit)

	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Token inválido"}`, rec.Body.String())
	assert.False(t, hit)
}

func TestRequireAuthExpiredToken(t *testing.T) {
	a := testAuthority()
	var hit bool
	r := protectedRouter(a, &hit)

	token, err := a.LoginWithTTL("admin", "correct", 0)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Token expirado"}`, rec.Body.String())
	assert.False(t, hit)
}

func TestRequireAuthBearerPrefixOptional(t *testing.T) {
	a := testAuthority()
	token, err := a.LoginWithTTL("admin", "correct", time.Hour)
	require.NoError(t, err)

	for _, header := range []string{token, "Bearer " + token, "bearer " + token} {
		var hit bool
		r := protectedRouter(a, &hit)

		req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code, "header %q", header)
		assert.True(t, hit)
	}
}
