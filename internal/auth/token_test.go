package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseAdminToken(t *testing.T) {
	secret := "test-secret"

	t.Run("RoundTrip", func(t *testing.T) {
		token, err := GenerateAdminToken(secret, "admin@charmforge.in")
		require.NoError(t, err)

		email, err := ParseAdminToken(secret, token)
		require.NoError(t, err)
		assert.Equal(t, "admin@charmforge.in", email)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		token, err := GenerateAdminToken(secret, "admin@charmforge.in")
		require.NoError(t, err)

		_, err = ParseAdminToken("other-secret", token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := ParseAdminToken(secret, "not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestExtractAccessToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newCtx := func() (*gin.Context, *httptest.ResponseRecorder) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/", nil)
		return c, w
	}

	t.Run("FromCookie", func(t *testing.T) {
		c, _ := newCtx()
		c.Request.AddCookie(&http.Cookie{Name: "access_token", Value: "cookie-token"})
		assert.Equal(t, "cookie-token", ExtractAccessToken(c))
	})

	t.Run("FromHeader", func(t *testing.T) {
		c, _ := newCtx()
		c.Request.Header.Set("Authorization", "Bearer header-token")
		assert.Equal(t, "header-token", ExtractAccessToken(c))
	})

	t.Run("CookieWinsOverHeader", func(t *testing.T) {
		c, _ := newCtx()
		c.Request.AddCookie(&http.Cookie{Name: "access_token", Value: "cookie-token"})
		c.Request.Header.Set("Authorization", "Bearer header-token")
		assert.Equal(t, "cookie-token", ExtractAccessToken(c))
	})

	t.Run("Missing", func(t *testing.T) {
		c, _ := newCtx()
		assert.Equal(t, "", ExtractAccessToken(c))
	})
}
