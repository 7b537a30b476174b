package security

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGenerateSessionID(t *testing.T) {
	a := GenerateSessionID()
	b := GenerateSessionID()

	assert.NotEqual(t, a, b)
	_, err := uuid.Parse(a)
	assert.NoError(t, err)
}

func TestIsSecureRequest(t *testing.T) {
	plain := httptest.NewRequest(http.MethodGet, "/login", nil)
	assert.False(t, IsSecureRequest(plain))

	proxied := httptest.NewRequest(http.MethodGet, "/login", nil)
	proxied.Header.Set("X-Forwarded-Proto", "https")
	assert.True(t, IsSecureRequest(proxied))

	direct := httptest.NewRequest(http.MethodGet, "/login", nil)
	direct.TLS = &tls.ConnectionState{}
	assert.True(t, IsSecureRequest(direct))
}

func TestSessionCookies(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/login", nil)

	cookie := SessionCookie(r, "session_id", "abc", time.Hour)
	assert.Equal(t, "session_id", cookie.Name)
	assert.Equal(t, "abc", cookie.Value)
	assert.Equal(t, 3600, cookie.MaxAge)
	assert.True(t, cookie.HttpOnly)
	assert.False(t, cookie.Secure)

	expired := ExpiredSessionCookie(r, "session_id")
	assert.Equal(t, -1, expired.MaxAge)
	assert.Empty(t, expired.Value)
}
