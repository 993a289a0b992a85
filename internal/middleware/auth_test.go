package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-engine/internal/config"
)

func newJWT(t *testing.T, secret, lifetime string) *config.JWT {
	t.Helper()
	t.Setenv("JWT_SECRET", secret)
	t.Setenv("JWT_TOKEN_LIFETIME", lifetime)
	j, err := config.NewJWT()
	require.NoError(t, err)
	return j
}

// serveAuth runs req through Auth and returns the claims the inner handler
// saw, if any.
func serveAuth(t *testing.T, j *config.JWT, req *http.Request) *config.SessionClaims {
	t.Helper()
	var (
		claims *config.SessionClaims
		called bool
	)
	h := Auth(slog.New(slog.NewTextHandler(io.Discard, nil)), j)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			claims, _ = SessionClaims(r.Context())
		}),
	)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.True(t, called, "request was not passed on")
	assert.Equal(t, http.StatusOK, rec.Code)
	return claims
}

func TestAuthAttachesClaims(t *testing.T) {
	j := newJWT(t, "secret", "1h")
	token, err := j.SignSession("abc")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/game/abc", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	claims := serveAuth(t, j, req)
	require.NotNil(t, claims)
	assert.Equal(t, "abc", claims.SessionID)
}

func TestAuthReadsQueryToken(t *testing.T) {
	j := newJWT(t, "secret", "1h")
	token, err := j.SignSession("abc")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/game/abc/connect?token="+token, nil)
	claims := serveAuth(t, j, req)
	require.NotNil(t, claims)
	assert.Equal(t, "abc", claims.SessionID)

	// a header always wins, even a malformed one
	req = httptest.NewRequest(http.MethodGet, "/game/abc/connect?token="+token, nil)
	req.Header.Set("Authorization", "Basic Zm9vOmJhcg==")
	assert.Nil(t, serveAuth(t, j, req))
}

func TestAuthPassesBadTokensThrough(t *testing.T) {
	j := newJWT(t, "secret", "1h")

	expired, err := newJWT(t, "secret", "-1m").SignSession("abc")
	require.NoError(t, err)
	foreign, err := newJWT(t, "other", "1h").SignSession("abc")
	require.NoError(t, err)

	for name, token := range map[string]string{
		"expired": expired,
		"foreign": foreign,
		"garbage": "not.a.jwt",
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/game/abc", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			assert.Nil(t, serveAuth(t, j, req))
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/game/abc", nil)
	assert.Nil(t, serveAuth(t, j, req))
}
