package httpserver

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mkravets/storeline/internal/middleware/auth"
	"github.com/mkravets/storeline/internal/transport"
)

func TestRegisterAndLoginHandlers(t *testing.T) {
	env := newTestEnv(t)

	creds := map[string]string{"username": "buyer", "password": "long-enough-password"}

	rec, c := env.doJSON(http.MethodPost, "/api/v1/register", creds)
	require.NoError(t, env.Auth.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, c = env.doJSON(http.MethodPost, "/api/v1/login", creds)
	require.NoError(t, env.Auth.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeBody[transport.TokenPairResponse](t, rec)
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)

	cookies := rec.Result().Cookies()
	names := make(map[string]bool, len(cookies))
	for _, ck := range cookies {
		names[ck.Name] = true
		require.True(t, ck.HttpOnly)
	}
	require.True(t, names[auth.AccessCookieName])
	require.True(t, names["refreshToken"])
}

func TestRegisterShortPasswordReturns400(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSON(http.MethodPost, "/api/v1/register", map[string]string{
		"username": "buyer",
		"password": "short",
	})
	require.NoError(t, env.Auth.Register(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterDuplicateReturns409(t *testing.T) {
	env := newTestEnv(t)

	creds := map[string]string{"username": "buyer", "password": "long-enough-password"}

	_, c := env.doJSON(http.MethodPost, "/api/v1/register", creds)
	require.NoError(t, env.Auth.Register(c))

	rec, c := env.doJSON(http.MethodPost, "/api/v1/register", creds)
	require.NoError(t, env.Auth.Register(c))
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestLoginWrongPasswordReturns401(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSON(http.MethodPost, "/api/v1/register", map[string]string{
		"username": "buyer",
		"password": "long-enough-password",
	})
	require.NoError(t, env.Auth.Register(c))

	rec, c := env.doJSON(http.MethodPost, "/api/v1/login", map[string]string{
		"username": "buyer",
		"password": "wrong-password",
	})
	require.NoError(t, env.Auth.Login(c))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
