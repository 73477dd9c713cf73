package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/mkravets/storeline/internal/service"
)

var testSecret = []byte("test-access-secret")

func doWithCookie(t *testing.T, mw echo.MiddlewareFunc, cookie *http.Cookie) (*httptest.ResponseRecorder, echo.Context, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	err := mw(next)(c)
	return rec, c, err
}

func TestRequireLoginAcceptsValidToken(t *testing.T) {
	userID := uuid.New()
	token, err := service.SignAccessToken(userID, "user", testSecret, time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, c, err := doWithCookie(t, RequireLogin(testSecret), &http.Cookie{Name: AccessCookieName, Value: token})
	require.NoError(t, err)
	require.Equal(t, userID.String(), c.Get("user_id"))
	require.Equal(t, "user", c.Get("role"))
}

func TestRequireLoginRejectsMissingCookie(t *testing.T) {
	_, _, err := doWithCookie(t, RequireLogin(testSecret), nil)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestRequireLoginRejectsBadSignature(t *testing.T) {
	token, err := service.SignAccessToken(uuid.New(), "user", []byte("other-secret"), time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, _, err = doWithCookie(t, RequireLogin(testSecret), &http.Cookie{Name: AccessCookieName, Value: token})

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestRequireLoginRejectsExpiredToken(t *testing.T) {
	token, err := service.SignAccessToken(uuid.New(), "user", testSecret, time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, _, err = doWithCookie(t, RequireLogin(testSecret), &http.Cookie{Name: AccessCookieName, Value: token})

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestRequireAdmin(t *testing.T) {
	admin, err := service.SignAccessToken(uuid.New(), "admin", testSecret, time.Now().Add(time.Hour))
	require.NoError(t, err)
	user, err := service.SignAccessToken(uuid.New(), "user", testSecret, time.Now().Add(time.Hour))
	require.NoError(t, err)

	rec, _, err := doWithCookie(t, RequireAdmin(testSecret), &http.Cookie{Name: AccessCookieName, Value: admin})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)

	_, _, err = doWithCookie(t, RequireAdmin(testSecret), &http.Cookie{Name: AccessCookieName, Value: user})

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusForbidden, httpErr.Code)
}
