package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echoUser отвечает user_id из контекста или 401
func echoUser() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if uid, ok := GetUserIDFromContext(r.Context()); ok {
			_, _ = w.Write([]byte(strconv.FormatInt(uid, 10)))
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	})
}

func requestWithCookies(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

// SetLoginCookie + WithAuth — user_id попадает в контекст
func TestWithAuth_ValidCookieSetsUserID(t *testing.T) {
	const secret = "test-secret"
	rrCookie := httptest.NewRecorder()
	require.NoError(t, SetLoginCookie(rrCookie, 77, secret))

	rr := httptest.NewRecorder()
	WithAuth(secret)(echoUser()).ServeHTTP(rr, requestWithCookies(rrCookie))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "77", rr.Body.String())
}

// без cookie запрос проходит анонимно
func TestWithAuth_NoCookieLeavesAnonymous(t *testing.T) {
	rr := httptest.NewRecorder()
	WithAuth("any-secret")(echoUser()).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

// токен, подписанный другим секретом, игнорируется
func TestWithAuth_InvalidToken(t *testing.T) {
	rrCookie := httptest.NewRecorder()
	require.NoError(t, SetLoginCookie(rrCookie, 5, "secret-A"))

	rr := httptest.NewRecorder()
	WithAuth("secret-B")(echoUser()).ServeHTTP(rr, requestWithCookies(rrCookie))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestParseToken_Expired(t *testing.T) {
	claims := Claims{
		UserID: 3,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("s"))
	require.NoError(t, err)

	_, err = ParseToken(tok, "s")
	assert.Error(t, err)

	good, err := BuildToken(3, "s")
	require.NoError(t, err)
	uid, err := ParseToken(good, "s")
	require.NoError(t, err)
	assert.Equal(t, int64(3), uid)
}

func TestClearLoginCookie(t *testing.T) {
	rr := httptest.NewRecorder()
	ClearLoginCookie(rr)
	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}
