package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seva-samiti/connect-backend/pkg/token"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testCodec() *token.Codec {
	return token.NewCodec("middleware-test-secret", time.Hour)
}

func signFor(t *testing.T, codec *token.Codec, claims token.Claims) string {
	t.Helper()
	tok, err := codec.Sign(claims)
	require.NoError(t, err)
	return tok
}

func perform(r *gin.Engine, method, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Message
}

func TestOptionalAuth(t *testing.T) {
	codec := testCodec()
	r := gin.New()
	r.GET("/feed", OptionalAuth(codec), func(c *gin.Context) {
		claims, ok := Identity(c)
		c.JSON(http.StatusOK, gin.H{"authed": ok, "sub": claims.Subject})
	})

	// anonymous request passes through
	w := perform(r, http.MethodGet, "/feed", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authed":false`)

	// garbage token is silently ignored
	w = perform(r, http.MethodGet, "/feed", "not.a.token")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authed":false`)

	// valid token attaches the identity
	tok := signFor(t, codec, token.Claims{Subject: "u1", Email: "a@b.c"})
	w = perform(r, http.MethodGet, "/feed", tok)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"sub":"u1"`)
}

func TestRequireAuth(t *testing.T) {
	codec := testCodec()
	r := gin.New()
	r.GET("/me", RequireAuth(codec), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": c.GetString("userID")})
	})

	w := perform(r, http.MethodGet, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "missing token", errMessage(t, w))

	w = perform(r, http.MethodGet, "/me", "bogus")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid or expired token", errMessage(t, w))

	expired, err := codec.SignWithLifetime(token.Claims{Subject: "u1"}, -time.Minute)
	require.NoError(t, err)
	w = perform(r, http.MethodGet, "/me", expired)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid or expired token", errMessage(t, w))

	tok := signFor(t, codec, token.Claims{Subject: "u1"})
	w = perform(r, http.MethodGet, "/me", tok)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userID":"u1"`)
}

func TestRequireAuthRejectsNonBearerScheme(t *testing.T) {
	codec := testCodec()
	r := gin.New()
	r.GET("/me", RequireAuth(codec), func(c *gin.Context) { c.Status(http.StatusOK) })

	tok := signFor(t, codec, token.Claims{Subject: "u1"})
	// Scheme is case-sensitive; anything but exactly "Bearer" carries no token.
	for _, scheme := range []string{"Basic", "bearer", "BEARER"} {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", scheme+" "+tok)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, scheme)
		assert.Equal(t, "missing token", errMessage(t, w), scheme)
	}
}

func TestRequireAdmin(t *testing.T) {
	codec := testCodec()
	r := gin.New()
	r.DELETE("/admin", RequireAdmin(codec), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := perform(r, http.MethodDelete, "/admin", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	member := signFor(t, codec, token.Claims{Subject: "u1"})
	w = perform(r, http.MethodDelete, "/admin", member)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "admin only", errMessage(t, w))

	admin := signFor(t, codec, token.Claims{Subject: "u2", IsAdmin: true})
	w = perform(r, http.MethodDelete, "/admin", admin)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRequireSelfByParam(t *testing.T) {
	codec := testCodec()
	r := gin.New()
	r.GET("/users/:id/donations", RequireSelfByParam(codec, "id", "id"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/donations/email/:email", RequireSelfByParam(codec, "email", "email"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	self := signFor(t, codec, token.Claims{Subject: "u1", Email: "me@example.com"})
	other := signFor(t, codec, token.Claims{Subject: "u2", Email: "other@example.com"})
	admin := signFor(t, codec, token.Claims{Subject: "u3", IsAdmin: true})

	w := perform(r, http.MethodGet, "/users/u1/donations", self)
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(r, http.MethodGet, "/users/u1/donations", other)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// no admin exception: ownership is a plain value comparison
	w = perform(r, http.MethodGet, "/users/u1/donations", admin)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = perform(r, http.MethodGet, "/users/u1/donations", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = perform(r, http.MethodGet, "/donations/email/me@example.com", self)
	assert.Equal(t, http.StatusOK, w.Code)

	// the comparison is exact, so a differently-cased email does not match
	w = perform(r, http.MethodGet, "/donations/email/ME@example.com", self)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = perform(r, http.MethodGet, "/donations/email/other@example.com", self)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireSelfByParamMissingClaimField(t *testing.T) {
	codec := testCodec()
	r := gin.New()
	r.GET("/donations/email/:email", RequireSelfByParam(codec, "email", "email"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	// token without an email claim: bad request, not forbidden
	noEmail := signFor(t, codec, token.Claims{Subject: "u1"})
	w := perform(r, http.MethodGet, "/donations/email/me@example.com", noEmail)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "missing email claim", errMessage(t, w))
}
