package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/seva-samiti/connect-backend/pkg/response"
	"github.com/seva-samiti/connect-backend/pkg/token"
)

const identityKey = "identity"

// Identity returns the verified claims set by the auth middleware, if any.
func Identity(c *gin.Context) (token.Claims, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return token.Claims{}, false
	}
	claims, ok := v.(token.Claims)
	return claims, ok
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	// Scheme match is case-sensitive: "bearer x" carries no credential.
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func setIdentity(c *gin.Context, claims token.Claims) {
	c.Set(identityKey, claims)
	c.Set("userID", claims.Subject) // rate limiter keys on this
	c.Set("userEmail", claims.Email)
	c.Set("userName", claims.Name)
}

// OptionalAuth attaches the caller's identity when a valid bearer token is
// present. Missing or bad tokens are ignored; the request proceeds anonymous.
func OptionalAuth(codec *token.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tok := bearerToken(c); tok != "" {
			if claims, err := codec.Verify(tok); err == nil {
				setIdentity(c, claims)
			}
		}
		c.Next()
	}
}

// authenticate verifies the bearer token and stores the identity. On
// failure it aborts with a 401 and reports false; both the missing and the
// invalid case stay deliberately vague about which token check fired.
func authenticate(c *gin.Context, codec *token.Codec) bool {
	tok := bearerToken(c)
	if tok == "" {
		response.Abort(c, http.StatusUnauthorized, "missing token")
		return false
	}
	claims, err := codec.Verify(tok)
	if err != nil {
		response.Abort(c, http.StatusUnauthorized, "invalid or expired token")
		return false
	}
	setIdentity(c, claims)
	return true
}

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth(codec *token.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authenticate(c, codec) {
			return
		}
		c.Next()
	}
}

// RequireAdmin is RequireAuth plus an admin check. Authenticated non-admins
// get a 403 rather than a 401.
func RequireAdmin(codec *token.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authenticate(c, codec) {
			return
		}
		claims, _ := Identity(c)
		if !claims.IsAdmin {
			response.Abort(c, http.StatusForbidden, "admin only")
			return
		}
		c.Next()
	}
}

// RequireSelfByParam lets a caller act only on their own resource: the route
// parameter must equal the named claim field, compared exactly. A missing
// parameter or claim field is a bad request; only a real mismatch is a 403.
// There is no admin exception.
func RequireSelfByParam(codec *token.Codec, param, field string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authenticate(c, codec) {
			return
		}
		value := c.Param(param)
		if value == "" {
			response.Abort(c, http.StatusBadRequest, "missing "+param)
			return
		}
		claims, _ := Identity(c)
		own, ok := claims.Field(field)
		if !ok {
			response.Abort(c, http.StatusBadRequest, "missing "+field+" claim")
			return
		}
		if own != value {
			response.Abort(c, http.StatusForbidden, "forbidden")
			return
		}
		c.Next()
	}
}
