package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// Verification failures. The auth middleware collapses all of these to a
// single 401; the distinction exists for logging and tests only.
var (
	ErrMalformedToken   = errors.New("malformed token")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrTokenExpired     = errors.New("token expired")
)

// DefaultLifetime is used when no lifetime override is configured.
const DefaultLifetime = 7 * 24 * time.Hour

// Codec signs and verifies the bearer credentials issued at login/register.
// The wire format is three dot-separated URL-safe unpadded base64 segments
// (header, claims, HMAC-SHA-256 signature), interchangeable with a standard
// HS256 JWT so the frontend can decode the claims segment for display.
type Codec struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

func NewCodec(secret string, lifetime time.Duration) *Codec {
	if lifetime <= 0 {
		lifetime = DefaultLifetime
	}
	return &Codec{secret: []byte(secret), lifetime: lifetime, now: time.Now}
}

type header struct {
	Alg string `json:"alg"`
	Typ string `json:"typ"`
}

// Sign issues a token for claims with the codec's configured lifetime.
func (c *Codec) Sign(claims Claims) (string, error) {
	return c.SignWithLifetime(claims, c.lifetime)
}

// SignWithLifetime stamps iat/exp onto claims and returns the encoded token.
func (c *Codec) SignWithLifetime(claims Claims, lifetime time.Duration) (string, error) {
	now := c.now().Unix()
	claims.IssuedAt = now
	claims.ExpiresAt = now + int64(lifetime/time.Second)

	hb, err := json.Marshal(header{Alg: "HS256", Typ: "JWT"})
	if err != nil {
		return "", err
	}
	cb, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}
	signing := base64.RawURLEncoding.EncodeToString(hb) + "." + base64.RawURLEncoding.EncodeToString(cb)
	sig := c.mac(signing)
	return signing + "." + base64.RawURLEncoding.EncodeToString(sig), nil
}

// Verify checks the signature and expiry of a token and returns its claims.
// The signature comparison is constant-time; the MAC length is public so a
// length mismatch is rejected as any other mismatch would be.
func (c *Codec) Verify(tok string) (Claims, error) {
	if tok == "" {
		return Claims{}, ErrMalformedToken
	}
	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		return Claims{}, ErrMalformedToken
	}
	provided, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return Claims{}, ErrMalformedToken
	}
	expected := c.mac(parts[0] + "." + parts[1])
	if subtle.ConstantTimeCompare(provided, expected) != 1 {
		return Claims{}, ErrInvalidSignature
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return Claims{}, ErrMalformedToken
	}
	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return Claims{}, ErrMalformedToken
	}
	if claims.ExpiresAt != 0 && c.now().Unix() > claims.ExpiresAt {
		return Claims{}, ErrTokenExpired
	}
	return claims, nil
}

func (c *Codec) mac(data string) []byte {
	h := hmac.New(sha256.New, c.secret)
	h.Write([]byte(data))
	return h.Sum(nil)
}
