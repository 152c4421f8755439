package token

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"
)

func testCodec() *Codec {
	return NewCodec("test-secret", time.Hour)
}

func TestSignAndVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	c := testCodec()
	tok, err := c.Sign(Claims{Subject: "u-1", Email: "asha@x.com", Name: "Asha", IsAdmin: true})
	if err != nil {
		t.Fatalf("Sign error: %v", err)
	}
	if parts := strings.Split(tok, "."); len(parts) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(parts))
	}

	got, err := c.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if got.Subject != "u-1" || got.Email != "asha@x.com" || got.Name != "Asha" || !got.IsAdmin {
		t.Fatalf("claims mismatch: %+v", got)
	}
	if got.IssuedAt == 0 || got.ExpiresAt != got.IssuedAt+3600 {
		t.Fatalf("expiry window wrong: iat=%d exp=%d", got.IssuedAt, got.ExpiresAt)
	}
}

func TestVerify_ExtraClaimsSurvive(t *testing.T) {
	t.Parallel()

	c := testCodec()
	tok, err := c.Sign(Claims{Subject: "u-2", Extra: map[string]any{"scope": "donations"}})
	if err != nil {
		t.Fatalf("Sign error: %v", err)
	}
	got, err := c.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if got.Extra["scope"] != "donations" {
		t.Fatalf("extra claim lost: %+v", got.Extra)
	}
}

func TestVerify_TamperedSegments(t *testing.T) {
	t.Parallel()

	c := testCodec()
	tok, err := c.Sign(Claims{Subject: "u-3", Email: "a@b.c"})
	if err != nil {
		t.Fatalf("Sign error: %v", err)
	}

	for i := 0; i < len(tok); i++ {
		if tok[i] == '.' {
			continue
		}
		flip := byte('A')
		if tok[i] == 'A' {
			flip = 'B'
		}
		mutated := tok[:i] + string(flip) + tok[i+1:]
		if _, err := c.Verify(mutated); err == nil {
			t.Fatalf("tampered token at index %d verified", i)
		}
	}
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	c := testCodec()
	tok, err := c.SignWithLifetime(Claims{Subject: "u-4"}, -time.Second)
	if err != nil {
		t.Fatalf("Sign error: %v", err)
	}
	_, err = c.Verify(tok)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	c := testCodec()
	for _, tok := range []string{"", "abc", "a.b", "a.b.c.d"} {
		if _, err := c.Verify(tok); !errors.Is(err, ErrMalformedToken) {
			t.Fatalf("token %q: expected ErrMalformedToken, got %v", tok, err)
		}
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewCodec("right", time.Hour).Sign(Claims{Subject: "u-5"})
	if err != nil {
		t.Fatalf("Sign error: %v", err)
	}
	_, err = NewCodec("wrong", time.Hour).Verify(tok)
	if !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestVerify_GarbageClaimsWithValidSignature(t *testing.T) {
	t.Parallel()

	c := testCodec()
	head := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	body := base64.RawURLEncoding.EncodeToString([]byte(`not json`))
	signing := head + "." + body
	tok := signing + "." + base64.RawURLEncoding.EncodeToString(c.mac(signing))

	_, err := c.Verify(tok)
	if !errors.Is(err, ErrMalformedToken) {
		t.Fatalf("expected ErrMalformedToken, got %v", err)
	}
}
