package password

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"testing"

	"golang.org/x/crypto/pbkdf2"
)

func TestHashAndVerify(t *testing.T) {
	t.Parallel()

	stored, err := Hash("secret1")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	parts := strings.Split(stored, ":")
	if len(parts) != 4 {
		t.Fatalf("expected 4 colon-separated fields, got %d: %q", len(parts), stored)
	}
	if parts[1] != "100000" || parts[2] != "sha512" {
		t.Fatalf("unexpected parameters: %q", stored)
	}
	if !Verify("secret1", stored) {
		t.Fatal("correct password did not verify")
	}
	if Verify("secret2", stored) {
		t.Fatal("wrong password verified")
	}
}

func TestHash_FreshSaltPerCall(t *testing.T) {
	t.Parallel()

	a, err := Hash("same-password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	b, err := Hash("same-password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if a == b {
		t.Fatal("two hashes of the same password were identical")
	}
	if !Verify("same-password", a) || !Verify("same-password", b) {
		t.Fatal("both hashes should verify against the original password")
	}
}

func TestVerify_StoredParametersWin(t *testing.T) {
	t.Parallel()

	// A record written under older parameters must still verify.
	legacy, err := Hash("legacy-pass")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	saltHex := strings.Split(legacy, ":")[0]

	// Build a record as if it were written at 1000 iterations with sha256.
	key := pbkdf2.Key([]byte("legacy-pass"), []byte(saltHex), 1000, 32, sha256.New)
	stored := saltHex + ":" + strconv.Itoa(1000) + ":sha256:" + hex.EncodeToString(key)

	if !Verify("legacy-pass", stored) {
		t.Fatal("hash with stored non-default parameters did not verify")
	}
	if Verify("other-pass", stored) {
		t.Fatal("wrong password verified against legacy record")
	}
}

func TestVerify_MalformedStored(t *testing.T) {
	t.Parallel()

	cases := []string{
		"",
		"no-colons-at-all",
		"salt:100000:sha512",           // missing hash
		"salt:100000:sha512:zzzz",      // non-hex hash
		":100000:sha512:abcd",          // empty salt
		"salt:100000:md5:abcd",         // unsupported digest
		"a:b:c:d:e",                    // too many fields
		"73616c74:100000:sha512:",      // empty hash
	}
	for _, stored := range cases {
		if Verify("whatever", stored) {
			t.Fatalf("malformed stored hash verified: %q", stored)
		}
	}
}
