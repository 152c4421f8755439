// Package password derives and verifies the stored password hashes kept on
// user records. The encoded form is salt:iterations:digest:hash (hex salt and
// hash), so every stored value carries the parameters needed to verify it and
// old records stay valid after the defaults change.
package password

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"hash"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltBytes         = 16
	defaultIterations = 100000
	defaultDigest     = "sha512"
	keyBytes          = 64
)

// Hash derives a fresh salted PBKDF2 hash for plain and returns the encoded
// stored form. Callers are expected to have validated that plain is non-empty.
func Hash(plain string) (string, error) {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	saltHex := hex.EncodeToString(salt)
	key := pbkdf2.Key([]byte(plain), []byte(saltHex), defaultIterations, keyBytes, sha512.New)
	return saltHex + ":" + strconv.Itoa(defaultIterations) + ":" + defaultDigest + ":" + hex.EncodeToString(key), nil
}

// Verify reports whether plain matches the stored encoded hash. The stored
// parameters (salt, iteration count, digest) drive the re-derivation, never
// the current defaults. Malformed stored data verifies as false rather than
// erroring, and the final comparison is constant-time.
func Verify(plain, stored string) bool {
	parts := strings.Split(stored, ":")
	if len(parts) != 4 {
		return false
	}
	saltHex, itersStr, digest, hashHex := parts[0], parts[1], parts[2], parts[3]
	if saltHex == "" || hashHex == "" {
		return false
	}

	iterations, err := strconv.Atoi(itersStr)
	if err != nil || iterations <= 0 {
		iterations = defaultIterations
	}

	var newHash func() hash.Hash
	switch digest {
	case "sha512", "":
		newHash = sha512.New
	case "sha256":
		newHash = sha256.New
	default:
		return false
	}

	want, err := hex.DecodeString(hashHex)
	if err != nil || len(want) == 0 {
		return false
	}
	got := pbkdf2.Key([]byte(plain), []byte(saltHex), iterations, len(want), newHash)
	return subtle.ConstantTimeCompare(got, want) == 1
}
