package auth

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHasher_RoundTrip(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("pw1")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if !strings.HasPrefix(hash, "$2a$") {
		t.Errorf("hash should be a bcrypt digest, got %q", hash)
	}
	if !h.Verify("pw1", hash) {
		t.Error("Verify() should return true for the correct password")
	}
	if h.Verify("pw2", hash) {
		t.Error("Verify() should return false for a wrong password")
	}
}

func TestHasher_UniqueSalts(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash1, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	hash2, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash1 == hash2 {
		t.Error("two hashes of the same password should differ")
	}
}

func TestHasher_MalformedDigest(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	for _, digest := range []string{"", "plaintext", "$2a$04$short", "$argon2id$v=19$m=1,t=1,p=1$x$y"} {
		if h.Verify("anything", digest) {
			t.Errorf("Verify() = true for malformed digest %q", digest)
		}
	}
}

func TestHasher_TooLong(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	if _, err := h.Hash(strings.Repeat("a", MaxPasswordBytes+1)); err != ErrPasswordTooLong {
		t.Errorf("Hash() error = %v, want %v", err, ErrPasswordTooLong)
	}
	if _, err := h.Hash(strings.Repeat("a", MaxPasswordBytes)); err != nil {
		t.Errorf("Hash() error = %v for a 72-byte password", err)
	}
}

func TestNewHasher_CostBounds(t *testing.T) {
	if got := NewHasher(0).cost; got != bcrypt.DefaultCost {
		t.Errorf("cost = %d, want %d", got, bcrypt.DefaultCost)
	}
	if got := NewHasher(bcrypt.MaxCost + 1).cost; got != bcrypt.DefaultCost {
		t.Errorf("cost = %d, want %d", got, bcrypt.DefaultCost)
	}
}
