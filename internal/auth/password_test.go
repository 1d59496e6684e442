package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHasherRoundTrip(t *testing.T) {
	h, err := NewHasher(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("new hasher: %v", err)
	}
	hash, err := h.Hash("correct horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "correct horse" {
		t.Fatal("hash must not equal plaintext")
	}
	if !h.Verify("correct horse", hash) {
		t.Fatal("expected matching password to verify")
	}
	if h.Verify("battery staple", hash) {
		t.Fatal("expected wrong password to fail")
	}
}

func TestHasherSaltsEachHash(t *testing.T) {
	h, err := NewHasher(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("new hasher: %v", err)
	}
	first, _ := h.Hash("same")
	second, _ := h.Hash("same")
	if first == second {
		t.Fatal("expected distinct hashes for the same input")
	}
}

func TestHasherVerifyMalformedHash(t *testing.T) {
	h, err := NewHasher(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("new hasher: %v", err)
	}
	if h.Verify("anything", "not-a-bcrypt-hash") {
		t.Fatal("malformed hash must not verify")
	}
	if h.VerifyDummy("anything") {
		t.Fatal("dummy verification must never succeed")
	}
}

func TestNewHasherClampsCost(t *testing.T) {
	h, err := NewHasher(0)
	if err != nil {
		t.Fatalf("new hasher: %v", err)
	}
	hash, err := h.Hash("pw")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("cost: %v", err)
	}
	if cost != bcrypt.DefaultCost {
		t.Fatalf("cost = %d, want %d", cost, bcrypt.DefaultCost)
	}
}
