package hash_test

import (
	"testing"

	"pageflow/util/hash"
)

func TestHashAndCheck(t *testing.T) {
	h, err := hash.HashPassword("secret123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if h == "secret123" {
		t.Fatal("hash must not equal the plain password")
	}
	if !hash.CheckPassword(h, "secret123") {
		t.Fatal("correct password must verify")
	}
	if hash.CheckPassword(h, "wrong") {
		t.Fatal("wrong password must not verify")
	}
}
