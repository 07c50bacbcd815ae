package utils

import (
	"strings"
	"testing"
)

func TestObjectIds(t *testing.T) {
	t.Run("GeneratedIdsAreValid", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 100; i++ {
			id := NewObjectId()
			if !IsValidObjectId(id) {
				t.Fatalf("generated id %q is not valid", id)
			}
			if seen[id] {
				t.Fatalf("generated id %q twice", id)
			}
			seen[id] = true
		}
	})

	t.Run("Rejections", func(t *testing.T) {
		for _, bad := range []string{
			"",
			"123",
			"zzzzzzzzzzzzzzzzzzzzzzzz",
			strings.Repeat("a", 23),
			strings.Repeat("a", 25),
			"65f0c8a1b2c3d4e5f6a7b8c ",
		} {
			if IsValidObjectId(bad) {
				t.Errorf("%q should be rejected", bad)
			}
		}
	})

	t.Run("Accepted", func(t *testing.T) {
		if !IsValidObjectId("65f0c8a1b2c3d4e5f6a7b8c9") {
			t.Error("a 24 char hex string should pass")
		}
	})
}

func TestCrypt(t *testing.T) {
	hashed, err := Crypt("s3cret-password")
	if err != nil {
		t.Fatalf("crypt: %v", err)
	}
	if hashed == "s3cret-password" {
		t.Fatal("hash must differ from the plaintext")
	}
	if !VerifyPassword("s3cret-password", hashed) {
		t.Error("correct password should verify")
	}
	if VerifyPassword("wrong", hashed) {
		t.Error("wrong password should not verify")
	}
}
