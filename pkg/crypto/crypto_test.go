package crypto

import (
	"strings"
	"testing"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}

	if !VerifyPassword(hash, "secret") {
		t.Fatal("expected password verification to succeed")
	}

	if VerifyPassword(hash, "incorrect") {
		t.Fatal("expected password verification to fail")
	}
}

func TestGenerateInviteCode(t *testing.T) {
	code, err := GenerateInviteCode(8)
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}

	if len(code) != 8 {
		t.Fatalf("expected 8 characters, got %d", len(code))
	}

	for _, r := range code {
		if !strings.ContainsRune(inviteAlphabet, r) {
			t.Fatalf("unexpected character %q in code %s", r, code)
		}
	}

	other, err := GenerateInviteCode(8)
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	if code == other {
		t.Fatal("expected two generated codes to differ")
	}
}

func TestGenerateInviteCodeDefaultsLength(t *testing.T) {
	code, err := GenerateInviteCode(0)
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	if len(code) != 8 {
		t.Fatalf("expected default length 8, got %d", len(code))
	}
}
