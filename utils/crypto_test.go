package utils

import (
	"strings"
	"testing"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	t.Setenv("DATA_ENCRYPTION_KEY", "0123456789abcdef0123456789abcdef")

	plaintext := []byte(`{"maintenance_mode":true}`)
	ciphertext, err := Encrypt(plaintext)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if ciphertext == string(plaintext) {
		t.Fatal("ciphertext equals plaintext")
	}

	got, err := Decrypt(ciphertext)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if string(got) != string(plaintext) {
		t.Errorf("round trip = %q, want %q", got, plaintext)
	}
}

func TestEncryptRejectsBadKeyLength(t *testing.T) {
	t.Setenv("DATA_ENCRYPTION_KEY", "too-short")

	if _, err := Encrypt([]byte("x")); err == nil {
		t.Fatal("expected error for short key")
	}
}

func TestDecryptRejectsTamperedCiphertext(t *testing.T) {
	t.Setenv("DATA_ENCRYPTION_KEY", "0123456789abcdef0123456789abcdef")

	ciphertext, err := Encrypt([]byte("secret"))
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	tampered := strings.Replace(ciphertext, ciphertext[:1], "A", 1)
	if tampered == ciphertext {
		tampered = "B" + ciphertext[1:]
	}
	if _, err := Decrypt(tampered); err == nil {
		t.Error("expected error for tampered ciphertext")
	}
}

func TestDecryptRejectsShortCiphertext(t *testing.T) {
	t.Setenv("DATA_ENCRYPTION_KEY", "0123456789abcdef0123456789abcdef")

	if _, err := Decrypt("YWJj"); err == nil {
		t.Error("expected error for truncated ciphertext")
	}
}
