package config_test

import (
	"os"
	"testing"

	"github.com/momentumapp/momentum-lambda/internal/config"
)

const testKey = "01234567890123456789012345678901"

func TestInitCrypto(t *testing.T) {
	os.Setenv("CRYPTO_KEY", "too_short")

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("InitCrypto should have panicked with a short key, but did not.")
		}
	}()

	config.InitCrypto()
}

func TestEncryptDecrypt(t *testing.T) {
	os.Setenv("CRYPTO_KEY", testKey)
	config.InitCrypto()

	t.Run("SimpleText", func(t *testing.T) {
		plaintext := "secret refresh token"

		ciphertext, err := config.Encrypt(plaintext)
		if err != nil {
			t.Fatalf("Encrypt failed: %v", err)
		}

		decrypted, err := config.Decrypt(ciphertext)
		if err != nil {
			t.Fatalf("Decrypt failed: %v", err)
		}

		if decrypted != plaintext {
			t.Errorf("decrypted text (%q) does not match original (%q)", decrypted, plaintext)
		}

		ciphertext2, _ := config.Encrypt(plaintext)
		if ciphertext == ciphertext2 {
			t.Errorf("encryption is not randomized; two ciphertexts of the same plaintext should differ")
		}
	})

	t.Run("EmptyText", func(t *testing.T) {
		ciphertext, err := config.Encrypt("")
		if err != nil {
			t.Fatalf("Encrypt failed: %v", err)
		}
		decrypted, err := config.Decrypt(ciphertext)
		if err != nil {
			t.Fatalf("Decrypt failed: %v", err)
		}
		if decrypted != "" {
			t.Errorf("decrypted empty text is incorrect: %q", decrypted)
		}
	})

	t.Run("Tampered", func(t *testing.T) {
		if _, err := config.Decrypt("bm90IGEgcmVhbCBjaXBoZXJ0ZXh0IGF0IGFsbCE="); err == nil {
			t.Error("Decrypt should reject a ciphertext sealed under a different key")
		}
	})
}

func TestWrapUnwrapKey(t *testing.T) {
	pubB64, pub, priv, err := config.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair failed: %v", err)
	}

	t.Run("RoundTrip", func(t *testing.T) {
		contentKey := []byte("0123456789abcdef0123456789abcdef")

		wrapped, err := config.WrapKey(contentKey, pubB64)
		if err != nil {
			t.Fatalf("WrapKey failed: %v", err)
		}

		unwrapped, err := config.UnwrapKey(wrapped, pub, priv)
		if err != nil {
			t.Fatalf("UnwrapKey failed: %v", err)
		}
		if string(unwrapped) != string(contentKey) {
			t.Errorf("unwrapped key does not match the original content key")
		}
	})

	t.Run("BadPublicKey", func(t *testing.T) {
		if _, err := config.WrapKey([]byte("key"), "not-base64!!"); err != config.ErrInvalidPublicKey {
			t.Errorf("expected ErrInvalidPublicKey, got %v", err)
		}
		if _, err := config.WrapKey([]byte("key"), "c2hvcnQ="); err != config.ErrInvalidPublicKey {
			t.Errorf("expected ErrInvalidPublicKey for a short key, got %v", err)
		}
	})
}
