package config

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
	"os"

	"golang.org/x/crypto/nacl/box"
)

var key []byte

func InitCrypto() {
	k := os.Getenv("CRYPTO_KEY")
	if len(k) != 32 {
		panic("CRYPTO_KEY must be 32 bytes")
	}
	key = []byte(k)
}

func Encrypt(text string) (string, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	ciphertext := aead.Seal(nonce, nonce, []byte(text), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

func Decrypt(encoded string) (string, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}
	ciphertext, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", err
	}
	nonceSize := aead.NonceSize()
	if len(ciphertext) < nonceSize {
		return "", errors.New("ciphertext too short")
	}
	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

var ErrInvalidPublicKey = errors.New("invalid recipient public key")

// WrapKey seals a content key to a recipient's X25519 public key so only
// the holder of the matching private key can recover it. The result is
// base64 so it can be stored in a text column as-is.
func WrapKey(contentKey []byte, recipientPublicKey string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(recipientPublicKey)
	if err != nil || len(raw) != 32 {
		return "", ErrInvalidPublicKey
	}
	var pub [32]byte
	copy(pub[:], raw)

	sealed, err := box.SealAnonymous(nil, contentKey, &pub, rand.Reader)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// UnwrapKey is the inverse of WrapKey. The server never calls it in normal
// operation (unwrapping happens client-side); it exists for tooling and
// tests.
func UnwrapKey(wrapped string, publicKey, privateKey *[32]byte) ([]byte, error) {
	sealed, err := base64.StdEncoding.DecodeString(wrapped)
	if err != nil {
		return nil, err
	}
	out, ok := box.OpenAnonymous(nil, sealed, publicKey, privateKey)
	if !ok {
		return nil, errors.New("failed to unwrap content key")
	}
	return out, nil
}

// GenerateKeyPair returns a fresh X25519 key pair, public key base64
// encoded the way clients register it.
func GenerateKeyPair() (string, *[32]byte, *[32]byte, error) {
	pub, priv, err := box.GenerateKey(rand.Reader)
	if err != nil {
		return "", nil, nil, err
	}
	return base64.StdEncoding.EncodeToString(pub[:]), pub, priv, nil
}
