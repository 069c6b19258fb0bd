package keys

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const masterKeySize = 32

// hkdfInfo domain-separates the derived encryption key from any other
// use of the same master key.
var hkdfInfo = []byte("mina-faucet-private-key")

// MasterKeyFromBase64 decodes and checks a base64-encoded 32-byte master key.
func MasterKeyFromBase64(s string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}
	if len(key) != masterKeySize {
		return nil, fmt.Errorf("master key must be %d bytes (AES-256), got %d", masterKeySize, len(key))
	}
	return key, nil
}

// deriveKey stretches the master key into the AES-256 encryption key
// using HKDF-SHA256.
func deriveKey(masterKey []byte) ([]byte, error) {
	key := make([]byte, masterKeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, masterKey, nil, hkdfInfo), key); err != nil {
		return nil, fmt.Errorf("failed to derive encryption key: %w", err)
	}
	return key, nil
}

// EncryptPrivateKey encrypts a private key string using AES-256-GCM under
// a key derived from the master key. Returns base64(nonce || ciphertext || tag).
func EncryptPrivateKey(privateKey string, masterKey []byte) (string, error) {
	if len(masterKey) != masterKeySize {
		return "", fmt.Errorf("master key must be %d bytes (AES-256)", masterKeySize)
	}
	if privateKey == "" {
		return "", fmt.Errorf("private key is empty")
	}

	encKey, err := deriveKey(masterKey)
	if err != nil {
		return "", err
	}

	block, err := aes.NewCipher(encKey)
	if err != nil {
		return "", fmt.Errorf("failed to create AES cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("failed to create GCM: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext := gcm.Seal(nonce, nonce, []byte(privateKey), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// DecryptPrivateKey reverses EncryptPrivateKey.
func DecryptPrivateKey(encrypted string, masterKey []byte) (string, error) {
	if len(masterKey) != masterKeySize {
		return "", fmt.Errorf("master key must be %d bytes (AES-256)", masterKeySize)
	}

	ciphertext, err := base64.StdEncoding.DecodeString(encrypted)
	if err != nil {
		return "", fmt.Errorf("failed to decode base64: %w", err)
	}

	encKey, err := deriveKey(masterKey)
	if err != nil {
		return "", err
	}

	block, err := aes.NewCipher(encKey)
	if err != nil {
		return "", fmt.Errorf("failed to create AES cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("failed to create GCM: %w", err)
	}

	nonceSize := gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return "", fmt.Errorf("ciphertext too short")
	}
	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt: %w", err)
	}
	return string(plaintext), nil
}
