// Package keys loads and protects the faucet sender keypair. The keypair
// is read once at startup and injected into the orchestrator; it is
// read-only for the lifetime of the process and never logged.
package keys

import (
	"fmt"
	"os"
	"strings"

	"github.com/chainsafe/mina-faucet/pkg/config"
)

// FaucetKeypair is the process-wide sender keypair shared by all payout
// requests. Keys are kept in their wallet string encodings; the signer
// decides how to decode them.
type FaucetKeypair struct {
	PublicKey  string
	PrivateKey string
}

// String implements fmt.Stringer with the private key redacted, so an
// accidental %v of the keypair cannot leak the secret.
func (kp FaucetKeypair) String() string {
	return fmt.Sprintf("FaucetKeypair{PublicKey: %s, PrivateKey: <redacted>}", kp.PublicKey)
}

// Load resolves the faucet keypair from the configured sources: the
// public key from config or environment, the private key from the
// environment or from an encrypted key file unlocked by the master key.
func Load(cfg config.FaucetConfig) (*FaucetKeypair, error) {
	publicKey := cfg.PublicKey
	if publicKey == "" && cfg.PublicKeyEnv != "" {
		publicKey = os.Getenv(cfg.PublicKeyEnv)
	}
	if publicKey == "" {
		return nil, fmt.Errorf("faucet public key not set (config faucet.public_key or env %s)", cfg.PublicKeyEnv)
	}

	privateKey, err := loadPrivateKey(cfg)
	if err != nil {
		return nil, err
	}

	return &FaucetKeypair{
		PublicKey:  publicKey,
		PrivateKey: privateKey,
	}, nil
}

func loadPrivateKey(cfg config.FaucetConfig) (string, error) {
	if cfg.PrivateKeyEnv != "" {
		if key := os.Getenv(cfg.PrivateKeyEnv); key != "" {
			return key, nil
		}
	}

	if cfg.EncryptedKeyFile == "" {
		return "", fmt.Errorf(
			"faucet private key not set: env=%s and no encrypted key file configured",
			cfg.PrivateKeyEnv,
		)
	}

	ciphertext, err := os.ReadFile(cfg.EncryptedKeyFile)
	if err != nil {
		return "", fmt.Errorf("read encrypted key file: %w", err)
	}

	masterKeyStr := os.Getenv(cfg.MasterKeyEnv)
	if masterKeyStr == "" {
		return "", fmt.Errorf(
			"faucet master key not set: env=%s (hint: openssl rand -base64 32)",
			cfg.MasterKeyEnv,
		)
	}

	masterKey, err := MasterKeyFromBase64(masterKeyStr)
	if err != nil {
		return "", fmt.Errorf("invalid faucet master key: %w", err)
	}

	privateKey, err := DecryptPrivateKey(strings.TrimSpace(string(ciphertext)), masterKey)
	if err != nil {
		return "", fmt.Errorf("decrypt key file: %w", err)
	}
	return privateKey, nil
}
