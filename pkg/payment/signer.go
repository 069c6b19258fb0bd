package payment

import (
	"context"
	"crypto/ed25519"
	"encoding/base64"
	"fmt"

	"github.com/chainsafe/mina-faucet/pkg/keys"
)

// Ed25519Signer signs the canonical payment encoding with ed25519. The
// private key string is the base64 encoding of either a 32-byte seed or
// a full 64-byte ed25519 private key.
type Ed25519Signer struct{}

// NewEd25519Signer creates the in-process signer used by default wiring.
func NewEd25519Signer() *Ed25519Signer {
	return &Ed25519Signer{}
}

// SignPayment implements Signer.
func (s *Ed25519Signer) SignPayment(ctx context.Context, p *Payment, keypair *keys.FaucetKeypair) (*SignedPayment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	privateKey, err := decodePrivateKey(keypair.PrivateKey)
	if err != nil {
		return nil, err
	}

	msg, err := canonicalBytes(p)
	if err != nil {
		return nil, fmt.Errorf("encode payment: %w", err)
	}

	sig := ed25519.Sign(privateKey, msg)
	return &SignedPayment{
		PublicKey: keypair.PublicKey,
		Signature: base64.StdEncoding.EncodeToString(sig),
		Payload:   *p,
	}, nil
}

func decodePrivateKey(encoded string) (ed25519.PrivateKey, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode private key: %w", err)
	}

	switch len(raw) {
	case ed25519.SeedSize:
		return ed25519.NewKeyFromSeed(raw), nil
	case ed25519.PrivateKeySize:
		return ed25519.PrivateKey(raw), nil
	default:
		return nil, fmt.Errorf("private key must be %d or %d bytes, got %d",
			ed25519.SeedSize, ed25519.PrivateKeySize, len(raw))
	}
}
