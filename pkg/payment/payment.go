// Package payment composes and signs the fixed-value faucet transfer.
//
// The Builder owns composition only: it assembles the canonical payment
// description from the sender keypair, the reserved nonce and the network
// configuration, and delegates signing to a Signer. The signed result is
// returned verbatim; nothing downstream inspects or re-derives the
// signature.
package payment

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/chainsafe/mina-faucet/pkg/keys"
	"github.com/chainsafe/mina-faucet/pkg/network"
)

// Payment is the canonical transfer description handed to the signer.
// Amounts are in nanomina.
type Payment struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount int64  `json:"amount"`
	Fee    int64  `json:"fee"`
	Nonce  int64  `json:"nonce"`
}

// SignedPayment is the signer's output, broadcast as-is and never
// persisted.
type SignedPayment struct {
	PublicKey string  `json:"publicKey"`
	Signature string  `json:"signature"`
	Payload   Payment `json:"payload"`
}

// Signer turns a canonical payment description into a signed transaction
// object. Implementations are external to the faucet flow; swapping in a
// different ledger's signature scheme does not touch the orchestrator.
type Signer interface {
	SignPayment(ctx context.Context, p *Payment, keypair *keys.FaucetKeypair) (*SignedPayment, error)
}

// Builder composes payments for one sender keypair.
type Builder struct {
	keypair *keys.FaucetKeypair
	signer  Signer
}

// NewBuilder creates a builder bound to the faucet keypair and signer.
func NewBuilder(keypair *keys.FaucetKeypair, signer Signer) *Builder {
	return &Builder{keypair: keypair, signer: signer}
}

// Build assembles the transfer to the recipient with the reserved nonce
// and signs it. Amount and fee come only from the network configuration.
func (b *Builder) Build(ctx context.Context, recipient string, nonce int64, net *network.Config) (*SignedPayment, error) {
	p := &Payment{
		From:   b.keypair.PublicKey,
		To:     recipient,
		Amount: net.PayoutAmount,
		Fee:    net.Fee,
		Nonce:  nonce,
	}

	signed, err := b.signer.SignPayment(ctx, p, b.keypair)
	if err != nil {
		return nil, fmt.Errorf("sign payment: %w", err)
	}
	return signed, nil
}

// canonicalBytes is the byte encoding signers sign over. JSON of a fixed
// struct is deterministic: field order follows the struct definition.
func canonicalBytes(p *Payment) ([]byte, error) {
	return json.Marshal(p)
}
