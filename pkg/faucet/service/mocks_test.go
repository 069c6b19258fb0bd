package service

import (
	"context"

	"github.com/chainsafe/mina-faucet/pkg/broadcast"
	"github.com/chainsafe/mina-faucet/pkg/grantstore"
	"github.com/chainsafe/mina-faucet/pkg/network"
	"github.com/chainsafe/mina-faucet/pkg/payment"
)

// MockGrantStore is a mock implementation of GrantStore
type MockGrantStore struct {
	FindGrantFunc   func(ctx context.Context, address, networkID string) (*grantstore.Grant, error)
	CreateGrantFunc func(ctx context.Context, grant *grantstore.Grant) error
	CountGrantsFunc func(ctx context.Context, networkID string) (int, error)

	CreatedGrants []*grantstore.Grant
}

func (m *MockGrantStore) FindGrant(ctx context.Context, address, networkID string) (*grantstore.Grant, error) {
	if m.FindGrantFunc != nil {
		return m.FindGrantFunc(ctx, address, networkID)
	}
	return nil, nil
}

func (m *MockGrantStore) CreateGrant(ctx context.Context, grant *grantstore.Grant) error {
	m.CreatedGrants = append(m.CreatedGrants, grant)
	if m.CreateGrantFunc != nil {
		return m.CreateGrantFunc(ctx, grant)
	}
	return nil
}

func (m *MockGrantStore) CountGrants(ctx context.Context, networkID string) (int, error) {
	if m.CountGrantsFunc != nil {
		return m.CountGrantsFunc(ctx, networkID)
	}
	return 0, nil
}

// MockNonceCoordinator is a mock implementation of NonceCoordinator
type MockNonceCoordinator struct {
	ReserveFunc   func(ctx context.Context, networkID string) (int64, error)
	ReconcileFunc func(ctx context.Context, networkID string, nonce int64) error
	CurrentFunc   func(ctx context.Context, networkID string) (int64, error)

	Reconciled []int64
}

func (m *MockNonceCoordinator) Reserve(ctx context.Context, networkID string) (int64, error) {
	if m.ReserveFunc != nil {
		return m.ReserveFunc(ctx, networkID)
	}
	return 0, nil
}

func (m *MockNonceCoordinator) Reconcile(ctx context.Context, networkID string, nonce int64) error {
	m.Reconciled = append(m.Reconciled, nonce)
	if m.ReconcileFunc != nil {
		return m.ReconcileFunc(ctx, networkID, nonce)
	}
	return nil
}

func (m *MockNonceCoordinator) Current(ctx context.Context, networkID string) (int64, error) {
	if m.CurrentFunc != nil {
		return m.CurrentFunc(ctx, networkID)
	}
	return 0, nil
}

// MockBroadcaster is a mock implementation of Broadcaster
type MockBroadcaster struct {
	BroadcastFunc func(ctx context.Context, endpoint string, signed *payment.SignedPayment) (*broadcast.Result, error)

	Broadcasts []*payment.SignedPayment
}

func (m *MockBroadcaster) Broadcast(ctx context.Context, endpoint string, signed *payment.SignedPayment) (*broadcast.Result, error) {
	m.Broadcasts = append(m.Broadcasts, signed)
	if m.BroadcastFunc != nil {
		return m.BroadcastFunc(ctx, endpoint, signed)
	}
	return &broadcast.Result{Outcome: broadcast.OutcomeAccepted}, nil
}

// MockPaymentBuilder is a mock implementation of PaymentBuilder
type MockPaymentBuilder struct {
	BuildFunc func(ctx context.Context, recipient string, nonce int64, net *network.Config) (*payment.SignedPayment, error)
}

func (m *MockPaymentBuilder) Build(ctx context.Context, recipient string, nonce int64, net *network.Config) (*payment.SignedPayment, error) {
	if m.BuildFunc != nil {
		return m.BuildFunc(ctx, recipient, nonce, net)
	}
	return &payment.SignedPayment{
		PublicKey: "B62qfaucet",
		Signature: "c2ln",
		Payload: payment.Payment{
			From:   "B62qfaucet",
			To:     recipient,
			Amount: net.PayoutAmount,
			Fee:    net.Fee,
			Nonce:  nonce,
		},
	}, nil
}
