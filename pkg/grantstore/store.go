// Package grantstore persists the one-grant-per-address record that
// gates the faucet. A grant row is written once and never expires.
package grantstore

import (
	"context"
	"errors"
	"time"
)

// ErrGrantExists is returned when a grant already covers the address on
// that network.
var ErrGrantExists = errors.New("grant already exists")

// Grant records one completed payout.
type Grant struct {
	Address   string
	NetworkID string
	Amount    int64
	CreatedAt time.Time
}

// Store defines the interface for grant persistence
type Store interface {
	// FindGrant returns the grant covering (address, network), or
	// (nil, nil) when none exists.
	FindGrant(ctx context.Context, address, networkID string) (*Grant, error)

	// CreateGrant records a payout. Returns ErrGrantExists when the
	// (address, network) pair is already covered.
	CreateGrant(ctx context.Context, grant *Grant) error

	// CountGrants returns how many grants have been issued on a network.
	CountGrants(ctx context.Context, networkID string) (int, error)

	// ListGrants returns the most recent grants on a network.
	ListGrants(ctx context.Context, networkID string, limit int) ([]*Grant, error)
}
