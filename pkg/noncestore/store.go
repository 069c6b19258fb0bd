// Package noncestore serializes nonce assignment for the faucet account.
//
// Every broadcast must carry a nonce no other in-flight broadcast on the
// same network uses. The store is the single allocation point: Reserve
// hands out consecutive values atomically, and Reconcile snaps the stored
// value back to whatever the ledger reports when the two drift apart.
package noncestore

import "context"

// Coordinator reserves and repairs per-network nonces.
type Coordinator interface {
	// Reserve atomically claims the next unused nonce for the network
	// and returns it. Concurrent callers each receive a distinct value.
	Reserve(ctx context.Context, networkID string) (int64, error)

	// Reconcile overwrites the stored state so the next Reserve returns
	// exactly nonce. Used after the ledger rejects a payment with an
	// authoritative nonce hint.
	Reconcile(ctx context.Context, networkID string, nonce int64) error

	// Current returns the next nonce Reserve would hand out, without
	// claiming it. Networks with no state yet report 0.
	Current(ctx context.Context, networkID string) (int64, error)
}
