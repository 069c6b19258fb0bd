package noncestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
)

type pgStore struct {
	db *bun.DB
}

// NewStore creates a new postgres implementation of the nonce coordinator
func NewStore(db *bun.DB) *pgStore {
	return &pgStore{db: db}
}

// Reserve claims the next nonce for the network in a single statement.
// The stored value counts reservations, so the claimed nonce is the
// returned value minus one; two concurrent callers see distinct RETURNING
// values and therefore distinct nonces.
func (s *pgStore) Reserve(ctx context.Context, networkID string) (int64, error) {
	var next int64
	err := s.db.NewRaw(`
		INSERT INTO nonce_state (network_id, nonce)
		VALUES (?, 1)
		ON CONFLICT (network_id)
		DO UPDATE SET nonce = nonce_state.nonce + 1, updated_at = NOW()
		RETURNING nonce
	`, networkID).Scan(ctx, &next)
	if err != nil {
		return 0, fmt.Errorf("failed to reserve nonce: %w", err)
	}
	return next - 1, nil
}

func (s *pgStore) Reconcile(ctx context.Context, networkID string, nonce int64) error {
	_, err := s.db.NewRaw(`
		INSERT INTO nonce_state (network_id, nonce)
		VALUES (?, ?)
		ON CONFLICT (network_id)
		DO UPDATE SET nonce = EXCLUDED.nonce, updated_at = NOW()
	`, networkID, nonce).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to reconcile nonce: %w", err)
	}
	return nil
}

func (s *pgStore) Current(ctx context.Context, networkID string) (int64, error) {
	dao := new(NonceStateDao)
	err := s.db.NewSelect().
		Model(dao).
		Where("network_id = ?", networkID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get nonce state: %w", err)
	}
	return dao.Nonce, nil
}
