package grantstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

type pgStore struct {
	db *bun.DB
}

// NewStore creates a new postgres implementation of the grant store
func NewStore(db *bun.DB) *pgStore {
	return &pgStore{db: db}
}

func (s *pgStore) FindGrant(ctx context.Context, address, networkID string) (*Grant, error) {
	dao := new(GrantDao)
	err := s.db.NewSelect().
		Model(dao).
		Where("address = ?", address).
		Where("network_id = ?", networkID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find grant: %w", err)
	}
	return toGrant(dao), nil
}

func (s *pgStore) CreateGrant(ctx context.Context, grant *Grant) error {
	dao := toGrantDao(grant)

	_, err := s.db.NewInsert().
		Model(dao).
		Exec(ctx)
	if err != nil {
		var pgErr pgdriver.Error
		if errors.As(err, &pgErr) && pgErr.IntegrityViolation() {
			return ErrGrantExists
		}
		return fmt.Errorf("failed to create grant: %w", err)
	}

	return nil
}

func (s *pgStore) CountGrants(ctx context.Context, networkID string) (int, error) {
	count, err := s.db.NewSelect().
		Model((*GrantDao)(nil)).
		Where("network_id = ?", networkID).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count grants: %w", err)
	}
	return count, nil
}

func (s *pgStore) ListGrants(ctx context.Context, networkID string, limit int) ([]*Grant, error) {
	var daos []GrantDao
	err := s.db.NewSelect().
		Model(&daos).
		Where("network_id = ?", networkID).
		Order("created_at DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list grants: %w", err)
	}

	grants := make([]*Grant, len(daos))
	for i := range daos {
		grants[i] = toGrant(&daos[i])
	}
	return grants, nil
}
