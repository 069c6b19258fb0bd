// Package network holds the static registry of target networks the
// faucet can pay out on.
package network

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/chainsafe/mina-faucet/pkg/config"
)

// ErrUnknownNetwork is returned when a requested network id is not
// configured. Unknown ids are a client error, not a system fault.
var ErrUnknownNetwork = errors.New("unknown network")

// nanoShift converts MINA to nanomina (1 MINA = 1e9 nanomina).
const nanoShift = 9

// Config is the immutable per-network configuration loaded at startup.
// Amounts are in nanomina.
type Config struct {
	ID           string
	Endpoint     string
	PayoutAmount int64
	Fee          int64
}

// Registry maps network ids to their configuration. The set is small and
// fixed, so lookup is a linear scan.
type Registry struct {
	networks []Config
}

// NewRegistry creates a registry over an already-converted network set.
func NewRegistry(networks []Config) *Registry {
	return &Registry{networks: networks}
}

// FromSettings builds a registry from the raw config file entries,
// converting human-denominated amounts to nanomina.
func FromSettings(settings []config.NetworkConfig) (*Registry, error) {
	networks := make([]Config, 0, len(settings))
	for _, s := range settings {
		payout, err := parseAmount(s.Payout)
		if err != nil {
			return nil, fmt.Errorf("network %q: invalid payout: %w", s.ID, err)
		}
		fee, err := parseAmount(s.Fee)
		if err != nil {
			return nil, fmt.Errorf("network %q: invalid fee: %w", s.ID, err)
		}
		networks = append(networks, Config{
			ID:           s.ID,
			Endpoint:     s.Endpoint,
			PayoutAmount: payout,
			Fee:          fee,
		})
	}
	return NewRegistry(networks), nil
}

// Lookup returns the configuration for the given network id, or
// ErrUnknownNetwork if the id is not configured.
func (r *Registry) Lookup(id string) (*Config, error) {
	for i := range r.networks {
		if r.networks[i].ID == id {
			return &r.networks[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownNetwork, id)
}

// List returns all configured networks.
func (r *Registry) List() []Config {
	out := make([]Config, len(r.networks))
	copy(out, r.networks)
	return out
}

func parseAmount(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("amount %s is negative", s)
	}
	shifted := d.Shift(nanoShift)
	if !shifted.IsInteger() {
		return 0, fmt.Errorf("amount %s has sub-nanomina precision", s)
	}
	return shifted.IntPart(), nil
}
