// Package service implements the faucet business logic: one request in,
// one classified response out, with the nonce ledger and grant table
// kept consistent along the way.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/chainsafe/mina-faucet/internal/metrics"
	"github.com/chainsafe/mina-faucet/pkg/address"
	"github.com/chainsafe/mina-faucet/pkg/broadcast"
	"github.com/chainsafe/mina-faucet/pkg/faucet"
	"github.com/chainsafe/mina-faucet/pkg/grantstore"
	"github.com/chainsafe/mina-faucet/pkg/network"
	"github.com/chainsafe/mina-faucet/pkg/payment"
)

// GrantStore is the narrow data-access interface the faucet service needs.
// Defined here to keep the service decoupled from grantstore implementation details.
type GrantStore interface {
	FindGrant(ctx context.Context, address, networkID string) (*grantstore.Grant, error)
	CreateGrant(ctx context.Context, grant *grantstore.Grant) error
	CountGrants(ctx context.Context, networkID string) (int, error)
}

// NonceCoordinator reserves and repairs per-network nonces.
type NonceCoordinator interface {
	Reserve(ctx context.Context, networkID string) (int64, error)
	Reconcile(ctx context.Context, networkID string, nonce int64) error
	Current(ctx context.Context, networkID string) (int64, error)
}

// Broadcaster submits a signed payment to a network endpoint.
type Broadcaster interface {
	Broadcast(ctx context.Context, endpoint string, signed *payment.SignedPayment) (*broadcast.Result, error)
}

// PaymentBuilder composes and signs the faucet transfer.
type PaymentBuilder interface {
	Build(ctx context.Context, recipient string, nonce int64, net *network.Config) (*payment.SignedPayment, error)
}

// Service defines the interface for the faucet business logic
type Service interface {
	Grant(ctx context.Context, req *faucet.Request) (*faucet.Response, error)
	Networks() []faucet.NetworkInfo
	Status(ctx context.Context) (*faucet.StatusResponse, error)
}

type faucetService struct {
	registry    *network.Registry
	grants      GrantStore
	nonces      NonceCoordinator
	builder     PaymentBuilder
	broadcaster Broadcaster
	validate    address.ValidateFunc
	logger      *zap.Logger
}

// NewService creates a new faucet service. validate defaults to the
// base58check decoder when nil.
func NewService(
	registry *network.Registry,
	grants GrantStore,
	nonces NonceCoordinator,
	builder PaymentBuilder,
	broadcaster Broadcaster,
	validate address.ValidateFunc,
	logger *zap.Logger,
) Service {
	if validate == nil {
		validate = address.CheckDecode
	}
	return &faucetService{
		registry:    registry,
		grants:      grants,
		nonces:      nonces,
		builder:     builder,
		broadcaster: broadcaster,
		validate:    validate,
		logger:      logger,
	}
}

// Grant runs one faucet request through the full pipeline. Classified
// failures come back as a response with a non-success status and a nil
// error; only unexpected infrastructure failures return a non-nil error.
func (s *faucetService) Grant(ctx context.Context, req *faucet.Request) (*faucet.Response, error) {
	net, err := s.registry.Lookup(req.Network)
	if err != nil {
		if errors.Is(err, network.ErrUnknownNetwork) {
			return s.reply(req.Network, faucet.StatusInvalidNetwork), nil
		}
		return nil, err
	}

	if !s.validate(req.Address) {
		return s.reply(net.ID, faucet.StatusInvalidAddress), nil
	}

	existing, err := s.grants.FindGrant(ctx, req.Address, net.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check grant: %w", err)
	}
	if existing != nil {
		s.logger.Info("Request refused, address already granted",
			zap.String("network", net.ID),
			zap.String("address", req.Address),
		)
		return s.reply(net.ID, faucet.StatusRateLimit), nil
	}

	nonce, err := s.nonces.Reserve(ctx, net.ID)
	if err != nil {
		s.logger.Error("Nonce reservation failed",
			zap.String("network", net.ID),
			zap.Error(err),
		)
		return s.reply(net.ID, faucet.StatusNonceError), nil
	}

	signed, err := s.builder.Build(ctx, req.Address, nonce, net)
	if err != nil {
		s.logger.Error("Payment signing failed",
			zap.String("network", net.ID),
			zap.Int64("nonce", nonce),
			zap.Error(err),
		)
		return s.reply(net.ID, faucet.StatusBroadcastError), nil
	}

	start := time.Now()
	result, err := s.broadcaster.Broadcast(ctx, net.Endpoint, signed)
	if err != nil {
		return nil, fmt.Errorf("failed to broadcast payment: %w", err)
	}
	metrics.BroadcastDuration.WithLabelValues(net.ID, result.Outcome.String()).
		Observe(time.Since(start).Seconds())

	switch result.Outcome {
	case broadcast.OutcomeAccepted:
		s.recordGrant(ctx, req.Address, net)
		resp := s.reply(net.ID, faucet.StatusSuccess)
		resp.Message = &faucet.Message{PaymentID: result.PaymentID}
		return resp, nil

	case broadcast.OutcomeRejectedWithNonce:
		s.repairNonce(ctx, net.ID, nonce, result.InferredNonce)
		return s.reply(net.ID, faucet.StatusNonceError), nil

	default:
		s.logger.Warn("Broadcast failed",
			zap.String("network", net.ID),
			zap.String("outcome", result.Outcome.String()),
			zap.String("ledger_error", result.RawError),
		)
		return s.reply(net.ID, faucet.StatusBroadcastError), nil
	}
}

// recordGrant persists the payout record after the ledger accepted it.
// The payment is already irrevocable at this point, so a write failure
// must not downgrade the success response; losing the record only means
// the address could ask again.
func (s *faucetService) recordGrant(ctx context.Context, addr string, net *network.Config) {
	err := s.grants.CreateGrant(ctx, &grantstore.Grant{
		Address:   addr,
		NetworkID: net.ID,
		Amount:    net.PayoutAmount,
	})
	switch {
	case errors.Is(err, grantstore.ErrGrantExists):
		metrics.GrantConflicts.WithLabelValues(net.ID).Inc()
		s.logger.Warn("Grant already recorded by a concurrent request",
			zap.String("network", net.ID),
			zap.String("address", addr),
		)
	case err != nil:
		s.logger.Error("Grant write failed after accepted broadcast",
			zap.String("network", net.ID),
			zap.String("address", addr),
			zap.Error(err),
		)
	default:
		metrics.GrantsIssued.WithLabelValues(net.ID).Inc()
	}
}

// repairNonce snaps the stored nonce to the ledger's hint. Skipped when
// the hint equals the nonce we just used: the rejection was not about
// drift, and rewinding would hand the same nonce out again.
func (s *faucetService) repairNonce(ctx context.Context, networkID string, used, hint int64) {
	s.logger.Info("Ledger rejected nonce",
		zap.String("network", networkID),
		zap.Int64("used_nonce", used),
		zap.Int64("inferred_nonce", hint),
	)

	if hint == used {
		return
	}

	if err := s.nonces.Reconcile(ctx, networkID, hint); err != nil {
		s.logger.Error("Nonce reconciliation failed",
			zap.String("network", networkID),
			zap.Int64("inferred_nonce", hint),
			zap.Error(err),
		)
		return
	}
	metrics.NonceReconciliations.WithLabelValues(networkID).Inc()
}

func (s *faucetService) reply(networkLabel, status string) *faucet.Response {
	if networkLabel == "" {
		networkLabel = "unknown"
	}
	metrics.RequestsTotal.WithLabelValues(networkLabel, status).Inc()
	return &faucet.Response{Status: status}
}

// Networks lists the configured networks with their payout amounts.
func (s *faucetService) Networks() []faucet.NetworkInfo {
	nets := s.registry.List()
	infos := make([]faucet.NetworkInfo, len(nets))
	for i, n := range nets {
		infos[i] = faucet.NetworkInfo{
			ID:           n.ID,
			PayoutAmount: n.PayoutAmount,
			Fee:          n.Fee,
		}
	}
	return infos
}

// Status reports grant counts and the next nonce per network.
func (s *faucetService) Status(ctx context.Context) (*faucet.StatusResponse, error) {
	nets := s.registry.List()
	statuses := make([]faucet.NetworkStatus, 0, len(nets))
	for _, n := range nets {
		count, err := s.grants.CountGrants(ctx, n.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count grants for %s: %w", n.ID, err)
		}
		next, err := s.nonces.Current(ctx, n.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to read nonce state for %s: %w", n.ID, err)
		}
		statuses = append(statuses, faucet.NetworkStatus{
			ID:           n.ID,
			GrantsIssued: count,
			NextNonce:    next,
		})
	}
	return &faucet.StatusResponse{Networks: statuses}, nil
}
