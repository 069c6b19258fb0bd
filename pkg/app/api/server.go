// Package api implements app.Runner for the faucet server process.
package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apphttp "github.com/chainsafe/mina-faucet/pkg/app/http"
	"github.com/chainsafe/mina-faucet/pkg/broadcast"
	"github.com/chainsafe/mina-faucet/pkg/config"
	faucetservice "github.com/chainsafe/mina-faucet/pkg/faucet/service"
	"github.com/chainsafe/mina-faucet/pkg/grantstore"
	"github.com/chainsafe/mina-faucet/pkg/keys"
	"github.com/chainsafe/mina-faucet/pkg/network"
	"github.com/chainsafe/mina-faucet/pkg/noncestore"
	"github.com/chainsafe/mina-faucet/pkg/payment"
	"github.com/chainsafe/mina-faucet/pkg/pgutil"
)

const defaultRequestTimeout = 60

// Server holds cfg to init the faucet server.
type Server struct {
	cfg *config.Config
}

// NewServer initializes new faucet server.
func NewServer(cfg *config.Config) *Server {
	return &Server{cfg: cfg}
}

func (s *Server) Run() error {
	if s.cfg == nil {
		return fmt.Errorf("faucet server config is nil")
	}
	cfg := s.cfg

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting faucet server",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
	)

	registry, err := network.FromSettings(cfg.Networks)
	if err != nil {
		return fmt.Errorf("load networks: %w", err)
	}
	logger.Info("Networks configured", zap.Int("count", len(cfg.Networks)))

	keypair, err := keys.Load(cfg.Faucet)
	if err != nil {
		return fmt.Errorf("load faucet keypair: %w", err)
	}
	logger.Info("Faucet keypair loaded", zap.String("public_key", keypair.PublicKey))

	db, err := pgutil.ConnectDB(&cfg.Database)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	builder := payment.NewBuilder(keypair, payment.NewEd25519Signer())
	broadcaster := broadcast.NewClient(cfg.Broadcast.RequestTimeout, logger)

	svc := faucetservice.NewService(
		registry,
		grantstore.NewStore(db),
		noncestore.NewStore(db),
		builder,
		broadcaster,
		nil,
		logger,
	)

	router := s.setupRouter(faucetservice.NewLog(svc, logger), logger)

	return apphttp.ServeAndWait(ctx, router, logger, &cfg.Server)
}

func (s *Server) setupRouter(svc faucetservice.Service, logger *zap.Logger) chi.Router {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(time.Second * defaultRequestTimeout))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	// Faucet endpoints
	r.Route("/api/v1", func(api chi.Router) {
		faucetservice.RegisterRoutes(api, svc, logger)
	})

	return r
}
