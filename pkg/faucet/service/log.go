package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chainsafe/mina-faucet/pkg/faucet"
)

const serviceName = "FaucetService"

// logService wraps Service with automatic logging of all method calls
type logService struct {
	svc    Service
	logger *zap.Logger
}

// NewLog creates a logging decorator for the faucet Service.
// It logs method entry/exit, duration, errors, and the classified status.
func NewLog(svc Service, logger *zap.Logger) Service {
	return &logService{
		svc:    svc,
		logger: logger,
	}
}

// Grant wraps the service method with logging. Each request gets its own
// correlation id so the pipeline log lines can be stitched together.
func (ls *logService) Grant(ctx context.Context, req *faucet.Request) (resp *faucet.Response, err error) {
	start := time.Now()
	requestID := uuid.NewString()

	ls.logger.Info("Grant started",
		zap.String("service", serviceName),
		zap.String("method", "Grant"),
		zap.String("request_id", requestID),
		zap.String("network", req.Network),
		zap.String("address", req.Address),
	)

	defer func() {
		duration := time.Since(start)

		if err != nil {
			ls.logger.Error("Grant failed",
				zap.String("service", serviceName),
				zap.String("method", "Grant"),
				zap.String("request_id", requestID),
				zap.String("network", req.Network),
				zap.Duration("duration", duration),
				zap.Error(err),
			)
			return
		}

		fields := []zap.Field{
			zap.String("service", serviceName),
			zap.String("method", "Grant"),
			zap.String("request_id", requestID),
			zap.String("network", req.Network),
			zap.String("status", resp.Status),
			zap.Duration("duration", duration),
		}
		if resp.Message != nil {
			fields = append(fields, zap.String("payment_id", resp.Message.PaymentID))
		}
		ls.logger.Info("Grant completed", fields...)
	}()

	return ls.svc.Grant(ctx, req)
}

// Networks wraps the service method. Listing is read-only and cheap, so
// it logs at debug only.
func (ls *logService) Networks() []faucet.NetworkInfo {
	infos := ls.svc.Networks()
	ls.logger.Debug("Networks listed",
		zap.String("service", serviceName),
		zap.Int("count", len(infos)),
	)
	return infos
}

// Status wraps the service method with logging
func (ls *logService) Status(ctx context.Context) (resp *faucet.StatusResponse, err error) {
	start := time.Now()

	defer func() {
		duration := time.Since(start)
		if err != nil {
			ls.logger.Error("Status failed",
				zap.String("service", serviceName),
				zap.String("method", "Status"),
				zap.Duration("duration", duration),
				zap.Error(err),
			)
			return
		}
		ls.logger.Debug("Status completed",
			zap.String("service", serviceName),
			zap.String("method", "Status"),
			zap.Int("networks", len(resp.Networks)),
			zap.Duration("duration", duration),
		)
	}()

	return ls.svc.Status(ctx)
}
