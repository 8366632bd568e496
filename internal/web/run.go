package web

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/bigredeye/studentmanager/internal/config"
	lf "github.com/bigredeye/studentmanager/internal/logfield"
)

func Run(ctx context.Context, config *config.Config, logger *zap.Logger) error {
	logger.Info("Parsed config", zap.Any("backend", config.Backend), zap.Any("sessions", config.Sessions))

	s, err := newServer(config, logger)
	if err != nil {
		return errors.Wrap(err, "Failed to start server")
	}

	if config.Backend.WaitTimeout > 0 {
		err := s.client.WaitReady(ctx, config.Backend.WaitTimeout, func(err error, next time.Duration) {
			logger.Warn("Backend is not ready", lf.Endpoint(s.client.BaseURL()), zap.Error(err), zap.Duration("retry_in", next))
		})
		if err != nil {
			return err
		}
		logger.Info("Backend is ready", lf.Endpoint(s.client.BaseURL()))
	}

	return errors.Wrap(s.run(ctx), "Server failed")
}
