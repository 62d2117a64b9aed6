package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/joojungwoo/yakson/internal/adapters/server"
	"github.com/joojungwoo/yakson/internal/config"
	"github.com/joojungwoo/yakson/internal/core"
	"github.com/joojungwoo/yakson/internal/ports"
)

// ServerFactory creates analysis servers based on configuration
type ServerFactory struct {
	cfg     *config.Config
	logger  *zap.Logger
	service *core.AnalysisService
}

// NewServerFactory creates a new server factory
func NewServerFactory(cfg *config.Config, logger *zap.Logger, service *core.AnalysisService) *ServerFactory {
	return &ServerFactory{
		cfg:     cfg,
		logger:  logger,
		service: service,
	}
}

// CreateAnalysisServer creates an analysis server based on the configuration
func (f *ServerFactory) CreateAnalysisServer() (ports.AnalysisServer, error) {
	readTimeout, err := f.cfg.GetDuration("server.read_timeout")
	if err != nil {
		return nil, fmt.Errorf("invalid server read timeout: %w", err)
	}
	writeTimeout, err := f.cfg.GetDuration("server.write_timeout")
	if err != nil {
		return nil, fmt.Errorf("invalid server write timeout: %w", err)
	}

	return server.NewHTTPServer(
		f.service,
		f.logger,
		f.cfg.GetString("server.listen_address"),
		f.cfg.GetString("analyze.default_lang"),
		f.cfg.GetStringSlice("server.allowed_origins"),
		readTimeout,
		writeTimeout,
	), nil
}
