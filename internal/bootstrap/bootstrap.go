package bootstrap

import (
	"errors"
	"fmt"

	"github.com/MarkoPoloResearchLab/lending/internal/config"
	"github.com/MarkoPoloResearchLab/lending/internal/metrics"
	"github.com/MarkoPoloResearchLab/lending/internal/store/memstore"
	"github.com/MarkoPoloResearchLab/lending/internal/tracing"
	"github.com/MarkoPoloResearchLab/lending/internal/zaplog"
	"github.com/MarkoPoloResearchLab/lending/pkg/lending"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var errNilLogger = errors.New("bootstrap: logger is required")

// Runtime bundles the assembled service with the dependencies it was built from.
type Runtime struct {
	Config  config.Config
	Logger  *zap.Logger
	Store   *memstore.Store
	Service *lending.Service
}

// Load reads configuration from source and assembles a Runtime.
func Load(source *viper.Viper, registerer prometheus.Registerer) (*Runtime, error) {
	cfg, err := config.Load(source)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := zaplog.New(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	store := memstore.New()
	service, err := newService(cfg, store, logger, registerer)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}
	logger.Info("lending service ready",
		zap.Uint64("max_ltv_bps", cfg.MaxLTVBps),
		zap.Uint64("liquidation_threshold_bps", cfg.LiquidationThresholdBps),
	)
	return &Runtime{Config: cfg, Logger: logger, Store: store, Service: service}, nil
}

// NewService wires an in-memory store and the zap, prometheus and span
// operation loggers into a lending.Service.
func NewService(cfg config.Config, logger *zap.Logger, registerer prometheus.Registerer) (*lending.Service, error) {
	return newService(cfg, memstore.New(), logger, registerer)
}

func newService(cfg config.Config, store lending.Store, logger *zap.Logger, registerer prometheus.Registerer) (*lending.Service, error) {
	if logger == nil {
		return nil, errNilLogger
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	params, err := cfg.RiskParameters()
	if err != nil {
		return nil, err
	}
	operationMetrics, err := metrics.NewOperationMetrics(cfg.MetricsNamespace, registerer)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}
	operationLogger := lending.MultiOperationLogger(
		zaplog.NewOperationLogger(logger),
		operationMetrics,
		tracing.NewSpanLogger(),
	)
	service, err := lending.NewService(store, params, lending.WithOperationLogger(operationLogger))
	if err != nil {
		return nil, fmt.Errorf("init lending service: %w", err)
	}
	return service, nil
}
