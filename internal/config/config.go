package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MarkoPoloResearchLab/lending/pkg/lending"
	"github.com/spf13/viper"
)

const (
	envPrefix = "LENDING"

	KeyMaxLTVBps               = "max_ltv_bps"
	KeyLiquidationThresholdBps = "liquidation_threshold_bps"
	KeyLogLevel                = "log_level"
	KeyMetricsNamespace        = "metrics_namespace"
	KeyConfigFile              = "config_file"

	defaultMaxLTVBps               uint64 = 7500
	defaultLiquidationThresholdBps uint64 = 8000
	defaultLogLevel                       = "info"
	defaultMetricsNamespace               = "lending"
)

// ErrInvalidConfig reports a configuration that cannot run the service.
var ErrInvalidConfig = errors.New("invalid config")

// Config aggregates runtime settings for the lending service.
type Config struct {
	MaxLTVBps               uint64
	LiquidationThresholdBps uint64
	LogLevel                string
	MetricsNamespace        string
}

// Load reads configuration from environment (LENDING_*), an optional config
// file named by config_file, and values already set on source.
func Load(source *viper.Viper) (Config, error) {
	if source == nil {
		source = viper.New()
	}
	source.SetEnvPrefix(envPrefix)
	source.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	source.AutomaticEnv()

	source.SetDefault(KeyMaxLTVBps, defaultMaxLTVBps)
	source.SetDefault(KeyLiquidationThresholdBps, defaultLiquidationThresholdBps)
	source.SetDefault(KeyLogLevel, defaultLogLevel)
	source.SetDefault(KeyMetricsNamespace, defaultMetricsNamespace)

	if configFile := strings.TrimSpace(source.GetString(KeyConfigFile)); configFile != "" {
		source.SetConfigFile(configFile)
		if err := source.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", configFile, err)
		}
	}

	cfg := Config{
		MaxLTVBps:               source.GetUint64(KeyMaxLTVBps),
		LiquidationThresholdBps: source.GetUint64(KeyLiquidationThresholdBps),
		LogLevel:                source.GetString(KeyLogLevel),
		MetricsNamespace:        source.GetString(KeyMetricsNamespace),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate fills empty values with defaults and checks the risk parameters.
func (cfg *Config) Validate() error {
	if cfg.MaxLTVBps == 0 {
		cfg.MaxLTVBps = defaultMaxLTVBps
	}
	if cfg.LiquidationThresholdBps == 0 {
		cfg.LiquidationThresholdBps = defaultLiquidationThresholdBps
	}
	cfg.LogLevel = defaultIfEmpty(cfg.LogLevel, defaultLogLevel)
	cfg.MetricsNamespace = defaultIfEmpty(cfg.MetricsNamespace, defaultMetricsNamespace)
	if _, err := cfg.RiskParameters(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// RiskParameters converts the configured limits.
func (cfg Config) RiskParameters() (lending.RiskParameters, error) {
	return lending.NewRiskParameters(cfg.MaxLTVBps, cfg.LiquidationThresholdBps)
}

func defaultIfEmpty(value string, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return strings.TrimSpace(value)
}
