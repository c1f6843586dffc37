package bootstrap

import (
	"context"
	"errors"
	"testing"

	"github.com/MarkoPoloResearchLab/lending/internal/config"
	"github.com/MarkoPoloResearchLab/lending/internal/grpcstatus"
	"github.com/MarkoPoloResearchLab/lending/pkg/lending"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestNewServiceRejectionFlowsThroughEveryAdapter(test *testing.T) {
	test.Parallel()
	core, logs := observer.New(zapcore.DebugLevel)
	registry := prometheus.NewRegistry()
	service, err := NewService(config.Config{}, zap.New(core), registry)
	if err != nil {
		test.Fatalf("new service: %v", err)
	}

	ctx := context.Background()
	positionID, err := lending.NewPositionID("alice")
	if err != nil {
		test.Fatalf("position id: %v", err)
	}
	if err := service.Deposit(ctx, positionID, mustPositiveAmount(test, 1000)); err != nil {
		test.Fatalf("deposit: %v", err)
	}
	if err := service.PostCollateral(ctx, positionID, mustPositiveAmount(test, 1000)); err != nil {
		test.Fatalf("post collateral: %v", err)
	}
	borrowErr := service.Borrow(ctx, positionID, mustPositiveAmount(test, 800))
	if !errors.Is(borrowErr, lending.ErrOverBorrowableAmount) {
		test.Fatalf("expected over borrowable amount, got %v", borrowErr)
	}

	if got := status.Code(grpcstatus.ToStatus(borrowErr)); got != codes.OutOfRange {
		test.Fatalf("expected OutOfRange, got %v", got)
	}
	if got := logs.FilterField(zap.Stringer("error_kind", lending.KindOverBorrowableAmount)).Len(); got != 1 {
		test.Fatalf("expected one kind-tagged log entry, got %d", got)
	}
	count, err := testutil.GatherAndCount(registry, "lending_operation_failures_total")
	if err != nil {
		test.Fatalf("gather: %v", err)
	}
	if count != 1 {
		test.Fatalf("expected one failure series, got %d", count)
	}
}

func TestNewServiceRequiresLogger(test *testing.T) {
	test.Parallel()
	if _, err := NewService(config.Config{}, nil, nil); !errors.Is(err, errNilLogger) {
		test.Fatalf("expected nil logger error, got %v", err)
	}
}

func TestNewServiceRejectsInvalidConfig(test *testing.T) {
	test.Parallel()
	cfg := config.Config{MaxLTVBps: 9500, LiquidationThresholdBps: 9000}
	if _, err := NewService(cfg, zap.NewNop(), nil); !errors.Is(err, config.ErrInvalidConfig) {
		test.Fatalf("expected invalid config, got %v", err)
	}
}

func TestLoadAssemblesRuntime(test *testing.T) {
	test.Parallel()
	source := viper.New()
	source.Set(config.KeyLogLevel, "error")
	source.Set(config.KeyMetricsNamespace, "lending_runtime")
	runtime, err := Load(source, prometheus.NewRegistry())
	if err != nil {
		test.Fatalf("load: %v", err)
	}
	if runtime.Service.RiskParameters().MaxLTVBps != runtime.Config.MaxLTVBps {
		test.Fatalf("service and config disagree: %+v vs %+v", runtime.Service.RiskParameters(), runtime.Config)
	}
	positionID, _ := lending.NewPositionID("bob")
	if err := runtime.Service.Deposit(context.Background(), positionID, mustPositiveAmount(test, 5)); err != nil {
		test.Fatalf("deposit: %v", err)
	}
	if runtime.Store.Len() != 1 {
		test.Fatalf("expected one stored position, got %d", runtime.Store.Len())
	}
}

func TestLoadRejectsInvalidLogLevel(test *testing.T) {
	test.Parallel()
	source := viper.New()
	source.Set(config.KeyLogLevel, "chatty")
	if _, err := Load(source, nil); err == nil {
		test.Fatalf("expected invalid log level error")
	}
}

func mustPositiveAmount(test *testing.T, value int64) lending.PositiveAmountCents {
	test.Helper()
	amount, err := lending.NewPositiveAmountCents(value)
	if err != nil {
		test.Fatalf("amount: %v", err)
	}
	return amount
}
