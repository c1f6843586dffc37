package zaplog

import (
	"context"
	"fmt"

	"github.com/MarkoPoloResearchLab/lending/pkg/lending"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	messageOperation = "lending operation"
	fieldKind        = "error_kind"
	fieldCode        = "error_code"
)

// New builds a production logger at the given level ("debug", "info", ...).
func New(level string) (*zap.Logger, error) {
	parsedLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(parsedLevel)
	return config.Build()
}

// OperationLogger writes lending operations to a zap logger. Rejections that
// carry a kind are warnings; other failures are errors.
type OperationLogger struct {
	logger *zap.Logger
}

// NewOperationLogger wraps logger; a nil logger discards entries.
func NewOperationLogger(logger *zap.Logger) *OperationLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OperationLogger{logger: logger}
}

func (operationLogger *OperationLogger) LogOperation(_ context.Context, entry lending.OperationLog) {
	fields := []zap.Field{
		zap.String("operation_id", entry.OperationID),
		zap.String("operation", entry.Operation),
		zap.String("position_id", entry.PositionID.String()),
		zap.Int64("amount_cents", entry.Amount.Int64()),
		zap.String("status", entry.Status),
	}
	if !entry.Failed() {
		operationLogger.logger.Info(messageOperation, fields...)
		return
	}
	fields = append(fields, zap.Error(entry.Error))
	kind, ok := entry.Kind()
	if !ok {
		operationLogger.logger.Error(messageOperation, fields...)
		return
	}
	fields = append(fields, zap.Stringer(fieldKind, kind), zap.Uint32(fieldCode, kind.Code()))
	operationLogger.logger.Warn(messageOperation, fields...)
}
