package tracing

import (
	"context"

	"github.com/MarkoPoloResearchLab/lending/pkg/lending"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	eventPrefix        = "lending."
	attributeOperation = "lending.operation.id"
	attributePosition  = "lending.position.id"
	attributeAmount    = "lending.amount_cents"
	attributeKind      = "lending.error.kind"
	attributeCode      = "lending.error.code"
)

// SpanLogger annotates the span found in the operation's context.
type SpanLogger struct{}

// NewSpanLogger returns a SpanLogger.
func NewSpanLogger() SpanLogger {
	return SpanLogger{}
}

func (SpanLogger) LogOperation(ctx context.Context, entry lending.OperationLog) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	attributes := []attribute.KeyValue{
		attribute.String(attributeOperation, entry.OperationID),
		attribute.String(attributePosition, entry.PositionID.String()),
		attribute.Int64(attributeAmount, entry.Amount.Int64()),
	}
	if kind, ok := entry.Kind(); ok {
		attributes = append(attributes,
			attribute.String(attributeKind, kind.String()),
			attribute.Int64(attributeCode, int64(kind.Code())),
		)
	}
	span.AddEvent(eventPrefix+entry.Operation, trace.WithAttributes(attributes...))
	if !entry.Failed() {
		return
	}
	span.RecordError(entry.Error)
	span.SetStatus(codes.Error, entry.Error.Error())
	if kind, ok := entry.Kind(); ok {
		span.SetAttributes(
			attribute.String(attributeKind, kind.String()),
			attribute.Int64(attributeCode, int64(kind.Code())),
		)
	}
}
