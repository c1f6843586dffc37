package lending

import "context"

// ServiceOption configures a Service instance.
type ServiceOption func(*Service)

// OperationLogger records domain-level events emitted by Service operations.
type OperationLogger interface {
	LogOperation(ctx context.Context, entry OperationLog)
}

// OperationLog describes a state-changing lending operation.
type OperationLog struct {
	OperationID string
	Operation   string
	PositionID  PositionID
	Amount      AmountCents
	Status      string
	Error       error
}

// Kind returns the failure kind carried by Error, if any.
func (entry OperationLog) Kind() (Kind, bool) {
	return KindOf(entry.Error)
}

// Failed reports whether the operation returned an error.
func (entry OperationLog) Failed() bool {
	return entry.Status == operationStatusError
}

// WithOperationLogger wires a logger that receives callbacks for every operation.
func WithOperationLogger(logger OperationLogger) ServiceOption {
	return func(service *Service) {
		service.logger = logger
	}
}

// WithIDGenerator replaces the operation id source.
func WithIDGenerator(generate func() string) ServiceOption {
	return func(service *Service) {
		if generate != nil {
			service.newID = generate
		}
	}
}

type multiOperationLogger []OperationLogger

// MultiOperationLogger fans one entry out to every non-nil logger in order.
func MultiOperationLogger(loggers ...OperationLogger) OperationLogger {
	filtered := make(multiOperationLogger, 0, len(loggers))
	for _, logger := range loggers {
		if logger != nil {
			filtered = append(filtered, logger)
		}
	}
	return filtered
}

func (loggers multiOperationLogger) LogOperation(ctx context.Context, entry OperationLog) {
	for _, logger := range loggers {
		logger.LogOperation(ctx, entry)
	}
}
