package metrics

import (
	"context"
	"fmt"

	"github.com/MarkoPoloResearchLab/lending/pkg/lending"
	"github.com/prometheus/client_golang/prometheus"
)

const unclassifiedKind = "unclassified"

// OperationMetrics counts lending operations and their failures by kind.
type OperationMetrics struct {
	operations *prometheus.CounterVec
	failures   *prometheus.CounterVec
}

// NewOperationMetrics creates the counters and registers them on registerer.
func NewOperationMetrics(namespace string, registerer prometheus.Registerer) (*OperationMetrics, error) {
	operationMetrics := &OperationMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Count of lending operations by operation and status.",
		}, []string{"operation", "status"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_failures_total",
			Help:      "Count of failed lending operations by operation and error kind.",
		}, []string{"operation", "kind"}),
	}
	if registerer == nil {
		return operationMetrics, nil
	}
	for _, collector := range []prometheus.Collector{operationMetrics.operations, operationMetrics.failures} {
		if err := registerer.Register(collector); err != nil {
			return nil, fmt.Errorf("register lending metrics: %w", err)
		}
	}
	return operationMetrics, nil
}

func (operationMetrics *OperationMetrics) LogOperation(_ context.Context, entry lending.OperationLog) {
	if operationMetrics == nil {
		return
	}
	operationMetrics.operations.WithLabelValues(entry.Operation, entry.Status).Inc()
	if !entry.Failed() {
		return
	}
	kindLabel := unclassifiedKind
	if kind, ok := entry.Kind(); ok {
		kindLabel = kind.String()
	}
	operationMetrics.failures.WithLabelValues(entry.Operation, kindLabel).Inc()
}

// Operations exposes the operations counter.
func (operationMetrics *OperationMetrics) Operations() *prometheus.CounterVec {
	return operationMetrics.operations
}

// Failures exposes the failures counter.
func (operationMetrics *OperationMetrics) Failures() *prometheus.CounterVec {
	return operationMetrics.failures
}
