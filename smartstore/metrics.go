package smartstore

import (
	"fmt"

	"github.com/VictoriaMetrics/metrics"
)

// Operation results recorded in smartstore_operations_total.
const (
	resultOK      = "ok"
	resultMiss    = "miss"
	resultExpired = "expired"
	resultError   = "error"
)

// OperationsCounterName returns the metric name counting op calls with the
// given result for a namespace.
func OperationsCounterName(namespace, op, result string) string {
	return fmt.Sprintf(`smartstore_operations_total{namespace=%q,op=%q,result=%q}`, namespace, op, result)
}

func (s *Store) record(op, result string) {
	if !s.metrics {
		return
	}
	metrics.GetOrCreateCounter(OperationsCounterName(s.namespace, op, result)).Inc()
}
