// Package records defines the ports of the expense record store and the
// factory that picks a concrete backend. The store is append-only with a
// full-scan read; there is no filtering, indexing or pagination contract.
package records

import (
	"context"

	"despesabot/internal/core"
)

// Ports for the store gateways.
type (
	// Appender persists one record. Fire-and-forget: callers get no
	// identifier back.
	Appender interface {
		Append(ctx context.Context, rec core.ExpenseRecord) error
	}

	// Scanner returns every stored record. Iteration order is whatever
	// the backend yields; insertion order where the backend has one.
	Scanner interface {
		Scan(ctx context.Context) ([]core.ExpenseRecord, error)
	}

	Store interface {
		Appender
		Scanner
	}
)
