// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, operating-window gate,
// transaction management, and persistence.
package commands

import (
	"context"
	"errors"
	"time"

	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/ports"
)

// ErrOutsideOperatingWindow is returned when a mutating operation is attempted
// outside the daily pickup window. It is checked before any storage access and
// is never retried automatically.
var ErrOutsideOperatingWindow = errors.New("operation attempted outside the operating window")

type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OrderUoW manages transactions for order mutations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// OrderViewLoader loads the fully assembled order view (recipient,
	// deliveryman with avatar, signature) for command responses and
	// notification payloads.
	OrderViewLoader interface {
		Load(ctx context.Context, orderID kernel.UUID) (queries.OrderView, error)
	}

	// NotificationDispatcher accepts order-created notification jobs for
	// asynchronous processing. Enqueue never blocks and never fails the
	// caller; delivery failures are the dispatcher's own problem.
	NotificationDispatcher interface {
		EnqueueOrderCreated(view queries.OrderView)
	}

	// Clock supplies the current time to handlers, keeping the
	// operating-window gate and lifecycle timestamps testable.
	Clock interface {
		Now() time.Time
	}
)

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// NewSystemClock returns a Clock backed by the wall clock in local time,
// which is the time zone the operating window is defined in.
func NewSystemClock() Clock {
	return systemClock{}
}
