package payments

import (
	"context"
	"time"
)

// Feed provides payment records for a date window.
// The upstream fetch may be backed by any storage; the engine never cares.
type Feed interface {
	ListByWindow(ctx context.Context, from, to time.Time) ([]Record, error)
}

// StatusUpdater applies the only permitted mutation to a record.
type StatusUpdater interface {
	UpdateStatus(ctx context.Context, id string, status Status, exceptionReason string) error
}
