package notifier

import (
	"context"

	"github.com/moneta/finance-tracker/pkg/models"
)

// Notifier defines the interface for a component that announces materialized
// occurrences to downstream consumers (notification delivery, analytics).
// Publication is best-effort: the materializer logs a failure and moves on.
type Notifier interface {
	// OccurrenceCreated publishes a newly materialized occurrence.
	OccurrenceCreated(ctx context.Context, occurrence *models.Transaction) error
}
