// Package materializer implements the recurring-transaction materialization
// job: for every recurring template it ensures the occurrences due within the
// lookahead window exist as concrete transactions, each paired with its
// wallet balance adjustment.
//
// The job keeps no state of its own. Every run re-derives the due dates for
// the current window and the dedup check (plus the deterministic occurrence
// id) makes repeated or overlapping runs converge on the same result.
package materializer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/moneta/finance-tracker/pkg/models"
	"github.com/moneta/finance-tracker/pkg/notifier"
	"github.com/moneta/finance-tracker/pkg/recurrence"
	"github.com/moneta/finance-tracker/pkg/storage"
)

// LookaheadDays is the length of the rolling window: occurrences due within
// [today, today+LookaheadDays] are materialized on each run.
const LookaheadDays = 7

// occurrenceNamespace is the fixed UUIDv5 namespace for occurrence ids.
// Deriving the id from (template id, due date) means two racing runs write
// the same item key and the store's conditional put rejects the loser.
var occurrenceNamespace = uuid.MustParse("5a1c8e7d-43bb-49c2-9d2e-6f0a8b1a7e44")

// Summary reports the outcome of one materialization run.
type Summary struct {
	Processed int `json:"processed"`
	Created   int `json:"created"`
	Failed    int `json:"failed"`
}

// Materializer runs the recurring-transaction materialization job against a
// storage backend.
type Materializer struct {
	Store    storage.MaterializerStore
	Notifier notifier.Notifier
	Logger   *slog.Logger
}

// New creates a Materializer. The notifier is optional; pass nil to skip
// publication of created occurrences.
func New(store storage.MaterializerStore, n notifier.Notifier, logger *slog.Logger) *Materializer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Materializer{Store: store, Notifier: n, Logger: logger}
}

// Run materializes every due occurrence of every recurring template within
// the window anchored at now.
//
// A failure to list templates aborts the run. Any other failure is isolated
// to its template: it is logged, counted in Summary.Failed, and processing
// continues with the next template.
func (m *Materializer) Run(ctx context.Context, now time.Time) (Summary, error) {
	rangeStart := recurrence.Truncate(now)
	rangeEnd := rangeStart.AddDate(0, 0, LookaheadDays)

	templates, err := m.Store.ListRecurringTemplates(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to list recurring templates: %w", err)
	}

	m.Logger.Info("processing recurring templates",
		"templates", len(templates),
		"range_start", rangeStart.Format(models.DateLayout),
		"range_end", rangeEnd.Format(models.DateLayout))

	var summary Summary
	for i := range templates {
		template := &templates[i]
		summary.Processed++

		created, err := m.processTemplate(ctx, template, rangeStart, rangeEnd, now)
		summary.Created += created
		if err != nil {
			summary.Failed++
			m.Logger.Error("failed to process recurring template",
				"template_id", template.Id,
				"wallet_id", template.WalletId,
				"error", err)
			continue
		}
	}

	m.Logger.Info("recurring materialization complete",
		"processed", summary.Processed,
		"created", summary.Created,
		"failed", summary.Failed)

	return summary, nil
}

// processTemplate materializes the template's due occurrences, returning how
// many were created. A partial count is returned alongside an error when a
// later occurrence fails; the stateless window scan retries the remainder on
// the next run.
func (m *Materializer) processTemplate(ctx context.Context, template *models.Transaction, rangeStart, rangeEnd, now time.Time) (int, error) {
	anchor, err := time.Parse(models.DateLayout, template.Date)
	if err != nil {
		return 0, fmt.Errorf("invalid anchor date %q: %w", template.Date, err)
	}

	created := 0
	for _, dueDate := range recurrence.DueDates(anchor, template.Recurrence, rangeStart, rangeEnd) {
		ok, err := m.materializeOccurrence(ctx, template, dueDate, now)
		if err != nil {
			return created, err
		}
		if ok {
			created++
		}
	}
	return created, nil
}

// materializeOccurrence creates the occurrence for one due date unless it
// already exists. Returns true only when a new occurrence was written.
func (m *Materializer) materializeOccurrence(ctx context.Context, template *models.Transaction, dueDate string, now time.Time) (bool, error) {
	existing, err := m.Store.FindOccurrence(ctx, template.WalletId, dueDate, template.Id)
	if err != nil {
		return false, fmt.Errorf("dedup check for %s: %w", dueDate, err)
	}
	if existing != nil {
		// Already materialized by an earlier run.
		return false, nil
	}

	occurrence := NewOccurrence(template, dueDate, now)
	if err := m.Store.MaterializeOccurrence(ctx, occurrence); err != nil {
		if errors.Is(err, storage.ErrOccurrenceExists) {
			// A concurrent run won the race between our dedup check and the
			// write; the occurrence exists, so there is nothing left to do.
			return false, nil
		}
		return false, fmt.Errorf("materialize occurrence for %s: %w", dueDate, err)
	}

	if m.Notifier != nil {
		if err := m.Notifier.OccurrenceCreated(ctx, occurrence); err != nil {
			m.Logger.Error("occurrence created but failed to publish",
				"occurrence_id", occurrence.Id,
				"error", err)
		}
	}

	return true, nil
}

// NewOccurrence builds the materialized occurrence of a template for a due
// date. Descriptive fields are copied from the template; the recurrence rule
// is reset so the occurrence is never scanned as a template itself.
func NewOccurrence(template *models.Transaction, dueDate string, now time.Time) *models.Transaction {
	return &models.Transaction{
		Id:                  OccurrenceID(template.Id, dueDate),
		UserId:              template.UserId,
		WalletId:            template.WalletId,
		Amount:              template.Amount,
		Date:                dueDate,
		Description:         template.Description + " (recurring)",
		Category:            template.Category,
		Type:                template.Type,
		Labels:              template.Labels,
		Avoidable:           template.Avoidable,
		Recurrence:          models.NEVER,
		ParentTransactionId: template.Id,
		IsRecurring:         true,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

// OccurrenceID derives the deterministic id of a template's occurrence on a
// given due date.
func OccurrenceID(parentTransactionID, dueDate string) string {
	return uuid.NewSHA1(occurrenceNamespace, []byte(parentTransactionID+"#"+dueDate)).String()
}
