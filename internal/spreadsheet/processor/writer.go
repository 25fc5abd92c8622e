// Writer takes a submission from the entry form and creates a new record for
// it in the store. The store has no transactions, so the record is built by
// copying the template region, writing every cell, and deleting the copy
// again if any of that fails. A submission either ends up as a complete
// record or leaves nothing behind.

package processor

import (
	"context"
	"time"

	"github.com/hashicorp/go-uuid"
	"go.uber.org/zap"

	"github.com/materials-commons/mcsqa/internal/spreadsheet"
	"github.com/materials-commons/mcsqa/internal/spreadsheet/model"
	"github.com/materials-commons/mcsqa/internal/spreadsheet/stats"
	"github.com/materials-commons/mcsqa/internal/store"
)

// DefaultTemplate is the name of the region new records are copied from.
const DefaultTemplate = "Template"

type Writer struct {
	// Template is the region each new record is a copy of.
	Template string

	store  store.Store
	logger *zap.Logger

	// now is used to timestamp receipts
	now func() time.Time
}

// Receipt describes what happened to a submission. It is returned whether
// or not the submission succeeded.
type Receipt struct {
	// AttemptID identifies this submission in the log.
	AttemptID string

	// State is the last state reached, Committed on success.
	State State

	// Key is the record name, set once the key has been resolved.
	Key    string
	Region store.Region

	Submission  *model.Submission
	Derived     stats.Derived
	SubmittedAt time.Time

	// RollbackErr is set when deleting the partly written region failed.
	// The region may still be in the store and needs removing by hand.
	RollbackErr error
}

func NewWriter(s store.Store, template string, logger *zap.Logger) *Writer {
	if template == "" {
		template = DefaultTemplate
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Writer{
		Template: template,
		store:    s,
		logger:   logger,
		now:      time.Now,
	}
}

// Submit validates raw and writes it to a new record. On success the
// receipt's State is Committed and Key is the name of the new record.
//
// Errors are returned as they happened:
//   - *spreadsheet.ValidationError when the payload is bad
//   - *spreadsheet.InvalidDateError or *spreadsheet.DuplicateRecordError when no key can be made
//   - *store.Error when the store fails
//
// If the store fails after the record region was created the region is
// deleted and the store error that caused it is returned. Should the delete
// fail as well, that is logged and set on Receipt.RollbackErr, it does not
// replace the original error.
//
// ctx is only honoured up to the point the region is created. From then on
// Submit runs to Committed or RolledBack so a cancel can't strand a half
// written record. Nothing is retried, a retry is the caller's decision.
func (w *Writer) Submit(ctx context.Context, raw *model.RawSubmission) (*Receipt, error) {
	receipt := &Receipt{AttemptID: newAttemptID(), State: Idle}
	log := w.logger.With(zap.String("attempt", receipt.AttemptID))

	// Idle -> Validating
	receipt.State = Validating
	sub, err := spreadsheet.Normalize(raw)
	if err != nil {
		receipt.State = Idle
		log.Debug("submission rejected", zap.Error(err))
		return receipt, err
	}
	receipt.Submission = sub

	// Validating -> KeyResolved
	names, err := w.store.ListRegionNames(ctx)
	if err != nil {
		return receipt, store.Wrap(store.OpList, "", "", err)
	}

	key, err := spreadsheet.BuildKey(sub, store.NameSet(names))
	if err != nil {
		log.Debug("no record key", zap.Error(err))
		return receipt, err
	}
	receipt.Key = key
	receipt.State = KeyResolved
	log = log.With(zap.String("record", key))
	log.Debug("record key resolved")

	// KeyResolved -> TableDuplicated
	region, err := w.store.DuplicateRegion(ctx, w.Template, key)
	if err != nil {
		// Nothing was created so there is nothing to undo.
		return receipt, store.Wrap(store.OpDuplicate, key, "", err)
	}
	receipt.Region = region
	receipt.State = TableDuplicated
	log.Debug("template duplicated", zap.String("template", w.Template))

	ctx = context.WithoutCancel(ctx)

	// TableDuplicated -> FieldsWritten
	receipt.Derived = stats.Derive(sub)
	for _, write := range spreadsheet.PlaceFields(sub, receipt.Derived) {
		if err := w.store.WriteCell(ctx, region, write.Coordinate, write.Value); err != nil {
			return receipt, w.rollback(ctx, log, receipt, store.Wrap(store.OpWrite, region.Name, write.Coordinate, err))
		}
	}
	receipt.State = FieldsWritten

	if f, ok := w.store.(store.Finalizer); ok {
		if err := f.Finalize(ctx, region); err != nil {
			return receipt, w.rollback(ctx, log, receipt, store.Wrap(store.OpFinalize, region.Name, "", err))
		}
	}

	// FieldsWritten -> Committed
	receipt.State = Committed
	receipt.SubmittedAt = w.now()
	log.Info("record created")

	return receipt, nil
}

// rollback deletes the region created for a failed submission and returns
// cause, the error that made the rollback necessary.
func (w *Writer) rollback(ctx context.Context, log *zap.Logger, receipt *Receipt, cause error) error {
	log.Warn("record write failed, rolling back", zap.Error(cause))
	receipt.State = RolledBack

	if err := w.store.DeleteRegion(ctx, receipt.Region); err != nil {
		receipt.RollbackErr = store.Wrap(store.OpDelete, receipt.Region.Name, "", err)
		log.Error("rollback failed, partial record left in store",
			zap.Error(receipt.RollbackErr), zap.NamedError("cause", cause))
		return cause
	}

	log.Debug("rolled back")
	return cause
}

func newAttemptID() string {
	id, err := uuid.GenerateUUID()
	if err != nil {
		return "unknown"
	}
	return id
}
