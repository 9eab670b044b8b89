package history

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tidyfile/tidy/models"
)

// CreateEntryFromResult converts a batch execution result into a history
// entry. The operation type is "move" when any file moved directories,
// otherwise "rename".
func CreateEntryFromResult(result *models.BatchRenameResult) models.OperationHistoryEntry {
	entry := models.OperationHistoryEntry{
		ID:                 uuid.New().String(),
		Timestamp:          time.Now().UTC().Format(time.RFC3339Nano),
		OperationType:      models.OperationRename,
		FileCount:          len(result.Results),
		DurationMs:         result.DurationMs,
		DirectoriesCreated: result.DirectoriesCreated,
		Summary: models.OperationSummary{
			Succeeded:          result.Summary.Succeeded,
			Skipped:            result.Summary.Skipped,
			Failed:             result.Summary.Failed,
			DirectoriesCreated: result.Summary.DirectoriesCreated,
		},
	}
	for _, r := range result.Results {
		if r.IsMoveOperation {
			entry.OperationType = models.OperationMove
		}
		entry.Files = append(entry.Files, models.FileHistoryRecord{
			OriginalPath:    r.OriginalPath,
			NewPath:         r.NewPath,
			IsMoveOperation: r.IsMoveOperation,
			Success:         r.Outcome == models.OutcomeSuccess,
			Error:           r.Error,
		})
	}
	return entry
}

// RecordOperation prepends a new entry for the batch result and persists the
// store. Entries beyond maxEntries (MaxEntries when <= 0) are pruned oldest
// first; the pruned tail is returned so callers can archive it.
func RecordOperation(s *Storage, result *models.BatchRenameResult, maxEntries int) (*models.OperationHistoryEntry, []models.OperationHistoryEntry, error) {
	if maxEntries <= 0 {
		maxEntries = MaxEntries
	}

	store, err := s.Load()
	if err != nil {
		return nil, nil, err
	}

	entry := CreateEntryFromResult(result)
	store.Entries = append([]models.OperationHistoryEntry{entry}, store.Entries...)

	var pruned []models.OperationHistoryEntry
	if len(store.Entries) > maxEntries {
		pruned = store.Entries[maxEntries:]
		store.Entries = store.Entries[:maxEntries]
		store.LastPruned = time.Now().UTC().Format(time.RFC3339Nano)
	}

	if err := s.Save(store); err != nil {
		return nil, nil, fmt.Errorf("failed to record operation: %v", err)
	}
	return &entry, pruned, nil
}

// PruneStore trims the store down to maxEntries (MaxEntries when <= 0)
// outside of a record, returning the pruned tail. The store is only written
// when something was actually pruned.
func PruneStore(s *Storage, maxEntries int) ([]models.OperationHistoryEntry, error) {
	if maxEntries <= 0 {
		maxEntries = MaxEntries
	}
	store, err := s.Load()
	if err != nil {
		return nil, err
	}
	if len(store.Entries) <= maxEntries {
		return nil, nil
	}

	pruned := store.Entries[maxEntries:]
	store.Entries = store.Entries[:maxEntries]
	store.LastPruned = time.Now().UTC().Format(time.RFC3339Nano)
	if err := s.Save(store); err != nil {
		return nil, fmt.Errorf("failed to prune history: %v", err)
	}
	return pruned, nil
}
