package history

import (
	"github.com/tidyfile/tidy/models"
)

// QueryOptions filter history reads. A zero Limit means no limit; an empty
// Type matches every operation type.
type QueryOptions struct {
	Limit int
	Type  models.OperationType
}

// GetHistory returns entries newest first, filtered by type, capped at Limit.
func GetHistory(s *Storage, opts QueryOptions) ([]models.OperationHistoryEntry, error) {
	store, err := s.Load()
	if err != nil {
		return nil, err
	}

	out := make([]models.OperationHistoryEntry, 0, len(store.Entries))
	for _, e := range store.Entries {
		if opts.Type != "" && e.OperationType != opts.Type {
			continue
		}
		out = append(out, e)
		if opts.Limit > 0 && len(out) == opts.Limit {
			break
		}
	}
	return out, nil
}

// GetHistoryEntry returns the entry with the given id, or nil when no entry
// matches.
func GetHistoryEntry(s *Storage, id string) (*models.OperationHistoryEntry, error) {
	store, err := s.Load()
	if err != nil {
		return nil, err
	}
	for i := range store.Entries {
		if store.Entries[i].ID == id {
			e := store.Entries[i]
			return &e, nil
		}
	}
	return nil, nil
}

// GetHistoryCount returns the number of entries matching the type filter.
func GetHistoryCount(s *Storage, operationType models.OperationType) (int, error) {
	store, err := s.Load()
	if err != nil {
		return 0, err
	}
	if operationType == "" {
		return len(store.Entries), nil
	}
	n := 0
	for _, e := range store.Entries {
		if e.OperationType == operationType {
			n++
		}
	}
	return n, nil
}
