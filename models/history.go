package models

import "time"

// RenameOutcome is the result class for a single executed file.
type RenameOutcome string

const (
	OutcomeSuccess RenameOutcome = "success"
	OutcomeFailed  RenameOutcome = "failed"
	OutcomeSkipped RenameOutcome = "skipped"
)

// FileRenameResult reports the outcome of one file in a batch execution.
type FileRenameResult struct {
	ProposalID      string        `json:"proposalId"`
	OriginalPath    string        `json:"originalPath"`
	OriginalName    string        `json:"originalName"`
	NewPath         string        `json:"newPath,omitempty"`
	NewName         string        `json:"newName,omitempty"`
	IsMoveOperation bool          `json:"isMoveOperation"`
	Outcome         RenameOutcome `json:"outcome"`
	Error           string        `json:"error,omitempty"`
}

// BatchRenameSummary aggregates a batch execution.
type BatchRenameSummary struct {
	Total              int `json:"total"`
	Succeeded          int `json:"succeeded"`
	Failed             int `json:"failed"`
	Skipped            int `json:"skipped"`
	DirectoriesCreated int `json:"directoriesCreated"`
}

// BatchRenameResult is returned by the batch executor.
type BatchRenameResult struct {
	Success            bool               `json:"success"`
	Results            []FileRenameResult `json:"results"`
	Summary            BatchRenameSummary `json:"summary"`
	DirectoriesCreated []string           `json:"directoriesCreated,omitempty"`
	StartedAt          time.Time          `json:"startedAt"`
	CompletedAt        time.Time          `json:"completedAt"`
	DurationMs         int64              `json:"durationMs"`
}

// OperationType classifies a recorded operation.
type OperationType string

const (
	OperationRename   OperationType = "rename"
	OperationMove     OperationType = "move"
	OperationOrganize OperationType = "organize"
)

// FileHistoryRecord is the reversible record of one file within an operation.
type FileHistoryRecord struct {
	OriginalPath    string `json:"originalPath"`
	NewPath         string `json:"newPath,omitempty"`
	IsMoveOperation bool   `json:"isMoveOperation"`
	Success         bool   `json:"success"`
	Error           string `json:"error,omitempty"`
}

// OperationSummary aggregates an operation's file outcomes.
type OperationSummary struct {
	Succeeded          int `json:"succeeded"`
	Skipped            int `json:"skipped"`
	Failed             int `json:"failed"`
	DirectoriesCreated int `json:"directoriesCreated"`
}

// OperationHistoryEntry is an immutable record of one applied batch. Only
// UndoneAt may be set after creation, exactly once.
type OperationHistoryEntry struct {
	ID                 string              `json:"id"`
	Timestamp          string              `json:"timestamp"` // ISO-8601
	OperationType      OperationType       `json:"operationType"`
	FileCount          int                 `json:"fileCount"`
	Summary            OperationSummary    `json:"summary"`
	DurationMs         int64               `json:"durationMs"`
	Files              []FileHistoryRecord `json:"files"`
	DirectoriesCreated []string            `json:"directoriesCreated,omitempty"`
	UndoneAt           string              `json:"undoneAt,omitempty"`
}

// Time parses the entry timestamp. A zero time is returned for malformed
// timestamps so sorting stays total.
func (e *OperationHistoryEntry) Time() time.Time {
	t, err := time.Parse(time.RFC3339Nano, e.Timestamp)
	if err != nil {
		return time.Time{}
	}
	return t
}

// HistoryStoreVersion is the current on-disk schema version.
const HistoryStoreVersion = "1.0"

// HistoryStore is the persisted history document. Entries are ordered newest
// first; new entries are prepended, never appended.
type HistoryStore struct {
	Version    string                  `json:"version"`
	LastPruned string                  `json:"lastPruned,omitempty"`
	Entries    []OperationHistoryEntry `json:"entries"`
}

// NewHistoryStore returns an empty store at the current schema version.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{
		Version: HistoryStoreVersion,
		Entries: []OperationHistoryEntry{},
	}
}
