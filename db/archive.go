package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tidyfile/tidy/models"
)

// Archive is the sqlite store for history entries pruned out of the JSON
// history file. Entries are stored whole as JSON alongside a few indexed
// columns for querying.
type Archive struct {
	db *sql.DB
}

// OpenArchive opens (and if needed creates and migrates) the archive at
// dbPath.
func OpenArchive(dbPath string) (*Archive, error) {
	database, err := setupDatabase(dbPath)
	if err != nil {
		return nil, err
	}
	return &Archive{db: database}, nil
}

func (a *Archive) Close() error {
	return a.db.Close()
}

// ArchiveEntries inserts the pruned entries. Entries already archived are
// ignored, so re-archiving after a partial failure is safe. Returns the
// number of rows actually inserted.
func (a *Archive) ArchiveEntries(entries []models.OperationHistoryEntry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	tx, err := a.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %v", err)
	}

	stmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO archived_operations
		(id, timestamp, operation_type, file_count, succeeded, skipped, failed,
		 duration_ms, undone_at, archived_at, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("failed to prepare insert: %v", err)
	}
	defer stmt.Close()

	archivedAt := time.Now().UTC().Format(time.RFC3339Nano)
	inserted := 0
	for i := range entries {
		e := &entries[i]
		payload, err := json.Marshal(e)
		if err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("failed to serialize entry %s: %v", e.ID, err)
		}
		var undoneAt any
		if e.UndoneAt != "" {
			undoneAt = e.UndoneAt
		}
		result, err := stmt.Exec(
			e.ID, e.Timestamp, string(e.OperationType), e.FileCount,
			e.Summary.Succeeded, e.Summary.Skipped, e.Summary.Failed,
			e.DurationMs, undoneAt, archivedAt, string(payload),
		)
		if err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("failed to insert entry %s: %v", e.ID, err)
		}
		if n, _ := result.RowsAffected(); n > 0 {
			inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %v", err)
	}
	return inserted, nil
}

// List returns archived entries newest first, optionally filtered by
// operation type. A limit of 0 means no limit.
func (a *Archive) List(limit int, operationType models.OperationType) ([]models.OperationHistoryEntry, error) {
	query := `SELECT payload FROM archived_operations`
	var args []any
	if operationType != "" {
		query += ` WHERE operation_type = ?`
		args = append(args, string(operationType))
	}
	query += ` ORDER BY timestamp DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := a.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query archive: %v", err)
	}
	defer rows.Close()

	var entries []models.OperationHistoryEntry
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to read archive row: %v", err)
		}
		var entry models.OperationHistoryEntry
		if err := json.Unmarshal([]byte(payload), &entry); err != nil {
			return nil, fmt.Errorf("corrupt archive payload: %v", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Get returns the archived entry with the given id, or nil when absent.
func (a *Archive) Get(id string) (*models.OperationHistoryEntry, error) {
	var payload string
	err := a.db.QueryRow(
		`SELECT payload FROM archived_operations WHERE id = ?`, id,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query archive: %v", err)
	}
	var entry models.OperationHistoryEntry
	if err := json.Unmarshal([]byte(payload), &entry); err != nil {
		return nil, fmt.Errorf("corrupt archive payload: %v", err)
	}
	return &entry, nil
}

// Count returns the number of archived entries.
func (a *Archive) Count() (int, error) {
	var n int
	if err := a.db.QueryRow(`SELECT COUNT(*) FROM archived_operations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count archive: %v", err)
	}
	return n, nil
}
