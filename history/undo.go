package history

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/tidyfile/tidy/models"
)

var (
	// ErrNoHistory means undo was requested with no recorded operations.
	ErrNoHistory = errors.New("no operations in history")
	// ErrEntryNotFound means the requested operation id does not exist.
	ErrEntryNotFound = errors.New("operation not found")
	// ErrAlreadyUndone means the entry has already been undone.
	ErrAlreadyUndone = errors.New("operation has already been undone")
)

// UndoFileStatus classifies one file within an undo.
type UndoFileStatus string

const (
	UndoRestored UndoFileStatus = "restored"
	UndoSkipped  UndoFileStatus = "skipped"
	UndoFailed   UndoFileStatus = "failed"
)

// UndoFileResult is the per-file outcome of an undo.
type UndoFileResult struct {
	OriginalPath string         `json:"originalPath"`
	NewPath      string         `json:"newPath,omitempty"`
	Status       UndoFileStatus `json:"status"`
	Error        string         `json:"error,omitempty"`
}

// UndoResult reports an undo run, real or dry.
type UndoResult struct {
	OperationID        string           `json:"operationId"`
	DryRun             bool             `json:"dryRun"`
	Success            bool             `json:"success"`
	FilesRestored      int              `json:"filesRestored"`
	FilesSkipped       int              `json:"filesSkipped"`
	FilesFailed        int              `json:"filesFailed"`
	Files              []UndoFileResult `json:"files"`
	DirectoriesRemoved []string         `json:"directoriesRemoved,omitempty"`
	Errors             []string         `json:"errors,omitempty"`
}

// UndoOptions configure an undo run. DryRun validates without touching the
// filesystem. Force proceeds with the restorable files even when some files
// fail validation; without it a partially-blocked undo degrades to a dry run.
type UndoOptions struct {
	DryRun bool
	Force  bool
}

// UndoOperation reverses a recorded operation by renaming each file from its
// new path back to its original path. An empty id targets the most recent
// entry. Directories the operation created are removed afterwards, deepest
// first, and only when empty. On success the entry is marked undone.
func UndoOperation(s *Storage, id string, opts UndoOptions) (*UndoResult, error) {
	store, err := s.Load()
	if err != nil {
		return nil, err
	}
	if len(store.Entries) == 0 {
		return nil, ErrNoHistory
	}

	idx := 0
	if id != "" {
		idx = -1
		for i := range store.Entries {
			if store.Entries[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, id)
		}
	}
	entry := &store.Entries[idx]
	if entry.UndoneAt != "" {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyUndone, entry.ID)
	}

	result := &UndoResult{OperationID: entry.ID, DryRun: opts.DryRun}
	plan := validateUndo(entry, result)

	if result.FilesFailed > 0 && !opts.Force && !opts.DryRun {
		// refuse to mutate anything; hand back the validation as a dry run so
		// the caller can inspect and retry with force
		result.DryRun = true
		result.Errors = append(result.Errors,
			fmt.Sprintf("%d of %d files cannot be restored; re-run with force to restore the rest", result.FilesFailed, len(entry.Files)))
		return result, nil
	}
	if opts.DryRun {
		result.Success = result.FilesFailed == 0
		return result, nil
	}

	for _, i := range plan {
		f := &result.Files[i]
		if err := os.Rename(f.NewPath, f.OriginalPath); err != nil {
			f.Status = UndoFailed
			f.Error = fmt.Sprintf("rename failed: %v", err)
			result.FilesRestored--
			result.FilesFailed++
			result.Errors = append(result.Errors, f.Error)
		}
	}

	result.DirectoriesRemoved = removeCreatedDirectories(entry.DirectoriesCreated)

	entry.UndoneAt = time.Now().UTC().Format(time.RFC3339Nano)
	if err := s.Save(store); err != nil {
		// the files are already back; losing the undone flag is recoverable
		log.Printf("Failed to persist undone flag for %s: %v", entry.ID, err)
		result.Errors = append(result.Errors, fmt.Sprintf("history update failed: %v", err))
	}

	result.Success = result.FilesFailed == 0
	return result, nil
}

// validateUndo fills result.Files with the planned outcome of each record and
// returns the indices of the records that can actually be renamed back.
// Counters are set as if the plan succeeds; execution adjusts them on error.
func validateUndo(entry *models.OperationHistoryEntry, result *UndoResult) []int {
	var plan []int
	for _, f := range entry.Files {
		r := UndoFileResult{OriginalPath: f.OriginalPath, NewPath: f.NewPath}
		switch {
		case !f.Success || f.NewPath == "":
			r.Status = UndoSkipped
			r.Error = "file was not renamed in this operation"
			result.FilesSkipped++
		case !pathExists(f.NewPath):
			r.Status = UndoFailed
			r.Error = fmt.Sprintf("file no longer exists at %s", f.NewPath)
			result.FilesFailed++
		case pathExists(f.OriginalPath):
			r.Status = UndoFailed
			r.Error = fmt.Sprintf("original path is occupied: %s", f.OriginalPath)
			result.FilesFailed++
		case !pathExists(filepath.Dir(f.OriginalPath)):
			r.Status = UndoFailed
			r.Error = fmt.Sprintf("original directory no longer exists: %s", filepath.Dir(f.OriginalPath))
			result.FilesFailed++
		default:
			r.Status = UndoRestored
			result.FilesRestored++
			plan = append(plan, len(result.Files))
		}
		if r.Status == UndoFailed {
			result.Errors = append(result.Errors, r.Error)
		}
		result.Files = append(result.Files, r)
	}
	return plan
}

// removeCreatedDirectories removes directories deepest first so that emptied
// parents become removable in the same pass. Non-empty directories are left
// alone.
func removeCreatedDirectories(dirs []string) []string {
	sorted := make([]string, len(dirs))
	copy(sorted, dirs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return pathDepth(sorted[i]) > pathDepth(sorted[j])
	})

	var removed []string
	for _, dir := range sorted {
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			continue
		}
		if err := os.Remove(dir); err != nil {
			log.Printf("Could not remove directory %s: %v", dir, err)
			continue
		}
		removed = append(removed, dir)
	}
	return removed
}

func pathDepth(path string) int {
	return len(strings.Split(filepath.ToSlash(filepath.Clean(path)), "/"))
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
