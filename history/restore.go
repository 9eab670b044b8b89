package history

import (
	"fmt"
	"os"
	"path/filepath"
)

// RestoreOptions configure a single-file restore. OperationID switches to
// whole-operation undo for that entry. Lookup returns the file's history
// without touching the filesystem.
type RestoreOptions struct {
	DryRun      bool
	OperationID string
	Lookup      bool
}

// RestoreResult reports a single-file restore.
type RestoreResult struct {
	Success     bool         `json:"success"`
	DryRun      bool         `json:"dryRun"`
	Message     string       `json:"message"`
	FilePath    string       `json:"filePath,omitempty"`
	RestoredTo  string       `json:"restoredTo,omitempty"`
	OperationID string       `json:"operationId,omitempty"`
	History     *FileHistory `json:"history,omitempty"`
}

// RestoreFile moves a single file back to its earliest recorded path. Unlike
// UndoOperation it does not mark any entry undone: other files from the same
// operations keep their state. Domain failures (no history, occupied target)
// come back as an unsuccessful result, not an error.
func RestoreFile(s *Storage, path string, opts RestoreOptions) (*RestoreResult, error) {
	if opts.OperationID != "" {
		return restoreViaUndo(s, opts.OperationID, opts.DryRun)
	}

	if path == "" {
		return &RestoreResult{Message: "File path is required"}, nil
	}

	history, err := LookupFileHistory(s, path)
	if err != nil {
		return nil, err
	}
	if history == nil {
		return &RestoreResult{
			FilePath: path,
			Message:  fmt.Sprintf("No history found for file: %s", path),
		}, nil
	}

	if opts.Lookup {
		return &RestoreResult{
			Success:  true,
			DryRun:   true,
			FilePath: path,
			History:  history,
			Message:  fmt.Sprintf("File has %d recorded operation(s)", len(history.Operations)),
		}, nil
	}

	result := &RestoreResult{
		DryRun:     opts.DryRun,
		FilePath:   history.CurrentPath,
		RestoredTo: history.OriginalPath,
	}
	for _, op := range history.Operations {
		if !op.Undone {
			result.OperationID = op.OperationID
			break
		}
	}

	// A restore does not rewrite history, so after one succeeds the trail
	// still names the renamed path as current. The file sitting at its
	// original path with nothing left at the recorded current path is the
	// restored state, not a lost file.
	if history.IsAtOriginal &&
		(history.CurrentPath == history.OriginalPath || !pathExists(history.CurrentPath)) {
		result.Success = true
		result.Message = "File is already at its original location"
		return result, nil
	}
	if !pathExists(history.CurrentPath) {
		result.Message = fmt.Sprintf("File no longer exists at %s", history.CurrentPath)
		return result, nil
	}
	if pathExists(history.OriginalPath) {
		result.Message = fmt.Sprintf("Original path is occupied: %s", history.OriginalPath)
		return result, nil
	}
	if !pathExists(filepath.Dir(history.OriginalPath)) {
		result.Message = fmt.Sprintf("Original directory no longer exists: %s", filepath.Dir(history.OriginalPath))
		return result, nil
	}

	if opts.DryRun {
		result.Success = true
		result.Message = fmt.Sprintf("Would restore %s to %s", history.CurrentPath, history.OriginalPath)
		return result, nil
	}

	if err := os.Rename(history.CurrentPath, history.OriginalPath); err != nil {
		result.Message = fmt.Sprintf("Restore failed: %v", err)
		return result, nil
	}
	result.Success = true
	result.Message = fmt.Sprintf("Restored %s to %s", history.CurrentPath, history.OriginalPath)
	return result, nil
}

func restoreViaUndo(s *Storage, operationID string, dryRun bool) (*RestoreResult, error) {
	undo, err := UndoOperation(s, operationID, UndoOptions{DryRun: dryRun})
	if err != nil {
		return nil, err
	}
	msg := fmt.Sprintf("Restored %d file(s), %d skipped, %d failed",
		undo.FilesRestored, undo.FilesSkipped, undo.FilesFailed)
	success := undo.Success
	if undo.DryRun && !dryRun {
		// validation refused the operation; nothing was moved
		success = false
		msg = fmt.Sprintf("Operation not restored: %d file(s) cannot be moved back", undo.FilesFailed)
	}
	return &RestoreResult{
		Success:     success,
		DryRun:      undo.DryRun,
		OperationID: undo.OperationID,
		Message:     msg,
	}, nil
}
