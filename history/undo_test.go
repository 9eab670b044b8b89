package history

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/tidyfile/tidy/models"
)

func TestUndoMostRecentOperation(t *testing.T) {
	s, dir := newTestStorage(t)
	a := filepath.Join(dir, "a.jpg")
	a1 := filepath.Join(dir, "a1.jpg")
	touch(t, a1)
	RecordOperation(s, batchResult(renamed(a, a1)), 0)

	result, err := UndoOperation(s, "", UndoOptions{})
	if err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if !result.Success || result.FilesRestored != 1 {
		t.Errorf("Undo result: %+v", result)
	}
	if !pathExists(a) || pathExists(a1) {
		t.Errorf("File was not moved back")
	}

	entry, _ := GetHistoryEntry(s, result.OperationID)
	if entry.UndoneAt == "" {
		t.Errorf("Entry should be marked undone")
	}
}

func TestUndoByIDAndNotFound(t *testing.T) {
	s, dir := newTestStorage(t)
	a := filepath.Join(dir, "a.jpg")
	a1 := filepath.Join(dir, "a1.jpg")
	b := filepath.Join(dir, "b.jpg")
	b1 := filepath.Join(dir, "b1.jpg")
	touch(t, a1)
	touch(t, b1)
	first, _, _ := RecordOperation(s, batchResult(renamed(a, a1)), 0)
	RecordOperation(s, batchResult(renamed(b, b1)), 0)

	// target the older entry explicitly
	result, err := UndoOperation(s, first.ID, UndoOptions{})
	if err != nil {
		t.Fatalf("Undo by id failed: %v", err)
	}
	if result.OperationID != first.ID {
		t.Errorf("Wrong entry undone: %s", result.OperationID)
	}
	if !pathExists(a) || !pathExists(b1) {
		t.Errorf("Only the targeted operation may be reversed")
	}

	if _, err := UndoOperation(s, "missing-id", UndoOptions{}); !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("Expected ErrEntryNotFound, got %v", err)
	}
}

func TestUndoEmptyHistory(t *testing.T) {
	s, _ := newTestStorage(t)
	if _, err := UndoOperation(s, "", UndoOptions{}); !errors.Is(err, ErrNoHistory) {
		t.Errorf("Expected ErrNoHistory, got %v", err)
	}
}

func TestUndoTwiceFails(t *testing.T) {
	s, dir := newTestStorage(t)
	a := filepath.Join(dir, "a.jpg")
	a1 := filepath.Join(dir, "a1.jpg")
	touch(t, a1)
	entry, _, _ := RecordOperation(s, batchResult(renamed(a, a1)), 0)

	if _, err := UndoOperation(s, entry.ID, UndoOptions{}); err != nil {
		t.Fatalf("First undo failed: %v", err)
	}
	if _, err := UndoOperation(s, entry.ID, UndoOptions{}); !errors.Is(err, ErrAlreadyUndone) {
		t.Errorf("Expected ErrAlreadyUndone, got %v", err)
	}
}

func TestUndoDryRunTouchesNothing(t *testing.T) {
	s, dir := newTestStorage(t)
	a := filepath.Join(dir, "a.jpg")
	a1 := filepath.Join(dir, "a1.jpg")
	touch(t, a1)
	entry, _, _ := RecordOperation(s, batchResult(renamed(a, a1)), 0)

	result, err := UndoOperation(s, "", UndoOptions{DryRun: true})
	if err != nil {
		t.Fatalf("Dry run failed: %v", err)
	}
	if !result.DryRun || !result.Success || result.FilesRestored != 1 {
		t.Errorf("Dry run result: %+v", result)
	}
	if pathExists(a) || !pathExists(a1) {
		t.Errorf("Dry run must not move files")
	}
	after, _ := GetHistoryEntry(s, entry.ID)
	if after.UndoneAt != "" {
		t.Errorf("Dry run must not mark the entry undone")
	}
}

func TestUndoValidationBlocksWithoutForce(t *testing.T) {
	s, dir := newTestStorage(t)
	a := filepath.Join(dir, "a.jpg")
	a1 := filepath.Join(dir, "a1.jpg")
	b := filepath.Join(dir, "b.jpg")
	b1 := filepath.Join(dir, "b1.jpg")
	touch(t, a1)
	// b1 is gone: one record cannot be restored
	entry, _, _ := RecordOperation(s, batchResult(renamed(a, a1), renamed(b, b1)), 0)

	result, err := UndoOperation(s, "", UndoOptions{})
	if err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if !result.DryRun {
		t.Errorf("Blocked undo must degrade to a dry run: %+v", result)
	}
	if pathExists(a) {
		t.Errorf("Nothing may be moved when validation blocks")
	}
	if after, _ := GetHistoryEntry(s, entry.ID); after.UndoneAt != "" {
		t.Errorf("Blocked undo must not mark the entry undone")
	}

	// force restores what it can
	forced, err := UndoOperation(s, "", UndoOptions{Force: true})
	if err != nil {
		t.Fatalf("Forced undo failed: %v", err)
	}
	if forced.FilesRestored != 1 || forced.FilesFailed != 1 {
		t.Errorf("Forced undo: %+v", forced)
	}
	if !pathExists(a) {
		t.Errorf("Restorable file was not moved back")
	}
	if after, _ := GetHistoryEntry(s, entry.ID); after.UndoneAt == "" {
		t.Errorf("Forced undo should mark the entry undone")
	}
}

func TestUndoSkipsUnrenamedRecords(t *testing.T) {
	s, dir := newTestStorage(t)
	a := filepath.Join(dir, "a.jpg")
	a1 := filepath.Join(dir, "a1.jpg")
	touch(t, a1)
	RecordOperation(s, batchResult(
		renamed(a, a1),
		models.FileRenameResult{OriginalPath: filepath.Join(dir, "skipped.jpg"), Outcome: models.OutcomeSkipped},
	), 0)

	result, err := UndoOperation(s, "", UndoOptions{})
	if err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if result.FilesRestored != 1 || result.FilesSkipped != 1 || result.FilesFailed != 0 {
		t.Errorf("Undo result: %+v", result)
	}
	if !result.Success {
		t.Errorf("Skips do not fail an undo")
	}
}

func TestUndoFailsWhenOriginalOccupied(t *testing.T) {
	s, dir := newTestStorage(t)
	a := filepath.Join(dir, "a.jpg")
	a1 := filepath.Join(dir, "a1.jpg")
	touch(t, a1)
	touch(t, a) // something new sits at the original path
	RecordOperation(s, batchResult(renamed(a, a1)), 0)

	result, err := UndoOperation(s, "", UndoOptions{DryRun: true})
	if err != nil {
		t.Fatalf("Dry run failed: %v", err)
	}
	if result.FilesFailed != 1 || result.Success {
		t.Errorf("Occupied original must fail validation: %+v", result)
	}
}

func TestUndoRemovesCreatedDirectoriesDeepestFirst(t *testing.T) {
	s, dir := newTestStorage(t)
	parent := filepath.Join(dir, "2024")
	child := filepath.Join(parent, "03")
	if err := os.MkdirAll(child, 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	a := filepath.Join(dir, "a.jpg")
	moved := filepath.Join(child, "a.jpg")
	touch(t, moved)

	result := batchResult(models.FileRenameResult{
		OriginalPath: a, NewPath: moved, IsMoveOperation: true, Outcome: models.OutcomeSuccess,
	})
	result.DirectoriesCreated = []string{parent, child}
	RecordOperation(s, result, 0)

	undo, err := UndoOperation(s, "", UndoOptions{})
	if err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if !undo.Success {
		t.Fatalf("Undo result: %+v", undo)
	}
	if pathExists(child) || pathExists(parent) {
		t.Errorf("Emptied created directories should be removed")
	}
	if len(undo.DirectoriesRemoved) != 2 || undo.DirectoriesRemoved[0] != child {
		t.Errorf("Removal order must be deepest first: %v", undo.DirectoriesRemoved)
	}
}

func TestUndoLeavesNonEmptyDirectories(t *testing.T) {
	s, dir := newTestStorage(t)
	created := filepath.Join(dir, "2024")
	if err := os.MkdirAll(created, 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	a := filepath.Join(dir, "a.jpg")
	moved := filepath.Join(created, "a.jpg")
	touch(t, moved)
	touch(t, filepath.Join(created, "unrelated.txt"))

	result := batchResult(models.FileRenameResult{
		OriginalPath: a, NewPath: moved, IsMoveOperation: true, Outcome: models.OutcomeSuccess,
	})
	result.DirectoriesCreated = []string{created}
	RecordOperation(s, result, 0)

	undo, err := UndoOperation(s, "", UndoOptions{})
	if err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if len(undo.DirectoriesRemoved) != 0 {
		t.Errorf("Non-empty directory must survive: %v", undo.DirectoriesRemoved)
	}
	if !pathExists(created) {
		t.Errorf("Directory with foreign content was removed")
	}
}
