package history

import (
	"fmt"
	"testing"

	"github.com/tidyfile/tidy/models"
)

func TestCreateEntryFromResult(t *testing.T) {
	result := batchResult(
		renamed("/tmp/a.jpg", "/tmp/2024-01-01_a.jpg"),
		models.FileRenameResult{OriginalPath: "/tmp/b.jpg", Outcome: models.OutcomeSkipped},
	)
	result.DurationMs = 42

	entry := CreateEntryFromResult(result)
	if entry.ID == "" || entry.Timestamp == "" {
		t.Fatalf("Entry must have id and timestamp: %+v", entry)
	}
	if entry.OperationType != models.OperationRename {
		t.Errorf("Expected rename, got %s", entry.OperationType)
	}
	if entry.FileCount != 2 || len(entry.Files) != 2 {
		t.Errorf("File count mismatch: %+v", entry)
	}
	if entry.Summary.Succeeded != 1 || entry.Summary.Skipped != 1 {
		t.Errorf("Summary mismatch: %+v", entry.Summary)
	}
	if !entry.Files[0].Success || entry.Files[1].Success {
		t.Errorf("Per-file success flags wrong: %+v", entry.Files)
	}
	if entry.DurationMs != 42 {
		t.Errorf("Duration not carried over")
	}
}

func TestCreateEntryClassifiesMovesAsMove(t *testing.T) {
	result := batchResult(models.FileRenameResult{
		OriginalPath:    "/tmp/a.jpg",
		NewPath:         "/tmp/2024/a.jpg",
		IsMoveOperation: true,
		Outcome:         models.OutcomeSuccess,
	})

	entry := CreateEntryFromResult(result)
	if entry.OperationType != models.OperationMove {
		t.Errorf("Expected move for moves, got %s", entry.OperationType)
	}
}

func TestRecordOperationPrependsNewestFirst(t *testing.T) {
	s, _ := newTestStorage(t)

	first, _, err := RecordOperation(s, batchResult(renamed("/tmp/a", "/tmp/a1")), 0)
	if err != nil {
		t.Fatalf("RecordOperation failed: %v", err)
	}
	second, _, err := RecordOperation(s, batchResult(renamed("/tmp/b", "/tmp/b1")), 0)
	if err != nil {
		t.Fatalf("RecordOperation failed: %v", err)
	}

	entries, err := GetHistory(s, QueryOptions{})
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].ID != second.ID || entries[1].ID != first.ID {
		t.Errorf("Entries must be newest first")
	}
}

func TestRecordOperationPrunesOldestBeyondCap(t *testing.T) {
	s, _ := newTestStorage(t)

	var oldest string
	for i := 0; i < 4; i++ {
		entry, pruned, err := RecordOperation(s, batchResult(renamed(
			fmt.Sprintf("/tmp/f%d", i), fmt.Sprintf("/tmp/f%d.new", i))), 3)
		if err != nil {
			t.Fatalf("RecordOperation failed: %v", err)
		}
		if i == 0 {
			oldest = entry.ID
		}
		if i < 3 && len(pruned) != 0 {
			t.Errorf("No pruning expected at %d entries", i+1)
		}
		if i == 3 {
			if len(pruned) != 1 || pruned[0].ID != oldest {
				t.Errorf("Expected oldest entry pruned, got %+v", pruned)
			}
		}
	}

	count, err := GetHistoryCount(s, "")
	if err != nil {
		t.Fatalf("GetHistoryCount failed: %v", err)
	}
	if count != 3 {
		t.Errorf("Expected 3 retained entries, got %d", count)
	}
	store, _ := s.Load()
	if store.LastPruned == "" {
		t.Errorf("LastPruned should be set after pruning")
	}
}

func TestPruneStore(t *testing.T) {
	s, _ := newTestStorage(t)
	for i := 0; i < 5; i++ {
		RecordOperation(s, batchResult(renamed(fmt.Sprintf("/tmp/f%d", i), fmt.Sprintf("/tmp/f%d.new", i))), 0)
	}

	pruned, err := PruneStore(s, 2)
	if err != nil {
		t.Fatalf("PruneStore failed: %v", err)
	}
	if len(pruned) != 3 {
		t.Errorf("Expected 3 pruned entries, got %d", len(pruned))
	}
	count, _ := GetHistoryCount(s, "")
	if count != 2 {
		t.Errorf("Expected 2 retained, got %d", count)
	}

	// nothing more to prune
	again, err := PruneStore(s, 2)
	if err != nil {
		t.Fatalf("PruneStore failed: %v", err)
	}
	if again != nil {
		t.Errorf("Second prune should be a no-op, got %d", len(again))
	}
}

func TestGetHistoryFilters(t *testing.T) {
	s, _ := newTestStorage(t)

	RecordOperation(s, batchResult(renamed("/tmp/a", "/tmp/a1")), 0)
	RecordOperation(s, batchResult(models.FileRenameResult{
		OriginalPath: "/tmp/b", NewPath: "/sorted/b", IsMoveOperation: true, Outcome: models.OutcomeSuccess,
	}), 0)
	RecordOperation(s, batchResult(renamed("/tmp/c", "/tmp/c1")), 0)

	renames, err := GetHistory(s, QueryOptions{Type: models.OperationRename})
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if len(renames) != 2 {
		t.Errorf("Expected 2 rename entries, got %d", len(renames))
	}

	limited, _ := GetHistory(s, QueryOptions{Limit: 1})
	if len(limited) != 1 {
		t.Errorf("Limit not applied: got %d", len(limited))
	}

	n, _ := GetHistoryCount(s, models.OperationMove)
	if n != 1 {
		t.Errorf("Expected 1 move entry, got %d", n)
	}
}

func TestGetHistoryEntryByID(t *testing.T) {
	s, _ := newTestStorage(t)
	entry, _, _ := RecordOperation(s, batchResult(renamed("/tmp/a", "/tmp/a1")), 0)

	found, err := GetHistoryEntry(s, entry.ID)
	if err != nil {
		t.Fatalf("GetHistoryEntry failed: %v", err)
	}
	if found == nil || found.ID != entry.ID {
		t.Errorf("Entry not found by id")
	}

	missing, err := GetHistoryEntry(s, "nope")
	if err != nil {
		t.Fatalf("GetHistoryEntry failed: %v", err)
	}
	if missing != nil {
		t.Errorf("Unknown id must return nil, got %+v", missing)
	}
}
