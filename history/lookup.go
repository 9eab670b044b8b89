package history

import (
	"os"
	"path/filepath"

	"github.com/tidyfile/tidy/models"
)

// FileOperation is one recorded rename touching a looked-up file.
type FileOperation struct {
	OperationID   string               `json:"operationId"`
	OperationType models.OperationType `json:"operationType"`
	Timestamp     string               `json:"timestamp"`
	OriginalPath  string               `json:"originalPath"`
	NewPath       string               `json:"newPath,omitempty"`
	IsMove        bool                 `json:"isMove"`
	Undone        bool                 `json:"undone"`
}

// FileHistory is the rename trail of a single file, newest operation first.
type FileHistory struct {
	OriginalPath string          `json:"originalPath"`
	CurrentPath  string          `json:"currentPath"`
	IsAtOriginal bool            `json:"isAtOriginal"`
	Operations   []FileOperation `json:"operations"`
}

// LookupFileHistory finds every recorded operation on the given file,
// following rename chains so any name the file ever had finds the whole
// trail. It returns nil when the file appears nowhere in history.
// OriginalPath comes from the oldest match, CurrentPath from the newest
// match that has not been undone, and IsAtOriginal reflects whether a file
// exists at the original path right now.
func LookupFileHistory(s *Storage, path string) (*FileHistory, error) {
	store, err := s.Load()
	if err != nil {
		return nil, err
	}
	return lookupInStore(store, path), nil
}

func lookupInStore(store *models.HistoryStore, path string) *FileHistory {
	target := normalizePath(path)

	type record struct {
		entry *models.OperationHistoryEntry
		file  *models.FileHistoryRecord
	}
	var records []record
	for i := range store.Entries {
		e := &store.Entries[i]
		for j := range e.Files {
			if e.Files[j].Success {
				records = append(records, record{e, &e.Files[j]})
			}
		}
	}

	// Follow the whole rename trail, not just direct matches: a record joins
	// the trail when either of its paths is already known, and its other path
	// becomes known in turn. Iterating to a fixpoint picks up chains like
	// a -> a1 -> a2 from any of the three names.
	known := map[string]bool{target: true}
	inTrail := make([]bool, len(records))
	for grew := true; grew; {
		grew = false
		for i, r := range records {
			if inTrail[i] {
				continue
			}
			orig := normalizePath(r.file.OriginalPath)
			next := normalizePath(r.file.NewPath)
			if !known[orig] && (next == "" || !known[next]) {
				continue
			}
			inTrail[i] = true
			grew = true
			if orig != "" {
				known[orig] = true
			}
			if next != "" {
				known[next] = true
			}
		}
	}

	var ops []FileOperation
	for i, r := range records {
		if !inTrail[i] {
			continue
		}
		ops = append(ops, FileOperation{
			OperationID:   r.entry.ID,
			OperationType: r.entry.OperationType,
			Timestamp:     r.entry.Timestamp,
			OriginalPath:  r.file.OriginalPath,
			NewPath:       r.file.NewPath,
			IsMove:        r.file.IsMoveOperation,
			Undone:        r.entry.UndoneAt != "",
		})
	}
	if len(ops) == 0 {
		return nil
	}

	// store entries are newest first; keep that order for the trail
	h := &FileHistory{
		OriginalPath: ops[len(ops)-1].OriginalPath,
		Operations:   ops,
	}
	// current location is where the newest effective (not undone) operation
	// left the file; if every match was undone the file is back where it began
	h.CurrentPath = h.OriginalPath
	for _, op := range ops {
		if !op.Undone {
			h.CurrentPath = op.NewPath
			break
		}
	}
	if _, err := os.Stat(h.OriginalPath); err == nil {
		h.IsAtOriginal = true
	}
	return h
}

// LookupMultipleFiles runs LookupFileHistory for each path over a single
// store read. Paths with no history are absent from the result map.
func LookupMultipleFiles(s *Storage, paths []string) (map[string]*FileHistory, error) {
	store, err := s.Load()
	if err != nil {
		return nil, err
	}
	out := make(map[string]*FileHistory)
	for _, p := range paths {
		if h := lookupInStore(store, p); h != nil {
			out[p] = h
		}
	}
	return out, nil
}

// HasFileBeenRenamed reports whether the file appears in any recorded
// operation.
func HasFileBeenRenamed(s *Storage, path string) (bool, error) {
	h, err := LookupFileHistory(s, path)
	if err != nil {
		return false, err
	}
	return h != nil, nil
}

// GetOriginalPath returns the earliest recorded path for the file, or the
// given path unchanged when it has no history.
func GetOriginalPath(s *Storage, path string) (string, error) {
	h, err := LookupFileHistory(s, path)
	if err != nil {
		return "", err
	}
	if h == nil {
		return path, nil
	}
	return h.OriginalPath, nil
}

// normalizePath makes stored and queried paths comparable: absolute where
// possible, cleaned, forward slashes.
func normalizePath(path string) string {
	if path == "" {
		return ""
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return filepath.ToSlash(filepath.Clean(path))
}
