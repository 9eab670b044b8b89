// Package scanner walks directories and produces the FileInfo records the
// preview pipeline consumes. Platform-specific creation times live in the
// per-OS files.
package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidyfile/tidy/models"
	"github.com/tidyfile/tidy/sanitize"
)

// Options configure a scan.
type Options struct {
	// Recursive descends into subdirectories; otherwise only the root's
	// direct children are scanned.
	Recursive bool

	// IncludeHidden keeps dotfiles; they are skipped by default. Hidden
	// directories are never descended into unless this is set.
	IncludeHidden bool

	// Extensions restricts results to these extensions (lowercase, no dot).
	// Empty means every file.
	Extensions []string

	// Stats, when set, is updated as files are collected.
	Stats *models.ProgressStats
}

// Scan walks root and returns the files found, in walk order. Directories
// themselves are never returned. Unreadable subtrees are skipped, not fatal.
func Scan(ctx context.Context, root string, opts Options) ([]models.FileInfo, error) {
	rootInfo, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("cannot scan %s: %v", root, err)
	}
	if !rootInfo.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", root)
	}

	wanted := make(map[string]bool, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		wanted[strings.ToLower(strings.TrimPrefix(ext, "."))] = true
	}

	var files []models.FileInfo
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			return nil // skip unreadable entries
		}
		hidden := strings.HasPrefix(d.Name(), ".") && path != root
		if d.IsDir() {
			if path == root {
				return nil
			}
			if !opts.Recursive || (hidden && !opts.IncludeHidden) {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden && !opts.IncludeHidden {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		file := buildFileInfo(root, path, info)
		if len(wanted) > 0 && !wanted[file.Extension] {
			return nil
		}
		files = append(files, file)

		if opts.Stats != nil {
			opts.Stats.Mutex.Lock()
			opts.Stats.ProcessedFiles++
			opts.Stats.ProcessedBytes += info.Size()
			opts.Stats.Mutex.Unlock()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func buildFileInfo(root, path string, info os.FileInfo) models.FileInfo {
	name, ext := sanitize.SplitName(info.Name())
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))

	relPath, err := filepath.Rel(root, path)
	if err != nil {
		relPath = info.Name()
	}

	created, modified := fileTimes(path, info)
	if modified.IsZero() {
		modified = info.ModTime()
	}
	if created.IsZero() {
		created = modified
	}

	category := models.CategoryForExtension(ext)
	return models.FileInfo{
		Path:              path,
		Name:              name,
		Extension:         ext,
		FullName:          info.Name(),
		RelativePath:      filepath.ToSlash(relPath),
		Size:              info.Size(),
		CreatedAt:         created.UTC(),
		ModifiedAt:        modified.UTC(),
		Category:          category,
		MetadataSupported: models.MetadataSupported(ext),
	}
}

// StatFile builds a FileInfo for a single path outside of a scan.
func StatFile(path string) (*models.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot stat %s: %v", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("not a file: %s", path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	file := buildFileInfo(filepath.Dir(abs), abs, info)
	return &file, nil
}
