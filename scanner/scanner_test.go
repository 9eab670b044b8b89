package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/tidyfile/tidy/models"
)

func setupTree(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "tidy-scanner-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	write := func(rel string) {
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("MkdirAll failed: %v", err)
		}
		if err := os.WriteFile(path, []byte("content"), 0644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
	}
	write("photo.JPG")
	write("notes.txt")
	write(".hidden.txt")
	write("sub/report.pdf")
	write(".git/config")
	return dir
}

func paths(files []models.FileInfo) map[string]models.FileInfo {
	out := make(map[string]models.FileInfo)
	for _, f := range files {
		out[f.RelativePath] = f
	}
	return out
}

func TestScanRecursive(t *testing.T) {
	dir := setupTree(t)

	files, err := Scan(context.Background(), dir, Options{Recursive: true})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	got := paths(files)
	if len(got) != 3 {
		t.Fatalf("Expected 3 files, got %d: %v", len(got), got)
	}
	for _, want := range []string{"photo.JPG", "notes.txt", "sub/report.pdf"} {
		if _, ok := got[want]; !ok {
			t.Errorf("Missing %s", want)
		}
	}

	photo := got["photo.JPG"]
	if photo.Extension != "jpg" {
		t.Errorf("Extension must be lowercased: %q", photo.Extension)
	}
	if photo.Name != "photo" || photo.FullName != "photo.JPG" {
		t.Errorf("Name split wrong: %+v", photo)
	}
	if photo.Category != models.CategoryImage || !photo.MetadataSupported {
		t.Errorf("Classification wrong: %+v", photo)
	}
	if photo.Size != int64(len("content")) {
		t.Errorf("Size: %d", photo.Size)
	}
	if photo.ModifiedAt.IsZero() || photo.CreatedAt.IsZero() {
		t.Errorf("Timestamps must be populated: %+v", photo)
	}
}

func TestScanNonRecursive(t *testing.T) {
	dir := setupTree(t)

	files, err := Scan(context.Background(), dir, Options{})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	got := paths(files)
	if _, ok := got["sub/report.pdf"]; ok {
		t.Errorf("Non-recursive scan must not descend")
	}
	if len(got) != 2 {
		t.Errorf("Expected 2 files, got %v", got)
	}
}

func TestScanHiddenFiles(t *testing.T) {
	dir := setupTree(t)

	files, _ := Scan(context.Background(), dir, Options{Recursive: true, IncludeHidden: true})
	got := paths(files)
	if _, ok := got[".hidden.txt"]; !ok {
		t.Errorf("IncludeHidden should keep dotfiles: %v", got)
	}
	if _, ok := got[".git/config"]; !ok {
		t.Errorf("IncludeHidden should descend into dot directories")
	}

	hidden := got[".hidden.txt"]
	if hidden.Name != ".hidden" || hidden.Extension != "txt" {
		t.Errorf("Dotfile split wrong: %+v", hidden)
	}
}

func TestScanExtensionFilter(t *testing.T) {
	dir := setupTree(t)

	files, err := Scan(context.Background(), dir, Options{Recursive: true, Extensions: []string{"PDF"}})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(files) != 1 || files[0].RelativePath != "sub/report.pdf" {
		t.Errorf("Filter should be case-insensitive: %v", paths(files))
	}
}

func TestScanErrors(t *testing.T) {
	if _, err := Scan(context.Background(), "/does/not/exist", Options{}); err == nil {
		t.Errorf("Missing root must fail")
	}

	dir := setupTree(t)
	if _, err := Scan(context.Background(), filepath.Join(dir, "notes.txt"), Options{}); err == nil {
		t.Errorf("Scanning a file must fail")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Scan(ctx, dir, Options{}); err == nil {
		t.Errorf("Cancelled scan must fail")
	}
}

func TestScanUpdatesStats(t *testing.T) {
	dir := setupTree(t)
	stats := &models.ProgressStats{}

	Scan(context.Background(), dir, Options{Recursive: true, Stats: stats})
	if stats.ProcessedFiles != 3 {
		t.Errorf("ProcessedFiles = %d", stats.ProcessedFiles)
	}
	if stats.ProcessedBytes != 3*int64(len("content")) {
		t.Errorf("ProcessedBytes = %d", stats.ProcessedBytes)
	}
}

func TestStatFile(t *testing.T) {
	dir := setupTree(t)

	info, err := StatFile(filepath.Join(dir, "photo.JPG"))
	if err != nil {
		t.Fatalf("StatFile failed: %v", err)
	}
	if info.FullName != "photo.JPG" || info.Category != models.CategoryImage {
		t.Errorf("StatFile result: %+v", info)
	}

	if _, err := StatFile(dir); err == nil {
		t.Errorf("StatFile on a directory must fail")
	}
}
