// Package export renders scan results and rename previews to JSON or CSV
// files for use outside the tool.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/tidyfile/tidy/models"
)

// Format is an export file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat validates a user-supplied format string.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatCSV:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown export format: %q (want json or csv)", s)
}

// Statistics aggregate the scanned files.
type Statistics struct {
	Total      int                         `json:"total"`
	ByCategory map[models.FileCategory]int `json:"byCategory"`
	TotalSize  int64                       `json:"totalSize"`
}

// ScanResult is the scan section of an export document.
type ScanResult struct {
	Folder     string            `json:"folder"`
	Files      []models.FileInfo `json:"files"`
	Statistics Statistics        `json:"statistics"`
	ScannedAt  string            `json:"scannedAt"`
}

// Preview is the optional rename-preview section.
type Preview struct {
	Proposals    []models.RenameProposal `json:"proposals"`
	Summary      models.PreviewSummary   `json:"summary"`
	TemplateUsed string                  `json:"templateUsed"`
}

// Document is the complete JSON export payload.
type Document struct {
	ScanResult ScanResult `json:"scanResult"`
	Preview    *Preview   `json:"preview,omitempty"`
	ExportedAt string     `json:"exportedAt"`
	Version    string     `json:"version"`
}

// Result reports where an export landed.
type Result struct {
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// ComputeStatistics aggregates files by category and size.
func ComputeStatistics(files []models.FileInfo) Statistics {
	stats := Statistics{
		Total:      len(files),
		ByCategory: map[models.FileCategory]int{},
	}
	for i := range files {
		stats.ByCategory[files[i].Category]++
		stats.TotalSize += files[i].Size
	}
	return stats
}

// BuildDocument assembles an export document. preview may be nil.
func BuildDocument(folder string, files []models.FileInfo, preview *models.RenamePreview, version string) Document {
	now := time.Now().UTC().Format(time.RFC3339)
	doc := Document{
		ScanResult: ScanResult{
			Folder:     folder,
			Files:      files,
			Statistics: ComputeStatistics(files),
			ScannedAt:  now,
		},
		ExportedAt: now,
		Version:    version,
	}
	if preview != nil {
		doc.Preview = &Preview{
			Proposals:    preview.Proposals,
			Summary:      preview.Summary,
			TemplateUsed: preview.TemplateUsed,
		}
	}
	return doc
}

// Render serializes the document. JSON carries the full structure; CSV is
// tabular and covers the preview when present, otherwise the scanned files.
func Render(doc Document, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to serialize export: %v", err)
		}
		return data, nil
	case FormatCSV:
		if doc.Preview != nil {
			return renderPreviewCSV(doc.Preview)
		}
		return renderFilesCSV(doc.ScanResult.Files)
	}
	return nil, fmt.Errorf("unknown export format: %q", format)
}

func renderFilesCSV(files []models.FileInfo) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{"Path", "Name", "Extension", "Size (bytes)", "Category", "Created", "Modified"})
	for i := range files {
		f := &files[i]
		w.Write([]string{
			f.Path,
			f.FullName,
			f.Extension,
			strconv.FormatInt(f.Size, 10),
			string(f.Category),
			f.CreatedAt.Format(time.RFC3339),
			f.ModifiedAt.Format(time.RFC3339),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to write csv: %v", err)
	}
	return buf.Bytes(), nil
}

func renderPreviewCSV(preview *Preview) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{"Original Path", "Original Name", "New Name", "New Path", "Status", "Folder Move"})
	for i := range preview.Proposals {
		p := &preview.Proposals[i]
		w.Write([]string{
			p.OriginalPath,
			p.OriginalName,
			p.ProposedName,
			p.ProposedPath,
			string(p.Status),
			strconv.FormatBool(p.IsMoveOperation),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to write csv: %v", err)
	}
	return buf.Bytes(), nil
}

// DefaultFilename returns a timestamped export filename.
func DefaultFilename(format Format) string {
	return fmt.Sprintf("tidy-export-%s.%s", time.Now().Format("20060102-150405"), format)
}

// WriteFile renders the document and writes it to path.
func WriteFile(path string, doc Document, format Format) (*Result, error) {
	data, err := Render(doc, format)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write export to %s: %v", path, err)
	}
	return &Result{Path: path, Size: int64(len(data))}, nil
}
