package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidyfile/tidy/models"
	"github.com/tidyfile/tidy/preview"
	"github.com/tidyfile/tidy/scanner"
)

// PreviewParams collect everything the preview and apply commands share.
type PreviewParams struct {
	Directory     string
	Recursive     bool
	IncludeHidden bool
	Extensions    []string
	BaseDirectory string

	// MetadataPath is an optional JSON sidecar mapping file paths to
	// extracted metadata.
	MetadataPath string
	// LLMPath is an optional JSON sidecar mapping file paths to AI naming
	// suggestions.
	LLMPath string

	CheckFileSystem bool
	Progress        func(current, total int)
}

// BuildPreview scans the directory and generates rename proposals with the
// loaded config's rules.
func (app *AppContext) BuildPreview(params PreviewParams) (*models.RenamePreview, error) {
	files, err := scanner.Scan(app.Context, params.Directory, scanner.Options{
		Recursive:     params.Recursive,
		IncludeHidden: params.IncludeHidden,
		Extensions:    params.Extensions,
		Stats:         app.Stats,
	})
	if err != nil {
		return nil, err
	}
	return app.GeneratePreview(files, params)
}

// GeneratePreview builds rename proposals for files that were already
// scanned, loading the optional metadata and LLM sidecars.
func (app *AppContext) GeneratePreview(files []models.FileInfo, params PreviewParams) (*models.RenamePreview, error) {
	metadata := map[string]*models.UnifiedMetadata{}
	if params.MetadataPath != "" {
		if err := loadSidecar(params.MetadataPath, &metadata); err != nil {
			return nil, err
		}
	}

	var llmResults map[string]models.AnalysisResult
	if params.LLMPath != "" {
		if err := loadSidecar(params.LLMPath, &llmResults); err != nil {
			return nil, err
		}
	}

	return preview.Generate(app.Context, files, metadata, preview.Options{
		Rules:           app.Config.RuleSet(),
		DateFormat:      app.Config.Preferences.DateFormat,
		CaseStyle:       app.Config.Preferences.CaseStyle,
		BaseDirectory:   params.BaseDirectory,
		CheckFileSystem: params.CheckFileSystem,
		LLMResults:      llmResults,
		LLMThreshold:    app.Config.Preferences.LLMConfidenceThreshold,
		Progress:        params.Progress,
	})
}

// loadSidecar reads a JSON sidecar file keyed by file path. Keys are
// normalized to absolute paths so they match scanned files.
func loadSidecar(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %v", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %v", path, err)
	}
	normalizeSidecarKeys(out)
	return nil
}

func normalizeSidecarKeys(out any) {
	switch m := out.(type) {
	case *map[string]*models.UnifiedMetadata:
		next := make(map[string]*models.UnifiedMetadata, len(*m))
		for k, v := range *m {
			next[absPath(k)] = v
		}
		*m = next
	case *map[string]models.AnalysisResult:
		next := make(map[string]models.AnalysisResult, len(*m))
		for k, v := range *m {
			next[absPath(k)] = v
		}
		*m = next
	}
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
