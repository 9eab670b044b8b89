// Package preview turns scanned files, metadata and rules into a reviewable
// set of rename proposals with conflict detection and status classification.
package preview

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tidyfile/tidy/models"
	"github.com/tidyfile/tidy/sanitize"
	"github.com/tidyfile/tidy/template"
)

// ErrCancelled is returned when generation is aborted via the context. It is
// distinguishable from generation failure.
var ErrCancelled = errors.New("preview generation cancelled")

// DefaultLLMThreshold is the minimum confidence for applying an LLM naming
// suggestion.
const DefaultLLMThreshold = 0.7

// CollisionChecker reports whether a proposed path collides with something
// already on disk. Implementations return a collision-specific issue code and
// message.
type CollisionChecker interface {
	Collides(proposedPath string) (bool, string, string)
}

// FSCollisionChecker checks collisions against the real filesystem.
type FSCollisionChecker struct{}

func (FSCollisionChecker) Collides(proposedPath string) (bool, string, string) {
	info, err := os.Stat(proposedPath)
	if err != nil {
		return false, "", ""
	}
	if info.IsDir() {
		return true, "DIRECTORY_EXISTS", "A directory already exists at the proposed path"
	}
	return true, models.IssueFileExists, "A file already exists at the proposed path"
}

// Options configure a generation run.
type Options struct {
	Rules      *template.RuleSet
	DateFormat string
	CaseStyle  template.CaseStyle

	// BaseDirectory is the destination root for folder structures; empty
	// means each file's own directory.
	BaseDirectory string

	DisableSanitize bool
	SanitizeOptions sanitize.Options

	CheckFileSystem bool
	Collisions      CollisionChecker

	// LLMResults being non-nil means LLM analysis was expected; a missing
	// entry for a file is then reported as an issue on that file.
	LLMResults   map[string]models.AnalysisResult
	LLMThreshold float64

	Progress func(current, total int)
}

// Generate produces a RenamePreview for the files in input order. Files are
// processed sequentially; cancellation is polled before each file and before
// each conflict pass, and an in-flight file always completes.
func Generate(ctx context.Context, files []models.FileInfo, metadata map[string]*models.UnifiedMetadata, opts Options) (preview *models.RenamePreview, err error) {
	defer func() {
		if r := recover(); r != nil {
			preview = nil
			err = fmt.Errorf("generation_error: %v", r)
		}
	}()

	if opts.Rules == nil {
		return nil, fmt.Errorf("rule set is required")
	}
	defaultTemplate, ok := opts.Rules.DefaultTemplate()
	if !ok {
		return nil, fmt.Errorf("exactly one default template must be configured")
	}
	threshold := opts.LLMThreshold
	if threshold == 0 {
		threshold = DefaultLLMThreshold
	}
	checker := opts.Collisions
	if checker == nil {
		checker = FSCollisionChecker{}
	}

	proposals := make([]models.RenameProposal, 0, len(files))
	for i := range files {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %v", ErrCancelled, ctx.Err())
		}
		p := generateOne(&files[i], metadata[files[i].Path], defaultTemplate, threshold, opts)
		proposals = append(proposals, p)
		if opts.Progress != nil {
			opts.Progress(i+1, len(files))
		}
	}

	// second pass: proposals whose normalized path is shared with another
	// still-ready proposal become conflicts
	if ctx.Err() != nil {
		return nil, fmt.Errorf("%w: %v", ErrCancelled, ctx.Err())
	}
	markBatchConflicts(proposals)

	// third pass: collisions with the filesystem
	if opts.CheckFileSystem {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %v", ErrCancelled, ctx.Err())
		}
		markFilesystemConflicts(proposals, checker)
	}

	return &models.RenamePreview{
		Proposals:    proposals,
		Summary:      models.Summarize(proposals),
		GeneratedAt:  time.Now().UTC(),
		TemplateUsed: defaultTemplate.Pattern,
	}, nil
}

func generateOne(file *models.FileInfo, meta *models.UnifiedMetadata, defaultTemplate *models.Template, threshold float64, opts Options) models.RenameProposal {
	if meta == nil {
		meta = &models.UnifiedMetadata{}
	}

	p := models.RenameProposal{
		ID:           uuid.New().String(),
		OriginalPath: file.Path,
		OriginalName: file.FullName,
		Status:       models.StatusReady,
		Issues:       []models.RenameIssue{},
		Metadata:     meta,
	}

	// 1. resolve which template applies
	resolution := template.Resolve(file, meta, opts.Rules)
	tmpl := defaultTemplate
	switch resolution.Fallback {
	case template.FallbackNone:
		tmpl = resolution.Template
		p.AppliedRule = resolution.MatchedRule
		p.TemplateSource = models.SourceRule
		p.FolderStructureID = resolution.FolderStructureID
	case template.FallbackTemplateNotFound:
		p.AppliedRule = resolution.MatchedRule
		p.TemplateSource = models.SourceFallback
		p.Issues = append(p.Issues, models.RenameIssue{
			Code:    models.IssueRuleTemplateMissing,
			Message: fmt.Sprintf("Rule %q references a template that no longer exists; using the default template", resolution.MatchedRule.RuleName),
		})
	default:
		p.TemplateSource = models.SourceDefault
	}

	// 2. LLM suggestion override
	missingData := false
	llmApplied := false
	if opts.LLMResults != nil {
		if result, ok := opts.LLMResults[file.Path]; ok {
			r := result
			p.LLMSuggestion = &r
			if result.Confidence >= threshold {
				name := result.SuggestedName
				if file.Extension != "" {
					name += "." + file.Extension
				}
				p.ProposedName = name
				p.TemplateSource = models.SourceLLM
				p.UseLLMSuggestion = true
				llmApplied = true
				p.Issues = append(p.Issues, models.RenameIssue{
					Code:    models.IssueLLMSuggestionApplied,
					Message: fmt.Sprintf("Applied AI suggestion with confidence %.2f", result.Confidence),
				})
			}
		} else {
			p.Issues = append(p.Issues, models.RenameIssue{
				Code:    models.IssueLLMAnalysisFailed,
				Message: "AI analysis produced no result for this file",
			})
		}
	}

	// 3. template application
	if !llmApplied {
		applied := template.Apply(tmpl.Pattern, file, meta, opts.DateFormat)
		p.ProposedName = applied.Name
		for _, ph := range applied.Missing {
			missingData = true
			p.Issues = append(p.Issues, models.RenameIssue{
				Code:    models.IssueMissingMetadata,
				Message: fmt.Sprintf("No metadata available for placeholder %s", ph),
				Field:   ph,
			})
		}
		for _, ph := range applied.Fallbacks {
			p.Issues = append(p.Issues, models.RenameIssue{
				Code:    models.IssueUsedFallback,
				Message: fmt.Sprintf("Used file modification time for placeholder %s", ph),
				Field:   ph,
			})
		}
	}

	p.ProposedName = template.NormalizeFilename(p.ProposedName, opts.CaseStyle)

	// 4. sanitization
	if !opts.DisableSanitize {
		res := sanitize.Name(p.ProposedName, opts.SanitizeOptions)
		p.ProposedName = res.Sanitized
		for _, change := range res.Changes {
			p.Issues = append(p.Issues, models.RenameIssue{
				Code:    issueCodeForChange(change.Type),
				Message: change.Message,
			})
		}
	}

	// 5. folder structure resolution
	destDir := file.Directory()
	if p.FolderStructureID != "" {
		if fs := opts.Rules.FolderStructureByID(p.FolderStructureID); fs != nil && fs.Enabled {
			folder, missing := template.ApplyFolder(fs.Pattern, file, meta)
			if len(missing) > 0 {
				missingData = true
				p.Issues = append(p.Issues, models.RenameIssue{
					Code:    models.IssueFolderResolutionFailed,
					Message: fmt.Sprintf("Folder pattern %q could not be resolved: missing %s", fs.Pattern, strings.Join(missing, ", ")),
				})
			} else {
				base := opts.BaseDirectory
				if base == "" {
					base = file.Directory()
				}
				destDir = filepath.Join(base, filepath.FromSlash(folder))
				if destDir != file.Directory() {
					p.IsMoveOperation = true
				}
			}
		}
	}
	p.ProposedPath = filepath.Join(destDir, p.ProposedName)

	// 6. status classification; later passes may only escalate
	if missingData {
		p.Status = models.StatusMissingData
	} else if p.ProposedName == p.OriginalName && !p.IsMoveOperation {
		p.Status = models.StatusNoChange
	}
	if !sanitize.IsValid(p.ProposedName) {
		p.Status = models.StatusInvalidName
		p.Issues = append(p.Issues, models.RenameIssue{
			Code:    models.IssueInvalidName,
			Message: "Proposed filename is not valid on all platforms",
		})
	}

	return p
}

func issueCodeForChange(changeType string) string {
	switch changeType {
	case sanitize.ChangeCharReplacement:
		return models.IssueSanitizedCharReplace
	case sanitize.ChangeReservedName:
		return models.IssueSanitizedReservedName
	case sanitize.ChangeTruncation:
		return models.IssueSanitizedTruncation
	case sanitize.ChangeTrailingFix:
		return models.IssueSanitizedTrailingFix
	}
	return "SANITIZED"
}

// normalizedPathKey makes proposed paths comparable across platforms:
// case-insensitive, forward slashes only.
func normalizedPathKey(path string) string {
	return strings.ToLower(filepath.ToSlash(path))
}

func markBatchConflicts(proposals []models.RenameProposal) {
	readyByKey := make(map[string]int)
	for i := range proposals {
		if proposals[i].Status == models.StatusReady {
			readyByKey[normalizedPathKey(proposals[i].ProposedPath)]++
		}
	}
	for i := range proposals {
		p := &proposals[i]
		if p.Status != models.StatusReady {
			continue
		}
		if readyByKey[normalizedPathKey(p.ProposedPath)] > 1 {
			p.Status = models.StatusConflict
			p.Issues = append(p.Issues, models.RenameIssue{
				Code:    models.IssueDuplicateName,
				Message: "Another file in this batch would have the same name",
			})
		}
	}
}

func markFilesystemConflicts(proposals []models.RenameProposal, checker CollisionChecker) {
	for i := range proposals {
		p := &proposals[i]
		if p.Status != models.StatusReady {
			continue
		}
		if p.ProposedPath == p.OriginalPath {
			continue
		}
		if collides, code, msg := checker.Collides(p.ProposedPath); collides {
			p.Status = models.StatusConflict
			p.Issues = append(p.Issues, models.RenameIssue{Code: code, Message: msg})
		}
	}
}
