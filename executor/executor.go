// Package executor applies approved rename proposals to the filesystem. Files
// are processed sequentially in proposal order; each file either succeeds,
// fails, or is skipped with a reason, and the batch result is shaped for
// direct recording into history.
package executor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tidyfile/tidy/models"
)

// Options configure a batch execution.
type Options struct {
	// DryRun validates every proposal without renaming anything.
	DryRun bool

	Progress func(current, total int)
}

// Execute applies the proposals in order. Only StatusReady proposals are
// eligible; anything else is skipped. Missing destination directories are
// created and tracked in result.DirectoriesCreated so an undo can remove
// them. Cancellation stops between files; the files not reached are reported
// as skipped.
func Execute(ctx context.Context, proposals []models.RenameProposal, opts Options) (*models.BatchRenameResult, error) {
	result := &models.BatchRenameResult{StartedAt: time.Now().UTC()}
	created := map[string]bool{}

	for i := range proposals {
		p := &proposals[i]
		if ctx.Err() != nil {
			result.Results = append(result.Results, models.FileRenameResult{
				ProposalID:   p.ID,
				OriginalPath: p.OriginalPath,
				OriginalName: p.OriginalName,
				Outcome:      models.OutcomeSkipped,
				Error:        "operation cancelled",
			})
			continue
		}
		result.Results = append(result.Results, executeOne(p, opts.DryRun, created, result))
		if opts.Progress != nil {
			opts.Progress(i+1, len(proposals))
		}
	}

	for _, r := range result.Results {
		result.Summary.Total++
		switch r.Outcome {
		case models.OutcomeSuccess:
			result.Summary.Succeeded++
		case models.OutcomeFailed:
			result.Summary.Failed++
		case models.OutcomeSkipped:
			result.Summary.Skipped++
		}
	}
	result.Summary.DirectoriesCreated = len(result.DirectoriesCreated)
	result.Success = result.Summary.Failed == 0
	result.CompletedAt = time.Now().UTC()
	result.DurationMs = result.CompletedAt.Sub(result.StartedAt).Milliseconds()
	return result, nil
}

func executeOne(p *models.RenameProposal, dryRun bool, created map[string]bool, batch *models.BatchRenameResult) models.FileRenameResult {
	r := models.FileRenameResult{
		ProposalID:      p.ID,
		OriginalPath:    p.OriginalPath,
		OriginalName:    p.OriginalName,
		NewPath:         p.ProposedPath,
		NewName:         p.ProposedName,
		IsMoveOperation: p.IsMoveOperation,
	}

	if p.Status != models.StatusReady {
		r.NewPath, r.NewName = "", ""
		r.Outcome = models.OutcomeSkipped
		r.Error = fmt.Sprintf("proposal is %s, not ready", p.Status)
		return r
	}
	if p.ProposedPath == p.OriginalPath {
		r.NewPath, r.NewName = "", ""
		r.Outcome = models.OutcomeSkipped
		r.Error = "proposed path equals original path"
		return r
	}
	if !pathExists(p.OriginalPath) {
		r.Outcome = models.OutcomeSkipped
		r.Error = "source file no longer exists"
		return r
	}
	if pathExists(p.ProposedPath) {
		r.Outcome = models.OutcomeSkipped
		r.Error = "a file already exists at the destination"
		return r
	}

	if dryRun {
		r.Outcome = models.OutcomeSuccess
		return r
	}

	destDir := filepath.Dir(p.ProposedPath)
	if !pathExists(destDir) {
		missing := missingAncestors(destDir)
		if err := os.MkdirAll(destDir, 0755); err != nil {
			r.Outcome = models.OutcomeFailed
			r.Error = fmt.Sprintf("failed to create directory: %v", err)
			return r
		}
		for _, dir := range missing {
			if !created[dir] {
				created[dir] = true
				batch.DirectoriesCreated = append(batch.DirectoriesCreated, dir)
			}
		}
	}

	if err := os.Rename(p.OriginalPath, p.ProposedPath); err != nil {
		r.Outcome = models.OutcomeFailed
		r.Error = fmt.Sprintf("rename failed: %v", err)
		return r
	}
	r.Outcome = models.OutcomeSuccess
	return r
}

// missingAncestors lists the directories MkdirAll is about to create,
// shallowest first.
func missingAncestors(dir string) []string {
	var missing []string
	for d := dir; ; {
		if pathExists(d) {
			break
		}
		missing = append([]string{d}, missing...)
		parent := filepath.Dir(d)
		if parent == d {
			break
		}
		d = parent
	}
	return missing
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
