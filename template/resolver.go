// Package template evaluates user-defined rules to pick a naming template for
// a file and applies placeholder patterns to produce candidate names.
package template

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/tidyfile/tidy/models"
)

// FallbackReason explains why rule resolution did not yield a usable template.
type FallbackReason string

const (
	// FallbackNone means a rule matched and its template exists.
	FallbackNone FallbackReason = ""
	// FallbackNoMatch means no rule matched the file.
	FallbackNoMatch FallbackReason = "no-match"
	// FallbackTemplateNotFound means a rule matched but its template id is no
	// longer configured.
	FallbackTemplateNotFound FallbackReason = "template-not-found"
)

// RuleSet bundles the configured rules, templates and folder structures for a
// resolution run.
type RuleSet struct {
	MetadataRules   []models.MetadataPatternRule
	FilenameRules   []models.FilenamePatternRule
	Templates       []models.Template
	FolderStructures []models.FolderStructure
	PriorityMode    models.PriorityMode
}

// Resolution is the outcome of evaluating the rule set against one file.
type Resolution struct {
	Template          *models.Template
	MatchedRule       *models.AppliedRule
	FolderStructureID string
	Fallback          FallbackReason
}

// TemplateByID returns the configured template with the given id, or nil.
func (rs *RuleSet) TemplateByID(id string) *models.Template {
	for i := range rs.Templates {
		if rs.Templates[i].ID == id {
			return &rs.Templates[i]
		}
	}
	return nil
}

// DefaultTemplate returns the single default template. The second return is
// false when zero or more than one default is configured, which makes the
// resolution run invalid.
func (rs *RuleSet) DefaultTemplate() (*models.Template, bool) {
	var found *models.Template
	for i := range rs.Templates {
		if rs.Templates[i].IsDefault {
			if found != nil {
				return nil, false
			}
			found = &rs.Templates[i]
		}
	}
	return found, found != nil
}

// FolderStructureByID returns the configured folder structure, or nil.
func (rs *RuleSet) FolderStructureByID(id string) *models.FolderStructure {
	for i := range rs.FolderStructures {
		if rs.FolderStructures[i].ID == id {
			return &rs.FolderStructures[i]
		}
	}
	return nil
}

// candidate is a rule of either kind, normalized for ordered evaluation.
type candidate struct {
	priority          int
	kind              string // "metadata" or "filename"
	order             int
	id                string
	name              string
	templateID        string
	folderStructureID string
	matches           func(file *models.FileInfo, meta *models.UnifiedMetadata) bool
}

// Resolve evaluates the rule set against a file. The first matching rule wins.
// When the winning rule references a template that no longer exists the
// resolution reports FallbackTemplateNotFound while still naming the rule so
// the caller can emit a diagnostic and fall back to the default template.
func Resolve(file *models.FileInfo, meta *models.UnifiedMetadata, rules *RuleSet) Resolution {
	if meta == nil {
		meta = &models.UnifiedMetadata{}
	}

	var cands []candidate
	switch rules.PriorityMode {
	case models.PriorityFilenameFirst:
		cands = append(filenameCandidates(rules), metadataCandidates(rules)...)
	case models.PriorityMetadataFirst:
		cands = append(metadataCandidates(rules), filenameCandidates(rules)...)
	default: // combined
		cands = append(metadataCandidates(rules), filenameCandidates(rules)...)
		sort.SliceStable(cands, func(i, j int) bool {
			if cands[i].priority != cands[j].priority {
				return cands[i].priority < cands[j].priority
			}
			if cands[i].kind != cands[j].kind {
				return cands[i].kind == "metadata"
			}
			return cands[i].order < cands[j].order
		})
	}

	for _, c := range cands {
		if !c.matches(file, meta) {
			continue
		}
		matched := &models.AppliedRule{RuleID: c.id, RuleName: c.name, Kind: c.kind}
		tmpl := rules.TemplateByID(c.templateID)
		if tmpl == nil {
			return Resolution{MatchedRule: matched, Fallback: FallbackTemplateNotFound}
		}
		// a template restricted to other file types does not win for this
		// file; keep scanning lower-priority rules
		if !tmpl.AppliesTo(file.Extension) {
			continue
		}
		return Resolution{
			Template:          tmpl,
			MatchedRule:       matched,
			FolderStructureID: c.folderStructureID,
		}
	}

	return Resolution{Fallback: FallbackNoMatch}
}

func metadataCandidates(rules *RuleSet) []candidate {
	out := make([]candidate, 0, len(rules.MetadataRules))
	for i := range rules.MetadataRules {
		r := rules.MetadataRules[i]
		if !r.Enabled {
			continue
		}
		out = append(out, candidate{
			priority:          r.Priority,
			kind:              "metadata",
			order:             i,
			id:                r.ID,
			name:              r.Name,
			templateID:        r.TemplateID,
			folderStructureID: r.FolderStructureID,
			matches: func(_ *models.FileInfo, meta *models.UnifiedMetadata) bool {
				return metadataRuleMatches(&r, meta)
			},
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].priority < out[j].priority })
	return out
}

func filenameCandidates(rules *RuleSet) []candidate {
	out := make([]candidate, 0, len(rules.FilenameRules))
	for i := range rules.FilenameRules {
		r := rules.FilenameRules[i]
		if !r.Enabled {
			continue
		}
		out = append(out, candidate{
			priority:          r.Priority,
			kind:              "filename",
			order:             i,
			id:                r.ID,
			name:              r.Name,
			templateID:        r.TemplateID,
			folderStructureID: r.FolderStructureID,
			matches: func(file *models.FileInfo, _ *models.UnifiedMetadata) bool {
				return filenameRuleMatches(&r, file)
			},
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].priority < out[j].priority })
	return out
}

func metadataRuleMatches(r *models.MetadataPatternRule, meta *models.UnifiedMetadata) bool {
	value, ok := meta.Field(r.Field)
	if !ok {
		return false
	}
	switch r.Operator {
	case models.OperatorExists:
		return true
	case models.OperatorEquals:
		return strings.EqualFold(value, r.Value)
	case models.OperatorContains:
		return strings.Contains(strings.ToLower(value), strings.ToLower(r.Value))
	case models.OperatorStartsWith:
		return strings.HasPrefix(strings.ToLower(value), strings.ToLower(r.Value))
	case models.OperatorEndsWith:
		return strings.HasSuffix(strings.ToLower(value), strings.ToLower(r.Value))
	}
	return false
}

func filenameRuleMatches(r *models.FilenamePatternRule, file *models.FileInfo) bool {
	subject := file.Name
	if r.MatchExtension {
		subject = file.FullName
	}
	ok, err := filepath.Match(strings.ToLower(r.Pattern), strings.ToLower(subject))
	if err != nil {
		// malformed glob never matches
		return false
	}
	return ok
}
