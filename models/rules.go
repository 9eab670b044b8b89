package models

import "strings"

// PriorityMode controls the order in which rule sets are evaluated.
type PriorityMode string

const (
	PriorityCombined      PriorityMode = "combined"
	PriorityMetadataFirst PriorityMode = "metadata-first"
	PriorityFilenameFirst PriorityMode = "filename-first"
)

// RuleOperator is the comparison applied by a metadata rule.
type RuleOperator string

const (
	OperatorEquals     RuleOperator = "equals"
	OperatorContains   RuleOperator = "contains"
	OperatorStartsWith RuleOperator = "startsWith"
	OperatorEndsWith   RuleOperator = "endsWith"
	OperatorExists     RuleOperator = "exists"
)

// MetadataPatternRule maps a metadata field predicate to a template.
type MetadataPatternRule struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	Field             string       `json:"field"` // dotted path, e.g. "image.cameraMake"
	Operator          RuleOperator `json:"operator"`
	Value             string       `json:"value,omitempty"`
	Priority          int          `json:"priority"`
	TemplateID        string       `json:"templateId"`
	FolderStructureID string       `json:"folderStructureId,omitempty"`
	Enabled           bool         `json:"enabled"`
}

// FilenamePatternRule maps a filename glob to a template.
type FilenamePatternRule struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Pattern           string `json:"pattern"` // glob matched against the full name
	MatchExtension    bool   `json:"matchExtension"`
	Priority          int    `json:"priority"`
	TemplateID        string `json:"templateId"`
	FolderStructureID string `json:"folderStructureId,omitempty"`
	Enabled           bool   `json:"enabled"`
}

// Template is a named placeholder pattern for generating filenames.
type Template struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Pattern   string   `json:"pattern"`
	FileTypes []string `json:"fileTypes,omitempty"`
	IsDefault bool     `json:"isDefault"`
	CreatedAt string   `json:"createdAt,omitempty"`
	UpdatedAt string   `json:"updatedAt,omitempty"`
}

// AppliesTo reports whether the template is applicable to the given extension
// (lowercase, no dot). An empty FileTypes list means the template applies to
// everything; configured file types may carry a leading dot.
func (t *Template) AppliesTo(ext string) bool {
	if len(t.FileTypes) == 0 {
		return true
	}
	for _, ft := range t.FileTypes {
		if strings.EqualFold(strings.TrimPrefix(ft, "."), ext) {
			return true
		}
	}
	return false
}

// FolderStructure is a directory placeholder pattern for organizing files.
type FolderStructure struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Pattern     string `json:"pattern"` // e.g. "{year}/{month}"
	Description string `json:"description,omitempty"`
	Enabled     bool   `json:"enabled"`
	Priority    int    `json:"priority"`
}
