package models

import "time"

// RenameStatus classifies a proposal after preview generation.
type RenameStatus string

const (
	StatusReady       RenameStatus = "ready"
	StatusConflict    RenameStatus = "conflict"
	StatusMissingData RenameStatus = "missing-data"
	StatusNoChange    RenameStatus = "no-change"
	StatusInvalidName RenameStatus = "invalid-name"
)

// TemplateSource records how the proposed name was chosen.
type TemplateSource string

const (
	SourceRule     TemplateSource = "rule"
	SourceFallback TemplateSource = "fallback"
	SourceDefault  TemplateSource = "default"
	SourceLLM      TemplateSource = "llm"
)

// Issue codes attached to proposals during generation.
const (
	IssueRuleTemplateMissing     = "RULE_TEMPLATE_MISSING"
	IssueLLMAnalysisFailed       = "LLM_ANALYSIS_FAILED"
	IssueLLMSuggestionApplied    = "LLM_SUGGESTION_APPLIED"
	IssueMissingMetadata         = "MISSING_METADATA"
	IssueUsedFallback            = "USED_FALLBACK"
	IssueInvalidName             = "INVALID_NAME"
	IssueDuplicateName           = "DUPLICATE_NAME"
	IssueFileExists              = "FILE_EXISTS"
	IssueFolderResolutionFailed  = "FOLDER_RESOLUTION_FAILED"
	IssueSanitizedCharReplace    = "SANITIZED_CHAR_REPLACEMENT"
	IssueSanitizedReservedName   = "SANITIZED_RESERVED_NAME"
	IssueSanitizedTruncation     = "SANITIZED_TRUNCATION"
	IssueSanitizedTrailingFix    = "SANITIZED_TRAILING_FIX"
)

// RenameIssue is a typed, human-readable note on a proposal.
type RenameIssue struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// AppliedRule identifies the rule that selected the template for a proposal.
type AppliedRule struct {
	RuleID   string `json:"ruleId"`
	RuleName string `json:"ruleName,omitempty"`
	Kind     string `json:"kind"` // "metadata" or "filename"
}

// RenameProposal is the central value object of the preview pipeline. Once a
// preview has been returned proposals are immutable; only the conflict passes
// inside generation may escalate the status.
type RenameProposal struct {
	ID                string           `json:"id"`
	OriginalPath      string           `json:"originalPath"`
	OriginalName      string           `json:"originalName"`
	ProposedName      string           `json:"proposedName"`
	ProposedPath      string           `json:"proposedPath"`
	Status            RenameStatus     `json:"status"`
	Issues            []RenameIssue    `json:"issues"`
	AppliedRule       *AppliedRule     `json:"appliedRule,omitempty"`
	TemplateSource    TemplateSource   `json:"templateSource"`
	IsMoveOperation   bool             `json:"isMoveOperation"`
	FolderStructureID string           `json:"folderStructureId,omitempty"`
	LLMSuggestion     *AnalysisResult  `json:"llmSuggestion,omitempty"`
	UseLLMSuggestion  bool             `json:"useLlmSuggestion"`
	Metadata          *UnifiedMetadata `json:"metadata,omitempty"`
}

// PreviewSummary is a pure reduction over the final proposals.
type PreviewSummary struct {
	Total          int `json:"total"`
	Ready          int `json:"ready"`
	Conflicts      int `json:"conflicts"`
	MissingData    int `json:"missingData"`
	NoChange       int `json:"noChange"`
	InvalidName    int `json:"invalidName"`
	MoveOperations int `json:"moveOperations"`
	RenameOnly     int `json:"renameOnly"`
	LLMSuggested   int `json:"llmSuggested"`
}

// RenamePreview is the complete output of preview generation.
type RenamePreview struct {
	Proposals    []RenameProposal `json:"proposals"`
	Summary      PreviewSummary   `json:"summary"`
	GeneratedAt  time.Time        `json:"generatedAt"`
	TemplateUsed string           `json:"templateUsed"`
}

// Summarize recomputes the summary from the proposal list.
func Summarize(proposals []RenameProposal) PreviewSummary {
	s := PreviewSummary{Total: len(proposals)}
	for i := range proposals {
		p := &proposals[i]
		switch p.Status {
		case StatusReady:
			s.Ready++
		case StatusConflict:
			s.Conflicts++
		case StatusMissingData:
			s.MissingData++
		case StatusNoChange:
			s.NoChange++
		case StatusInvalidName:
			s.InvalidName++
		}
		if p.IsMoveOperation {
			s.MoveOperations++
		}
		if p.UseLLMSuggestion {
			s.LLMSuggested++
		}
	}
	s.RenameOnly = s.Total - s.MoveOperations
	return s
}
