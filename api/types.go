package api

// UndoRequest asks for a recorded operation to be reversed. An empty
// OperationID targets the most recent one.
type UndoRequest struct {
	OperationID string `json:"operationId"`
	DryRun      bool   `json:"dryRun"`
	Force       bool   `json:"force"`
}

// RestoreRequest asks for a single file to be moved back to its original
// path, or for a whole operation when OperationID is set.
type RestoreRequest struct {
	FilePath    string `json:"filePath"`
	OperationID string `json:"operationId,omitempty"`
	DryRun      bool   `json:"dryRun"`
	Lookup      bool   `json:"lookup"`
}

// PreviewRequest drives preview generation over a directory on the server's
// filesystem.
type PreviewRequest struct {
	Directory       string   `json:"directory"`
	Recursive       bool     `json:"recursive"`
	IncludeHidden   bool     `json:"includeHidden"`
	Extensions      []string `json:"extensions,omitempty"`
	BaseDirectory   string   `json:"baseDirectory,omitempty"`
	CheckFileSystem bool     `json:"checkFileSystem"`
}

// StatsResponse summarizes the history store and archive.
type StatsResponse struct {
	HistoryEntries  int    `json:"historyEntries"`
	ArchivedEntries int    `json:"archivedEntries"`
	LastPruned      string `json:"lastPruned,omitempty"`
}

// PaginatedResponse represents a paginated response
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Page       int         `json:"page"`
	PerPage    int         `json:"per_page"`
	Total      int         `json:"total"`
	TotalPages int         `json:"total_pages"`
	HasNext    bool        `json:"has_next"`
}
