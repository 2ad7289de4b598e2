package models

// LogsPage is one newest-first page of mirrored log lines.
type LogsPage struct {
	Lines      []string `json:"lines"`
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
	TotalLines int      `json:"total_lines"`
	HasMore    bool     `json:"has_more"`
}
