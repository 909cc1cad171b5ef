package diagnostics

import "time"

// IssueType classifies a diagnostic finding.
type IssueType string

const (
	MissingDirectory IssueType = "missing_directory"
	MissingFile      IssueType = "missing_file"
	MissingPath      IssueType = "missing_path"
	NotADirectory    IssueType = "not_a_directory"
	NotAFile         IssueType = "not_a_file"
	PermissionDenied IssueType = "permission_denied"
	MissingKey       IssueType = "missing_key"
)

// Severity ranks how urgently an issue needs attention.
type Severity string

const (
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Issue is one diagnostic finding. Issues are produced by the Checker,
// optionally consumed once by the Repairer, and then discarded.
type Issue struct {
	Key          string    `json:"key"`
	Path         string    `json:"path"`
	Type         IssueType `json:"type"`
	Severity     Severity  `json:"severity"`
	Fixable      bool      `json:"fixable"`
	SuggestedFix string    `json:"suggested_fix"`
}

// Stats aggregates a report's findings.
type Stats struct {
	Total            int `json:"total"`
	Missing          int `json:"missing"`
	TypeMismatches   int `json:"type_mismatches"`
	PermissionIssues int `json:"permission_issues"`
	High             int `json:"high"`
	Medium           int `json:"medium"`
}

// Report is the output of one checker run.
type Report struct {
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"status"`
	Stats     Stats     `json:"stats"`
	Issues    []Issue   `json:"issues"`
}

// Healthy reports whether the run found nothing wrong.
func (r Report) Healthy() bool {
	return len(r.Issues) == 0
}

const (
	statusHealthy     = "healthy"
	statusIssuesFound = "issues_found"
)
