package diagnostics

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

// Report output formats.
const (
	FormatText = "text"
	FormatHTML = "html"
	FormatJSON = "json"
)

// Reporter renders diagnostic reports for operator consumption. Rendering
// is a read-only projection of a fresh checker run.
type Reporter struct {
	checker *Checker
	version string
}

// NewReporter builds a reporter. version is stamped into the output.
func NewReporter(checker *Checker, version string) *Reporter {
	return &Reporter{checker: checker, version: version}
}

// Render runs a diagnosis and renders it in the requested format.
func (r *Reporter) Render(format string) (string, error) {
	report := r.checker.Run()

	switch format {
	case FormatText, "":
		return r.renderText(report), nil
	case FormatHTML:
		return r.renderHTML(report)
	case FormatJSON:
		data, err := sonic.MarshalIndent(report, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to render json report: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unknown report format %q", format)
	}
}

func (r *Reporter) renderText(report Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Path Registry Report (v%s)\n", r.version)
	fmt.Fprintf(&b, "Generated: %s\n", report.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(&b, "Status: %s\n\n", report.Status)
	fmt.Fprintf(&b, "Issues: %d (high: %d, medium: %d)\n", report.Stats.Total, report.Stats.High, report.Stats.Medium)
	fmt.Fprintf(&b, "  missing: %d, type mismatches: %d, permission: %d\n",
		report.Stats.Missing, report.Stats.TypeMismatches, report.Stats.PermissionIssues)

	if len(report.Issues) > 0 {
		b.WriteString("\n")
		for _, issue := range report.Issues {
			fmt.Fprintf(&b, "[%s] %s: %s\n", strings.ToUpper(string(issue.Severity)), issue.Key, issue.Type)
			if issue.Path != "" {
				fmt.Fprintf(&b, "    path: %s\n", issue.Path)
			}
			fmt.Fprintf(&b, "    fix:  %s\n", issue.SuggestedFix)
		}
	}
	return b.String()
}

var htmlReport = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Path Registry Report</title></head>
<body>
<h1>Path Registry Report (v{{.Version}})</h1>
<p>Generated: {{.Generated}}</p>
<p>Status: <strong>{{.Report.Status}}</strong></p>
<p>Issues: {{.Report.Stats.Total}} (high: {{.Report.Stats.High}}, medium: {{.Report.Stats.Medium}})</p>
{{if .Report.Issues}}
<table border="1" cellpadding="4">
<tr><th>Severity</th><th>Key</th><th>Type</th><th>Path</th><th>Suggested fix</th></tr>
{{range .Report.Issues}}
<tr><td>{{.Severity}}</td><td>{{.Key}}</td><td>{{.Type}}</td><td>{{.Path}}</td><td>{{.SuggestedFix}}</td></tr>
{{end}}
</table>
{{else}}
<p>No issues found.</p>
{{end}}
</body>
</html>
`))

func (r *Reporter) renderHTML(report Report) (string, error) {
	var b strings.Builder
	err := htmlReport.Execute(&b, struct {
		Version   string
		Generated string
		Report    Report
	}{
		Version:   r.version,
		Generated: report.Timestamp.Format(time.RFC3339),
		Report:    report,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render html report: %w", err)
	}
	return b.String(), nil
}
