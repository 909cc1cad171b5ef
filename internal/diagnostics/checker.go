package diagnostics

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/pmsuite/pathregistry/internal/infrastructure/logging"
	"github.com/pmsuite/pathregistry/internal/registry"
)

// probeName is the sentinel file used for the directory write probe. The
// file is deleted immediately; the name never appears in a report so
// repeated runs stay identical.
const probeName = ".pathregistry_probe"

// Checker classifies registry entries against the filesystem.
type Checker struct {
	reg       *registry.Registry
	essential map[string]bool
	log       *logging.Logger
}

// NewChecker builds a checker. essential lists the keys whose absence or
// breakage is high severity; nil means no key is essential.
func NewChecker(reg *registry.Registry, essential []string, log *logging.Logger) *Checker {
	if log == nil {
		log = logging.Nop()
	}
	set := make(map[string]bool, len(essential))
	for _, key := range essential {
		set[registry.NormalizeKey(key)] = true
	}
	return &Checker{reg: reg, essential: set, log: log}
}

// Run diagnoses every stored entry plus the essential watch-list. The
// registry is never mutated.
func (c *Checker) Run() Report {
	entries := c.reg.Entries()
	issues := make([]Issue, 0)

	for _, entry := range entries {
		if issue, bad := c.classify(entry); bad {
			issues = append(issues, issue)
		}
	}
	issues = append(issues, c.missingEssential()...)

	report := buildReport(issues)
	c.log.Debug("diagnosis complete",
		zap.Int("entries", len(entries)),
		zap.Int("issues", len(issues)),
		zap.String("status", report.Status))
	return report
}

// RunEssential diagnoses only the essential watch-list, the cheap variant
// used at boot.
func (c *Checker) RunEssential() Report {
	issues := make([]Issue, 0)
	for key := range c.essential {
		entry, ok := c.reg.Entry(key)
		if !ok {
			continue // covered by missingEssential
		}
		if issue, bad := c.classify(entry); bad {
			issues = append(issues, issue)
		}
	}
	issues = append(issues, c.missingEssential()...)
	return buildReport(issues)
}

// missingEssential reports watch-list keys absent from the store entirely.
func (c *Checker) missingEssential() []Issue {
	issues := make([]Issue, 0)
	for key := range c.essential {
		if _, ok := c.reg.Entry(key); !ok {
			issues = append(issues, Issue{
				Key:          key,
				Type:         MissingKey,
				Severity:     SeverityHigh,
				Fixable:      false,
				SuggestedFix: "register the key or restore the configuration file",
			})
		}
	}
	return issues
}

func (c *Checker) classify(entry registry.Entry) (Issue, bool) {
	info, err := os.Stat(entry.Value)
	severity := SeverityMedium
	if c.essential[entry.Key] {
		severity = SeverityHigh
	}

	switch {
	case err == nil:
		return c.classifyExisting(entry, info.IsDir())
	case os.IsNotExist(err):
		switch entry.Kind {
		case registry.KindDirectory:
			return Issue{
				Key: entry.Key, Path: entry.Value,
				Type: MissingDirectory, Severity: severity, Fixable: true,
				SuggestedFix: fmt.Sprintf("mkdir -p %q", entry.Value),
			}, true
		case registry.KindFile:
			return Issue{
				Key: entry.Key, Path: entry.Value,
				Type: MissingFile, Severity: severity, Fixable: true,
				SuggestedFix: fmt.Sprintf("mkdir -p %q", filepath.Dir(entry.Value)),
			}, true
		default:
			return Issue{
				Key: entry.Key, Path: entry.Value,
				Type: MissingPath, Severity: severity, Fixable: false,
				SuggestedFix: "path does not exist; set a correct location",
			}, true
		}
	default:
		// Stat itself failed: treat as a permission problem on the path.
		return Issue{
			Key: entry.Key, Path: entry.Value,
			Type: PermissionDenied, Severity: SeverityHigh, Fixable: false,
			SuggestedFix: fmt.Sprintf("check access rights on %q", entry.Value),
		}, true
	}
}

func (c *Checker) classifyExisting(entry registry.Entry, isDir bool) (Issue, bool) {
	switch entry.Kind {
	case registry.KindDirectory:
		if !isDir {
			return Issue{
				Key: entry.Key, Path: entry.Value,
				Type: NotADirectory, Severity: SeverityHigh, Fixable: false,
				SuggestedFix: "a file occupies the expected directory location; move it aside",
			}, true
		}
		if !writable(entry.Value) {
			return Issue{
				Key: entry.Key, Path: entry.Value,
				Type: PermissionDenied, Severity: SeverityHigh, Fixable: false,
				SuggestedFix: fmt.Sprintf("grant write access: chmod +rw %q", entry.Value),
			}, true
		}
	case registry.KindFile:
		if isDir {
			return Issue{
				Key: entry.Key, Path: entry.Value,
				Type: NotAFile, Severity: SeverityHigh, Fixable: false,
				SuggestedFix: "a directory occupies the expected file location; move it aside",
			}, true
		}
		if !readable(entry.Value) {
			return Issue{
				Key: entry.Key, Path: entry.Value,
				Type: PermissionDenied, Severity: SeverityHigh, Fixable: false,
				SuggestedFix: fmt.Sprintf("grant read access: chmod +r %q", entry.Value),
			}, true
		}
	}
	return Issue{}, false
}

// writable probes a directory with a create+delete of a sentinel file.
func writable(dir string) bool {
	probe := filepath.Join(dir, probeName)
	f, err := os.Create(probe)
	if err != nil {
		return false
	}
	f.Close()
	os.Remove(probe)
	return true
}

// readable probes a file by opening it.
func readable(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

func buildReport(issues []Issue) Report {
	// Deterministic ordering keeps back-to-back runs comparable.
	sort.Slice(issues, func(i, j int) bool {
		if issues[i].Key != issues[j].Key {
			return issues[i].Key < issues[j].Key
		}
		return issues[i].Type < issues[j].Type
	})

	stats := Stats{Total: len(issues)}
	for _, issue := range issues {
		switch issue.Type {
		case MissingDirectory, MissingFile, MissingPath, MissingKey:
			stats.Missing++
		case NotADirectory, NotAFile:
			stats.TypeMismatches++
		case PermissionDenied:
			stats.PermissionIssues++
		}
		switch issue.Severity {
		case SeverityHigh:
			stats.High++
		case SeverityMedium:
			stats.Medium++
		}
	}

	status := statusHealthy
	if len(issues) > 0 {
		status = statusIssuesFound
	}
	return Report{
		Timestamp: time.Now(),
		Status:    status,
		Stats:     stats,
		Issues:    issues,
	}
}
