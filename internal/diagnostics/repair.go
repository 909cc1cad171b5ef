package diagnostics

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/pmsuite/pathregistry/internal/infrastructure/logging"
)

// RepairAction records one successful fix.
type RepairAction struct {
	Key    string `json:"key"`
	Action string `json:"action"`
}

// RepairFailure records one issue that could not be fixed, with a reason a
// human can act on. Non-fixable issues always land here rather than being
// dropped.
type RepairFailure struct {
	Key    string `json:"key"`
	Reason string `json:"reason"`
}

// RepairResult is the outcome of one repair pass.
type RepairResult struct {
	Repaired []RepairAction  `json:"repaired"`
	Failed   []RepairFailure `json:"failed"`
}

// Repairer applies the fixable subset of a diagnostic report.
type Repairer struct {
	checker *Checker
	log     *logging.Logger
}

// NewRepairer builds a repairer around a checker.
func NewRepairer(checker *Checker, log *logging.Logger) *Repairer {
	if log == nil {
		log = logging.Nop()
	}
	return &Repairer{checker: checker, log: log}
}

// Repair fixes what it safely can. A nil issue list means "diagnose first".
// Each item is attempted independently; a failure never aborts the pass.
func (r *Repairer) Repair(issues []Issue) RepairResult {
	if issues == nil {
		report := r.checker.Run()
		issues = report.Issues
	}

	result := RepairResult{
		Repaired: make([]RepairAction, 0, len(issues)),
		Failed:   make([]RepairFailure, 0),
	}

	for _, issue := range issues {
		switch issue.Type {
		case MissingDirectory:
			if err := os.MkdirAll(issue.Path, 0o755); err != nil {
				result.Failed = append(result.Failed, RepairFailure{
					Key: issue.Key, Reason: err.Error(),
				})
				r.log.Error("repair failed", zap.String("key", issue.Key), zap.Error(err))
				continue
			}
			result.Repaired = append(result.Repaired, RepairAction{
				Key: issue.Key, Action: "created_directory",
			})
			r.log.Info("repaired missing directory",
				zap.String("key", issue.Key), zap.String("path", issue.Path))

		case MissingFile:
			parent := filepath.Dir(issue.Path)
			if err := os.MkdirAll(parent, 0o755); err != nil {
				result.Failed = append(result.Failed, RepairFailure{
					Key: issue.Key, Reason: err.Error(),
				})
				r.log.Error("repair failed", zap.String("key", issue.Key), zap.Error(err))
				continue
			}
			result.Repaired = append(result.Repaired, RepairAction{
				Key: issue.Key, Action: "created_parent_directory",
			})
			r.log.Info("repaired missing parent",
				zap.String("key", issue.Key), zap.String("parent", parent))

		case PermissionDenied:
			result.Failed = append(result.Failed, RepairFailure{
				Key: issue.Key, Reason: "permission issues require a manual fix",
			})

		case NotADirectory, NotAFile:
			result.Failed = append(result.Failed, RepairFailure{
				Key: issue.Key, Reason: "type mismatch requires a manual fix",
			})

		default:
			result.Failed = append(result.Failed, RepairFailure{
				Key: issue.Key, Reason: "unsupported issue type: " + string(issue.Type),
			})
		}
	}
	return result
}
