package locator

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/pmsuite/pathregistry/internal/infrastructure/logging"
	"github.com/pmsuite/pathregistry/internal/shared/paths"
)

// Chain runs strategies in order and returns the first existing match.
// It satisfies the registry's Locator interface.
type Chain struct {
	strategies []Strategy
	log        *logging.Logger
}

// New builds the standard chain for a suite rooted at root.
func New(root string, log *logging.Logger) *Chain {
	if log == nil {
		log = logging.Nop()
	}
	return &Chain{
		log: log,
		strategies: []Strategy{
			Substitution{},
			SiblingMatch{},
			FallbackRoots{Roots: DefaultRoots(root)},
		},
	}
}

// NewWithStrategies builds a chain from an explicit strategy list.
func NewWithStrategies(log *logging.Logger, strategies ...Strategy) *Chain {
	if log == nil {
		log = logging.Nop()
	}
	return &Chain{log: log, strategies: strategies}
}

// DefaultRoots lists the plausible relocation roots for a suite install.
func DefaultRoots(root string) []string {
	roots := []string{}
	if root != "" {
		roots = append(roots, root, filepath.Join(root, "data"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		roots = append(roots, filepath.Join(home, paths.SuiteName))
	}
	roots = append(roots, paths.SuiteHome())
	return roots
}

// Locate runs the chain for a missing path. The returned path exists on
// disk when ok is true.
func (c *Chain) Locate(key, path string) (string, bool) {
	for _, strategy := range c.strategies {
		if alt, ok := strategy.Find(path); ok {
			c.log.Info("alternative path located",
				zap.String("key", key),
				zap.String("strategy", strategy.Name()),
				zap.String("original", path),
				zap.String("alternative", alt))
			return alt, true
		}
	}
	c.log.Debug("no alternative found", zap.String("key", key), zap.String("path", path))
	return "", false
}
