package locator

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
)

// Strategy attempts to find an existing stand-in for a missing path.
type Strategy interface {
	Name() string
	Find(path string) (string, bool)
}

// substitution rewrites one known renamed segment into its candidates.
type substitution struct {
	old          string
	replacements []string
}

// substitutions carries the renames the suite has shipped over its history.
// Segments are written with the native separator so both saved Windows and
// POSIX paths normalize the same way.
var substitutions = []substitution{
	{"ProjectManagerSuite", []string{"PMSuite", "ProjectManager", "ProjectSuite"}},
	{filepath.Join("data", "exports"), []string{"exports", "data"}},
	{filepath.Join("documents", "projects"), []string{"projects", "documents"}},
}

// Substitution applies the fixed rename table to the path string and
// accepts the first rewritten path that exists.
type Substitution struct{}

func (Substitution) Name() string { return "substitution" }

func (Substitution) Find(path string) (string, bool) {
	normalized := filepath.Clean(path)
	for _, sub := range substitutions {
		if !strings.Contains(normalized, sub.old) {
			continue
		}
		for _, replacement := range sub.replacements {
			candidate := strings.ReplaceAll(normalized, sub.old, replacement)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true
			}
		}
	}
	return "", false
}

// SiblingMatch lists the missing path's parent and accepts any entry whose
// name contains the target's base name, case-insensitively.
type SiblingMatch struct{}

func (SiblingMatch) Name() string { return "sibling" }

func (SiblingMatch) Find(path string) (string, bool) {
	base := filepath.Base(path)
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "", false
	}

	parent := filepath.Dir(path)
	entries, err := os.ReadDir(parent)
	if err != nil {
		return "", false
	}

	needle := strings.ToLower(base)
	for _, entry := range entries {
		if strings.Contains(strings.ToLower(entry.Name()), needle) {
			return filepath.Join(parent, entry.Name()), true
		}
	}
	return "", false
}

// scanBudget bounds the recursive fallback scan so a huge tree cannot turn
// a path lookup into a long-running crawl.
const scanBudget = 20000

// FallbackRoots checks a fixed list of plausible root directories for the
// missing path's base name: direct child first, then an exact-name glob,
// then a budgeted case-insensitive walk.
type FallbackRoots struct {
	Roots []string
}

func (FallbackRoots) Name() string { return "fallback-roots" }

func (f FallbackRoots) Find(path string) (string, bool) {
	base := filepath.Base(path)
	if base == "" || base == "." {
		return "", false
	}

	for _, root := range f.Roots {
		if _, err := os.Stat(root); err != nil {
			continue
		}

		direct := filepath.Join(root, base)
		if _, err := os.Stat(direct); err == nil {
			return direct, true
		}

		if matches, err := doublestar.Glob(os.DirFS(root), "**/"+base); err == nil && len(matches) > 0 {
			return filepath.Join(root, matches[0]), true
		}

		if found, ok := deepScan(root, base); ok {
			return found, true
		}
	}
	return "", false
}

// deepScan walks root looking for a case-insensitive base-name match,
// giving up once the entry budget is spent.
func deepScan(root, base string) (string, bool) {
	needle := strings.ToLower(base)

	var mu sync.Mutex
	var found string
	var seen int64

	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if atomic.AddInt64(&seen, 1) > scanBudget {
			return filepath.SkipAll
		}
		if strings.ToLower(d.Name()) == needle {
			mu.Lock()
			if found == "" {
				found = p
			}
			mu.Unlock()
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil && err != fs.SkipAll {
		return "", false
	}
	return found, found != ""
}
