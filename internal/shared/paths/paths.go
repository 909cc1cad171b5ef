package paths

import (
	"os"
	"path/filepath"
)

// SuiteName is the product directory name used for per-user locations.
const SuiteName = "PMSuite"

// Well-known registry keys
const (
	Root          = "ROOT"
	DataDir       = "DATA_DIR"
	LogsDir       = "LOGS_DIR"
	ExportsDir    = "EXPORTS_DIR"
	TemplatesDir  = "TEMPLATES_DIR"
	ProjectsDir   = "PROJECTS_DIR"
	MasterDir     = "MASTER_DIR"
	TempDir       = "TEMP_DIR"
	BackupDir     = "BACKUP_DIR"
	DBPath        = "DB_PATH"
	DashboardFile = "DASHBOARD_FILE"
	ProjectsFile  = "PROJECTS_FILE"
)

// Per-application directories
const (
	ProjectManagerDir    = "PROJECTMANAGER_DIR"
	CreateProjectListDir = "CREATEPROJECTLIST_DIR"
	ProjectDashboardDir  = "PROJECTDASHBOARD_DIR"
)

// appDirNames maps per-app keys to their directory names under the root.
var appDirNames = map[string]string{
	ProjectManagerDir:    "ProjectManager",
	CreateProjectListDir: "CreateProjectList",
	ProjectDashboardDir:  "ProjectDashBoard",
}

// rootMarkers identify a suite checkout or install when walking upward.
var rootMarkers = []string{
	"path_registry.json",
	"defaults.txt",
	"pathsuite.spec",
}

// maxRootAscent bounds the upward marker search.
const maxRootAscent = 5

// Defaults returns the complete default path table for a suite root.
// All values are absolute as long as root is absolute.
func Defaults(root string) map[string]string {
	data := filepath.Join(root, "data")
	exports := filepath.Join(data, "exports")

	m := map[string]string{
		Root:          root,
		DataDir:       data,
		LogsDir:       filepath.Join(root, "logs"),
		ExportsDir:    exports,
		TemplatesDir:  filepath.Join(data, "templates"),
		ProjectsDir:   filepath.Join(data, "projects"),
		MasterDir:     filepath.Join(data, "master"),
		TempDir:       filepath.Join(data, "temp"),
		BackupDir:     filepath.Join(data, "backup"),
		DBPath:        filepath.Join(data, "projects.db"),
		DashboardFile: filepath.Join(exports, "dashboard.csv"),
		ProjectsFile:  filepath.Join(exports, "projects.csv"),
	}

	for key, name := range appDirNames {
		m[key] = filepath.Join(root, name)
	}
	return m
}

// Essential lists the keys every install must resolve. Diagnostics reports
// their absence as a high-severity finding.
func Essential() []string {
	return []string{DBPath, DataDir, ExportsDir, TemplatesDir, ProjectsDir, LogsDir}
}

// SuiteHome returns the per-user suite directory under Documents.
func SuiteHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", SuiteName)
	}
	return filepath.Join(home, "Documents", SuiteName)
}

// DiscoverRoot locates the suite root by walking upward from the running
// executable's directory, then from the working directory, looking for a
// marker file or a known application directory. Packaged binaries resolve
// relative to the executable; developer checkouts resolve relative to cwd.
// Falls back to SuiteHome when no marker is found.
func DiscoverRoot() string {
	starts := make([]string, 0, 2)
	if exe, err := os.Executable(); err == nil {
		starts = append(starts, filepath.Dir(exe))
	}
	if cwd, err := os.Getwd(); err == nil {
		starts = append(starts, cwd)
	}

	for _, start := range starts {
		if root, ok := ascendToRoot(start); ok {
			return root
		}
	}
	return SuiteHome()
}

func ascendToRoot(start string) (string, bool) {
	current := start
	for i := 0; i < maxRootAscent; i++ {
		for _, marker := range rootMarkers {
			if _, err := os.Stat(filepath.Join(current, marker)); err == nil {
				return current, true
			}
		}
		if filepath.Base(current) == SuiteName {
			return current, true
		}
		// Inside one of the app directories: the root is its parent.
		for _, name := range appDirNames {
			if filepath.Base(current) == name {
				return filepath.Dir(current), true
			}
		}
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}
	return "", false
}
