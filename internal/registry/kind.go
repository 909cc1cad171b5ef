package registry

import "strings"

// Kind classifies what a key is expected to point at. It drives healing
// (directories are created, files get their parent created) and diagnostic
// classification.
type Kind int

const (
	// KindOpaque keys are returned verbatim and never healed.
	KindOpaque Kind = iota
	// KindDirectory keys resolve to directories.
	KindDirectory
	// KindFile keys resolve to files; only the parent directory is ever
	// created, never the file itself.
	KindFile
)

var directorySuffixes = []string{"_DIR", "_FOLDER"}
var fileSuffixes = []string{"_FILE", "_PATH"}

// InferKind derives a kind from the key naming convention. It is applied
// once at registration; callers that know better use RegisterKind.
func InferKind(key string) Kind {
	for _, suffix := range directorySuffixes {
		if strings.HasSuffix(key, suffix) {
			return KindDirectory
		}
	}
	for _, suffix := range fileSuffixes {
		if strings.HasSuffix(key, suffix) {
			return KindFile
		}
	}
	return KindOpaque
}

func (k Kind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	case KindFile:
		return "file"
	default:
		return "opaque"
	}
}
