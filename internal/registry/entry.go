package registry

// Origin identifies which layer wrote an entry. The numeric order is the
// precedence order: a write is applied only when its origin ranks at least
// as high as the stored entry's origin.
type Origin int

const (
	OriginDefault Origin = iota
	OriginConfig
	OriginLegacy
	OriginEnv
	OriginUser
)

func (o Origin) String() string {
	switch o {
	case OriginDefault:
		return "default"
	case OriginConfig:
		return "config"
	case OriginLegacy:
		return "legacy"
	case OriginEnv:
		return "env"
	case OriginUser:
		return "user"
	default:
		return "unknown"
	}
}

// Entry is one registered path. Value is always absolute.
type Entry struct {
	Key    string `json:"key"`
	Value  string `json:"value"`
	Kind   Kind   `json:"kind"`
	Origin Origin `json:"origin"`
}

// UserRegistered reports whether the entry was written by an explicit
// runtime registration rather than a boot layer.
func (e Entry) UserRegistered() bool {
	return e.Origin == OriginUser
}
