package domain

import "time"

// Dependency is a typed edge from one feature to another, by key.
// Only blocked_by and blocks edges affect scheduling; relates_to is
// informational.
type Dependency struct {
	TargetFeatureKey string
	Kind             DependencyKind
}

// Feature is one unit of backlog work in a session. Features with
// EstimatedSprints > 1 consume capacity across a contiguous sprint range.
type Feature struct {
	ID               string
	SessionID        string
	Key              string
	ExternalKey      string // tracker issue key, optional
	Title            string
	Points           int
	EstimatedSprints int
	Dependencies     []Dependency
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// BlockedBy returns the keys of features this feature is blocked by,
// merging explicit blocked_by edges with inverse blocks edges recorded
// on this feature's dependency list.
func (f *Feature) BlockedBy() []string {
	var keys []string
	for _, d := range f.Dependencies {
		if d.Kind == DepBlockedBy {
			keys = append(keys, d.TargetFeatureKey)
		}
	}
	return keys
}
