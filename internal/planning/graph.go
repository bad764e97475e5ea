package planning

import (
	"sort"

	"github.com/piplan-io/piplan/internal/domain"
)

// Graph is the feature dependency relation built from blocked_by and
// blocks edges. relates_to edges are informational and ignored here.
// External trackers cannot guarantee acyclic input, so a cycle is a data
// condition to surface, not a fatal error.
type Graph struct {
	blockedBy map[string][]string // feature key -> keys it is blocked by
	keys      []string
}

// BuildGraph constructs the dependency graph over a feature set.
// A "blocks" edge on feature A toward B is recorded as B blocked_by A.
// Edges pointing at keys outside the feature set are kept: a blocker the
// session does not know about still makes the dependent feature unready.
func BuildGraph(features map[string]*domain.Feature) *Graph {
	g := &Graph{blockedBy: make(map[string][]string, len(features))}
	for key, f := range features {
		g.keys = append(g.keys, key)
		for _, d := range f.Dependencies {
			switch d.Kind {
			case domain.DepBlockedBy:
				g.blockedBy[key] = append(g.blockedBy[key], d.TargetFeatureKey)
			case domain.DepBlocks:
				g.blockedBy[d.TargetFeatureKey] = append(g.blockedBy[d.TargetFeatureKey], key)
			}
		}
	}
	sort.Strings(g.keys)
	return g
}

// BlockersOf returns the keys this feature is blocked by.
func (g *Graph) BlockersOf(key string) []string {
	return g.blockedBy[key]
}

// HasCycle reports whether the blocked_by relation contains a cycle.
func (g *Graph) HasCycle() bool {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int, len(g.keys))

	var visit func(key string) bool
	visit = func(key string) bool {
		color[key] = gray
		for _, dep := range g.blockedBy[key] {
			switch color[dep] {
			case gray:
				return true
			case white:
				if visit(dep) {
					return true
				}
			}
		}
		color[key] = black
		return false
	}

	for _, key := range g.keys {
		if color[key] == white && visit(key) {
			return true
		}
	}
	return false
}

// EarliestStart returns the first sprint number at which the feature may
// start given the committed assignments: the sprint after the latest
// blocker's end sprint. Blockers without an assignment are returned in
// unassigned; the caller decides whether that rejects or merely warns.
func (g *Graph) EarliestStart(key string, assignments map[string]*domain.Assignment) (earliest int, unassigned []string) {
	earliest = 1
	for _, blocker := range g.blockedBy[key] {
		a, ok := assignments[blocker]
		if !ok {
			unassigned = append(unassigned, blocker)
			continue
		}
		if a.EndSprint+1 > earliest {
			earliest = a.EndSprint + 1
		}
	}
	return earliest, unassigned
}

// ReadyAt returns the set of feature keys eligible to start at the given
// sprint number: every blocker is assigned and ends before that sprint.
func (g *Graph) ReadyAt(assignments map[string]*domain.Assignment, sprintNum int) map[string]bool {
	ready := make(map[string]bool)
	for _, key := range g.keys {
		earliest, unassigned := g.EarliestStart(key, assignments)
		if len(unassigned) == 0 && earliest <= sprintNum {
			ready[key] = true
		}
	}
	return ready
}
