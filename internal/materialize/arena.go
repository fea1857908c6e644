package materialize

import (
	"fmt"

	"github.com/ashwin2912/alfred-sub000/internal/schema"
)

// edge is one declared dependency, resolved from the template name to
// an arena index. index is -1 when the name matches no task anywhere
// in the template.
type edge struct {
	name  string
	index int
}

// node is one task template pinned to a stable arena index. Creation
// fills externalID; a node whose externalID stays empty failed to
// create (or was never attempted).
type node struct {
	task       schema.TaskTemplate
	milestone  int
	deps       []edge
	externalID string
}

// arena indexes every task template up front so dependency edges are
// integer links instead of string lookups at creation time. Task names
// must be unique across the whole template; duplicates are rejected
// before any external call is made.
type arena struct {
	nodes      []*node
	milestones [][]int // milestone ordinal → arena indexes, in template order
}

func buildArena(p schema.ProjectTemplate) (*arena, error) {
	a := &arena{milestones: make([][]int, len(p.Milestones))}
	byName := make(map[string]int)

	for mi, m := range p.Milestones {
		for _, t := range m.Tasks {
			if prev, dup := byName[t.Name]; dup {
				return nil, fmt.Errorf("materialize: duplicate task name %q (milestones %q and %q)",
					t.Name, p.Milestones[a.nodes[prev].milestone].Name, m.Name)
			}
			idx := len(a.nodes)
			byName[t.Name] = idx
			a.nodes = append(a.nodes, &node{task: t, milestone: mi})
			a.milestones[mi] = append(a.milestones[mi], idx)
		}
	}

	// Resolve dependency edges once names are all known.
	for _, n := range a.nodes {
		for _, dep := range n.task.Dependencies {
			target, ok := byName[dep]
			if !ok {
				target = -1
			}
			n.deps = append(n.deps, edge{name: dep, index: target})
		}
	}
	return a, nil
}
