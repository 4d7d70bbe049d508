package transform

import "github.com/matzehuels/commute/pkg/diagram"

// Kind classifies an object by where paths diverge and converge.
type Kind int

const (
	// Neither is an object with exactly one incoming and one outgoing morphism.
	Neither Kind = iota
	// Branch is an object where paths start or diverge: out-degree > 1 or
	// in-degree 0.
	Branch
	// Merge is an object where paths end or converge: in-degree > 1 or
	// out-degree 0.
	Merge
	// Both is an object that is a branch point and a merge point.
	Both
)

var kindNames = [...]string{"neither", "branch", "merge", "both"}

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// IsBranch reports whether k is Branch or Both.
func (k Kind) IsBranch() bool { return k == Branch || k == Both }

// IsMerge reports whether k is Merge or Both.
func (k Kind) IsMerge() bool { return k == Merge || k == Both }

// Classify returns the kind of object id from its degrees in g. Parallel
// morphisms count separately. An isolated object is Both.
func Classify(g *diagram.Graph, id string) Kind {
	in, out := g.InDegree(id), g.OutDegree(id)
	branch := out > 1 || in == 0
	merge := in > 1 || out == 0
	switch {
	case branch && merge:
		return Both
	case branch:
		return Branch
	case merge:
		return Merge
	default:
		return Neither
	}
}

// ClassifyAll classifies every object of g.
func ClassifyAll(g *diagram.Graph) map[string]Kind {
	out := make(map[string]Kind, g.ObjectCount())
	for _, id := range g.ObjectIDs() {
		out[id] = Classify(g, id)
	}
	return out
}
