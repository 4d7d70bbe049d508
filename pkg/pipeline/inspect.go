package pipeline

import (
	"github.com/matzehuels/commute/pkg/diagram"
	"github.com/matzehuels/commute/pkg/diagram/transform"
)

// ObjectInfo describes one object of an inspected diagram.
type ObjectInfo struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Kind      string `json:"kind"`
	InDegree  int    `json:"in"`
	OutDegree int    `json:"out"`
}

// Inspection summarizes the structure of a diagram.
type Inspection struct {
	Objects    []ObjectInfo `json:"objects"`
	Morphisms  int          `json:"morphisms"`
	Components int          `json:"components"`
	CycleRank  int          `json:"cycle_rank"`
	CycleBasis [][]string   `json:"cycle_basis,omitempty"`
	BackEdges  []string     `json:"back_edges,omitempty"`

	// Skeleton is the diagram with all pass-through objects contracted.
	Skeleton *transform.Skeleton `json:"-"`
}

// Inspect classifies every object and computes the cycle structure of g.
func Inspect(g *diagram.Graph) *Inspection {
	in := &Inspection{
		Objects:    make([]ObjectInfo, 0, g.ObjectCount()),
		Morphisms:  g.MorphismCount(),
		Components: len(g.Components()),
		CycleRank:  transform.CycleRank(g),
		BackEdges:  transform.BackEdges(g),
		Skeleton:   transform.Condense(g),
	}
	for _, o := range g.Objects() {
		in.Objects = append(in.Objects, ObjectInfo{
			ID:        o.ID,
			Label:     o.DisplayLabel(),
			Kind:      transform.Classify(g, o.ID).String(),
			InDegree:  g.InDegree(o.ID),
			OutDegree: g.OutDegree(o.ID),
		})
	}
	for _, c := range transform.CycleBasis(g) {
		in.CycleBasis = append(in.CycleBasis, c.Morphisms)
	}
	return in
}
