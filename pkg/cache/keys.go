package cache

import "fmt"

// DeriveKeyOpts holds the derivation options that affect its output.
type DeriveKeyOpts struct {
	MaxDepth int `json:"max_depth"`
}

// ArtifactKeyOpts holds the rendering options that affect an artifact.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Detailed bool    `json:"detailed,omitempty"`
	Scale    float64 `json:"scale,omitempty"`
	Seed     uint64  `json:"seed,omitempty"`
}

// Keyer generates cache keys.
type Keyer interface {
	// DeriveKey keys the equations derived from a diagram with the given hash.
	DeriveKey(diagramHash string, opts DeriveKeyOpts) string
	// ReconstructKey keys the diagram rebuilt from equations with the given hash.
	ReconstructKey(equationsHash string) string
	// ArtifactKey keys a rendering of a diagram with the given hash.
	ArtifactKey(diagramHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces keys of the form "kind:hash".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) DeriveKey(diagramHash string, opts DeriveKeyOpts) string {
	return hashKey("derive", diagramHash, opts)
}

func (DefaultKeyer) ReconstructKey(equationsHash string) string {
	return fmt.Sprintf("reconstruct:%s", equationsHash)
}

func (DefaultKeyer) ArtifactKey(diagramHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", diagramHash, opts)
}
