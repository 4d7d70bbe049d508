package cache

// ScopedKeyer wraps a Keyer with a prefix so several tenants or
// deployments can share one backend without colliding.
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// A nil inner keyer means [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

func (k *ScopedKeyer) DeriveKey(diagramHash string, opts DeriveKeyOpts) string {
	return k.prefix + k.inner.DeriveKey(diagramHash, opts)
}

func (k *ScopedKeyer) ReconstructKey(equationsHash string) string {
	return k.prefix + k.inner.ReconstructKey(equationsHash)
}

func (k *ScopedKeyer) ArtifactKey(diagramHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(diagramHash, opts)
}
