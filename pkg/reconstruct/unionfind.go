package reconstruct

// disjointSet is a union-find over dense integer object ids with path
// halving. Which root survives a union is decided by the caller, so the
// structure has no rank of its own.
type disjointSet struct {
	parent []int
}

// add creates a new singleton set and returns its id.
func (s *disjointSet) add() int {
	id := len(s.parent)
	s.parent = append(s.parent, id)
	return id
}

// find returns the representative of the set containing x.
func (s *disjointSet) find(x int) int {
	for s.parent[x] != x {
		s.parent[x] = s.parent[s.parent[x]]
		x = s.parent[x]
	}
	return x
}

// link attaches root drop under root keep. Both must be representatives.
func (s *disjointSet) link(drop, keep int) {
	s.parent[drop] = keep
}

// size returns the number of ids ever allocated.
func (s *disjointSet) size() int { return len(s.parent) }
