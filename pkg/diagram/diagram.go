package diagram

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrEmptyID is returned by [Graph.AddObject] and [Graph.AddMorphism] when
	// an object identifier is empty. Every object needs a non-empty identity.
	ErrEmptyID = errors.New("object ID must not be empty")

	// ErrEmptyName is returned by [Graph.AddMorphism] when the morphism name is
	// empty. Names are the only way equations refer to morphisms.
	ErrEmptyName = errors.New("morphism name must not be empty")

	// ErrSelfLoop is returned by [Graph.AddMorphism] when domain and codomain
	// coincide. Diagrams never contain self-loops: an endomorphism cannot be
	// told apart from an identity by the equation format.
	ErrSelfLoop = errors.New("morphism domain and codomain must differ")

	// ErrDuplicateMorphism is returned (wrapped in a [*ConflictError]) by
	// [Graph.AddMorphism] when a name is already bound to different endpoints.
	ErrDuplicateMorphism = errors.New("morphism name already bound to different endpoints")

	// ErrUnknownObject is returned when an operation references an object ID
	// that is not part of the graph.
	ErrUnknownObject = errors.New("unknown object")

	// ErrUnknownMorphism is returned when an operation references a morphism
	// name that is not part of the graph.
	ErrUnknownMorphism = errors.New("unknown morphism")
)

// ConflictError reports a morphism name that was added twice with different
// endpoints. It unwraps to [ErrDuplicateMorphism].
type ConflictError struct {
	Existing  Morphism // The morphism already in the graph
	Requested Morphism // The conflicting definition
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	return fmt.Sprintf("morphism %q is %s -> %s, cannot redefine as %s -> %s",
		e.Existing.Name, e.Existing.Domain, e.Existing.Codomain,
		e.Requested.Domain, e.Requested.Codomain)
}

// Unwrap returns [ErrDuplicateMorphism].
func (e *ConflictError) Unwrap() error { return ErrDuplicateMorphism }

// Object is a node of the diagram.
//
// ID is the identity of the object. Label is its display name; an empty
// Label means the object is displayed by its ID. Two objects with equal
// labels are still distinct objects.
type Object struct {
	ID    string
	Label string
}

// DisplayLabel returns Label, or ID when no label is set.
func (o Object) DisplayLabel() string {
	if o.Label != "" {
		return o.Label
	}
	return o.ID
}

// Morphism is a named directed edge from Domain to Codomain.
type Morphism struct {
	Name     string
	Domain   string
	Codomain string
}

// String renders the morphism as "name: dom -> cod".
func (m Morphism) String() string {
	return fmt.Sprintf("%s: %s -> %s", m.Name, m.Domain, m.Codomain)
}

// Graph is a commutative diagram: a directed multigraph whose edges are
// identified by unique morphism names.
//
// Objects and morphisms enumerate in insertion order, which makes every
// algorithm built on top of Graph deterministic. Parallel morphisms (same
// domain and codomain, different names) are allowed; self-loops are not.
//
// The zero value is not usable - use [New] to create a Graph.
// Graph is not safe for concurrent mutation. Concurrent reads are safe.
type Graph struct {
	objects  map[string]*Object
	order    []string // object IDs in insertion order
	morphs   map[string]*Morphism
	names    []string            // morphism names in insertion order
	outgoing map[string][]string // object ID -> names of morphisms leaving it
	incoming map[string][]string // object ID -> names of morphisms entering it
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		objects:  make(map[string]*Object),
		morphs:   make(map[string]*Morphism),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
	}
}

// AddObject adds an object to the graph. It is idempotent: adding an object
// that already exists is not an error. A non-empty label replaces the
// object's current label; an empty label leaves it unchanged.
//
// Returns ErrEmptyID if id is empty.
func (g *Graph) AddObject(id, label string) error {
	if id == "" {
		return ErrEmptyID
	}
	if o, ok := g.objects[id]; ok {
		if label != "" {
			o.Label = label
		}
		return nil
	}
	g.objects[id] = &Object{ID: id, Label: label}
	g.order = append(g.order, id)
	return nil
}

// AddMorphism adds the morphism name: dom -> cod, creating missing objects.
//
// Adding a morphism that already exists with the same endpoints is a no-op.
// If the name is bound to different endpoints, AddMorphism returns a
// [*ConflictError] (which matches ErrDuplicateMorphism under errors.Is) and
// leaves the graph unchanged. Returns ErrEmptyName, ErrEmptyID or ErrSelfLoop
// for invalid arguments.
func (g *Graph) AddMorphism(name, dom, cod string) error {
	if name == "" {
		return ErrEmptyName
	}
	if dom == "" || cod == "" {
		return ErrEmptyID
	}
	if dom == cod {
		return fmt.Errorf("%s: %w", name, ErrSelfLoop)
	}
	req := Morphism{Name: name, Domain: dom, Codomain: cod}
	if m, ok := g.morphs[name]; ok {
		if m.Domain == dom && m.Codomain == cod {
			return nil
		}
		return &ConflictError{Existing: *m, Requested: req}
	}
	_ = g.AddObject(dom, "")
	_ = g.AddObject(cod, "")
	g.morphs[name] = &req
	g.names = append(g.names, name)
	g.outgoing[dom] = append(g.outgoing[dom], name)
	g.incoming[cod] = append(g.incoming[cod], name)
	return nil
}

// RemoveMorphism removes the named morphism. Its endpoints stay in the graph.
// Returns ErrUnknownMorphism if no morphism has that name.
func (g *Graph) RemoveMorphism(name string) error {
	m, ok := g.morphs[name]
	if !ok {
		return ErrUnknownMorphism
	}
	delete(g.morphs, name)
	g.names = deleteString(g.names, name)
	g.outgoing[m.Domain] = deleteString(g.outgoing[m.Domain], name)
	g.incoming[m.Codomain] = deleteString(g.incoming[m.Codomain], name)
	return nil
}

// RemoveObject removes an object together with every incident morphism.
// Returns ErrUnknownObject if the object does not exist.
func (g *Graph) RemoveObject(id string) error {
	if _, ok := g.objects[id]; !ok {
		return ErrUnknownObject
	}
	for _, name := range slices.Clone(g.outgoing[id]) {
		_ = g.RemoveMorphism(name)
	}
	for _, name := range slices.Clone(g.incoming[id]) {
		_ = g.RemoveMorphism(name)
	}
	delete(g.objects, id)
	delete(g.outgoing, id)
	delete(g.incoming, id)
	g.order = deleteString(g.order, id)
	return nil
}

// SetLabel sets the display label of an existing object. An empty label
// resets the object to display its ID. Returns ErrUnknownObject if the
// object does not exist.
func (g *Graph) SetLabel(id, label string) error {
	o, ok := g.objects[id]
	if !ok {
		return ErrUnknownObject
	}
	o.Label = label
	return nil
}

// Label returns the display label of an object: its label if set, otherwise
// its ID. Unknown objects yield their ID unchanged.
func (g *Graph) Label(id string) string {
	if o, ok := g.objects[id]; ok {
		return o.DisplayLabel()
	}
	return id
}

// HasObject reports whether the object exists.
func (g *Graph) HasObject(id string) bool {
	_, ok := g.objects[id]
	return ok
}

// Object returns a copy of the object with the given ID and true, or the
// zero Object and false if not found.
func (g *Graph) Object(id string) (Object, bool) {
	if o, ok := g.objects[id]; ok {
		return *o, true
	}
	return Object{}, false
}

// Morphism returns a copy of the named morphism and true, or the zero
// Morphism and false if not found.
func (g *Graph) Morphism(name string) (Morphism, bool) {
	if m, ok := g.morphs[name]; ok {
		return *m, true
	}
	return Morphism{}, false
}

// Objects returns copies of all objects in insertion order.
func (g *Graph) Objects() []Object {
	out := make([]Object, len(g.order))
	for i, id := range g.order {
		out[i] = *g.objects[id]
	}
	return out
}

// ObjectIDs returns all object IDs in insertion order.
// The returned slice is a copy and may be modified.
func (g *Graph) ObjectIDs() []string { return slices.Clone(g.order) }

// Morphisms returns copies of all morphisms in insertion order.
func (g *Graph) Morphisms() []Morphism {
	out := make([]Morphism, len(g.names))
	for i, name := range g.names {
		out[i] = *g.morphs[name]
	}
	return out
}

// ObjectCount returns the number of objects in the graph.
func (g *Graph) ObjectCount() int { return len(g.order) }

// MorphismCount returns the number of morphisms in the graph.
func (g *Graph) MorphismCount() int { return len(g.names) }

// Out returns the morphisms leaving id, in insertion order.
func (g *Graph) Out(id string) []Morphism { return g.collect(g.outgoing[id]) }

// In returns the morphisms entering id, in insertion order.
func (g *Graph) In(id string) []Morphism { return g.collect(g.incoming[id]) }

// OutDegree returns the number of morphisms leaving id, counting parallel
// morphisms separately. Returns 0 if the object doesn't exist.
func (g *Graph) OutDegree(id string) int { return len(g.outgoing[id]) }

// InDegree returns the number of morphisms entering id, counting parallel
// morphisms separately. Returns 0 if the object doesn't exist.
func (g *Graph) InDegree(id string) int { return len(g.incoming[id]) }

// Successors returns the distinct codomains of morphisms leaving id, in the
// order their first morphism was added.
func (g *Graph) Successors(id string) []string {
	var out []string
	for _, name := range g.outgoing[id] {
		if c := g.morphs[name].Codomain; !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	return out
}

// Predecessors returns the distinct domains of morphisms entering id, in the
// order their first morphism was added.
func (g *Graph) Predecessors(id string) []string {
	var out []string
	for _, name := range g.incoming[id] {
		if d := g.morphs[name].Domain; !slices.Contains(out, d) {
			out = append(out, d)
		}
	}
	return out
}

// Between returns every morphism dom -> cod in insertion order. More than
// one result means the diagram has parallel morphisms.
func (g *Graph) Between(dom, cod string) []Morphism {
	var out []Morphism
	for _, name := range g.outgoing[dom] {
		if m := g.morphs[name]; m.Codomain == cod {
			out = append(out, *m)
		}
	}
	return out
}

// Sources returns the IDs of objects with no incoming morphisms, in
// insertion order.
func (g *Graph) Sources() []string {
	var out []string
	for _, id := range g.order {
		if len(g.incoming[id]) == 0 {
			out = append(out, id)
		}
	}
	return out
}

// Sinks returns the IDs of objects with no outgoing morphisms, in insertion
// order.
func (g *Graph) Sinks() []string {
	var out []string
	for _, id := range g.order {
		if len(g.outgoing[id]) == 0 {
			out = append(out, id)
		}
	}
	return out
}

// Clone returns a deep copy of the graph.
func (g *Graph) Clone() *Graph {
	c := New()
	for _, o := range g.Objects() {
		_ = c.AddObject(o.ID, o.Label)
	}
	for _, m := range g.Morphisms() {
		_ = c.AddMorphism(m.Name, m.Domain, m.Codomain)
	}
	return c
}

// Reverse returns a new graph with every morphism flipped. Object labels and
// insertion order are preserved.
func (g *Graph) Reverse() *Graph {
	r := New()
	for _, o := range g.Objects() {
		_ = r.AddObject(o.ID, o.Label)
	}
	for _, m := range g.Morphisms() {
		_ = r.AddMorphism(m.Name, m.Codomain, m.Domain)
	}
	return r
}

// Subgraph returns the subgraph induced by ids: the listed objects that exist
// in g, and every morphism whose endpoints are both listed. Object order
// follows g, not ids.
func (g *Graph) Subgraph(ids []string) *Graph {
	keep := make(map[string]bool, len(ids))
	for _, id := range ids {
		keep[id] = true
	}
	s := New()
	for _, o := range g.Objects() {
		if keep[o.ID] {
			_ = s.AddObject(o.ID, o.Label)
		}
	}
	for _, m := range g.Morphisms() {
		if keep[m.Domain] && keep[m.Codomain] {
			_ = s.AddMorphism(m.Name, m.Domain, m.Codomain)
		}
	}
	return s
}

// Components returns the weakly connected components of the graph as lists
// of object IDs. Components are ordered by their first object in insertion
// order, and IDs within a component follow insertion order too.
func (g *Graph) Components() [][]string {
	comp := make(map[string]int, len(g.order))
	var count int
	for _, start := range g.order {
		if _, seen := comp[start]; seen {
			continue
		}
		comp[start] = count
		stack := []string{start}
		for len(stack) > 0 {
			id := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, n := range g.neighbors(id) {
				if _, seen := comp[n]; !seen {
					comp[n] = count
					stack = append(stack, n)
				}
			}
		}
		count++
	}
	out := make([][]string, count)
	for _, id := range g.order {
		out[comp[id]] = append(out[comp[id]], id)
	}
	return out
}

func (g *Graph) neighbors(id string) []string {
	var out []string
	for _, name := range g.outgoing[id] {
		out = append(out, g.morphs[name].Codomain)
	}
	for _, name := range g.incoming[id] {
		out = append(out, g.morphs[name].Domain)
	}
	return out
}

func (g *Graph) collect(names []string) []Morphism {
	if len(names) == 0 {
		return nil
	}
	out := make([]Morphism, len(names))
	for i, name := range names {
		out[i] = *g.morphs[name]
	}
	return out
}

func deleteString(s []string, v string) []string {
	if i := slices.Index(s, v); i >= 0 {
		return slices.Delete(s, i, i+1)
	}
	return s
}
