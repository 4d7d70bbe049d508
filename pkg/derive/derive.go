package derive

import (
	"fmt"
	"slices"

	"github.com/matzehuels/commute/pkg/diagram"
	"github.com/matzehuels/commute/pkg/equation"
	"github.com/matzehuels/commute/pkg/errors"
)

// DefaultMaxDepth bounds the length of a traversal path when
// [Options.MaxDepth] is zero.
const DefaultMaxDepth = 4096

// Options configures equation derivation.
type Options struct {
	// MaxDepth is the longest directed path the traversal follows before
	// giving up with ErrCodeLimitExceeded. Zero means DefaultMaxDepth.
	MaxDepth int
}

// Result holds the derived equations and counters describing how they were
// found.
type Result struct {
	// Equations lists the derived lines in emission order, without
	// syntactic duplicates.
	Equations []equation.Equation

	// Pairs is the number of (branch, merge) pairs with at least one
	// recorded path.
	Pairs int

	// Links is the number of lines emitted for chains no branch/merge pair
	// explains.
	Links int
}

// Lines renders every equation.
func (r *Result) Lines() []string {
	out := make([]string, len(r.Equations))
	for i, eq := range r.Equations {
		out[i] = eq.String()
	}
	return out
}

// String renders one equation per line.
func (r *Result) String() string {
	var s equation.Set
	for _, eq := range r.Equations {
		s.Add(eq)
	}
	return s.String()
}

// Text derives the equations of g with default options and renders them one
// per line.
func Text(g *diagram.Graph) (string, error) {
	r, err := Equations(g, Options{})
	if err != nil {
		return "", err
	}
	return r.String(), nil
}

// Equations derives a minimal set of equations from which
// reconstruct.FromText recovers a diagram equivalent to g.
//
// g is not modified, so a Graph can be derived from any number of times.
func Equations(g *diagram.Graph, opts Options) (*Result, error) {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	d := newDeriver(g, opts)
	if err := d.traverse(); err != nil {
		return nil, err
	}
	d.emitPaths()
	d.emitLinks()
	d.emitStragglers()
	return &Result{
		Equations: d.out.Lines(),
		Pairs:     d.pairs,
		Links:     d.links,
	}, nil
}

// edge is a skeleton edge: an ordered object pair.
type edge struct{ from, to string }

// pair identifies the (branch, merge) pair a path belongs to.
type pair struct{ branch, merge string }

// mark is a branch or merge object seen on the current path, with its index
// in that path.
type mark struct {
	id  string
	pos int
}

type path []string

// concat returns a new path holding p followed by tail.
func (p path) concat(tail ...string) path {
	return slices.Concat(p, tail)
}

// routes maps target objects to paths, remembering insertion order.
type routes struct {
	order []string
	paths map[string][]path
}

func (r *routes) add(to string, p path) {
	if r.paths == nil {
		r.paths = make(map[string][]path)
	}
	if _, ok := r.paths[to]; !ok {
		r.order = append(r.order, to)
	}
	r.paths[to] = append(r.paths[to], slices.Clone(p))
}

func (r *routes) has(to string) bool {
	_, ok := r.paths[to]
	return ok
}

// descendants maps merge objects reachable downstream of a merge object to
// the path leading there, remembering insertion order.
type descendants struct {
	order []string
	paths map[string]path
}

func newDescendants() *descendants {
	return &descendants{paths: make(map[string]path)}
}

func (d *descendants) set(to string, p path) {
	if _, ok := d.paths[to]; !ok {
		d.order = append(d.order, to)
	}
	d.paths[to] = slices.Clone(p)
}

func (d *descendants) has(to string) bool {
	_, ok := d.paths[to]
	return ok
}

type deriver struct {
	g    *diagram.Graph
	opts Options

	// Skeleton: the first morphism of every object pair.
	objects []string
	adj     map[string][]string
	names   map[edge]string
	indeg   map[string]int
	outdeg  map[string]int
	forced  map[string]bool

	// Per-run traversal state.
	found   []string // branch objects in order of their first recorded path
	paths   map[string]*routes
	visited map[string]map[string]bool // object -> traversal roots that reached it
	below   map[string]*descendants

	out      equation.Set
	tags     map[edge]map[pair]bool
	deferred []pair
	pairs    int
	links    int
}

func newDeriver(g *diagram.Graph, opts Options) *deriver {
	d := &deriver{
		g:       g,
		opts:    opts,
		objects: g.ObjectIDs(),
		adj:     make(map[string][]string),
		names:   make(map[edge]string),
		indeg:   make(map[string]int),
		outdeg:  make(map[string]int),
		forced:  make(map[string]bool),
		paths:   make(map[string]*routes),
		visited: make(map[string]map[string]bool),
		below:   make(map[string]*descendants),
		tags:    make(map[edge]map[pair]bool),
	}
	for _, u := range d.objects {
		for _, v := range g.Successors(u) {
			ms := g.Between(u, v)
			d.names[edge{u, v}] = ms[0].Name
			d.adj[u] = append(d.adj[u], v)
			d.outdeg[u]++
			d.indeg[v]++
			if len(ms) > 1 {
				eq := make(equation.Equation, len(ms))
				for i, m := range ms {
					eq[i] = equation.Composite{m.Name}
				}
				d.out.Add(eq)
			}
		}
	}
	return d
}

func (d *deriver) isBranch(id string) bool {
	return d.forced[id] || d.outdeg[id] > 1 || d.indeg[id] == 0
}

func (d *deriver) isMerge(id string) bool {
	return d.indeg[id] > 1 || d.outdeg[id] == 0
}

func (d *deriver) record(branch, merge string, p path) {
	r, ok := d.paths[branch]
	if !ok {
		r = &routes{}
		d.paths[branch] = r
		d.found = append(d.found, branch)
	}
	r.add(merge, p)
}

func (d *deriver) recorded(branch, merge string) bool {
	r, ok := d.paths[branch]
	return ok && r.has(merge)
}

func (d *deriver) markVisited(id, root string) {
	v, ok := d.visited[id]
	if !ok {
		v = make(map[string]bool)
		d.visited[id] = v
	}
	v[root] = true
}

// traverse runs the depth-first search from every branch object, sources
// first, and then from any object no branch reaches.
func (d *deriver) traverse() error {
	var starts []string
	for _, id := range d.objects {
		if d.isBranch(id) {
			starts = append(starts, id)
		}
	}
	slices.SortStableFunc(starts, func(a, b string) int {
		return d.indeg[a] - d.indeg[b]
	})
	for _, id := range starts {
		if _, seen := d.visited[id]; seen {
			continue
		}
		if err := d.search(id, nil, nil, nil); err != nil {
			return err
		}
	}
	for _, id := range d.objects {
		if _, seen := d.visited[id]; seen {
			continue
		}
		d.forced[id] = true
		if err := d.search(id, nil, nil, nil); err != nil {
			return err
		}
	}
	return nil
}

func (d *deriver) search(cur string, prefix path, branches, merges []mark) error {
	if len(prefix) >= d.opts.MaxDepth {
		return errors.New(errors.ErrCodeLimitExceeded,
			"path from %s exceeds maximum depth %d", prefix[0], d.opts.MaxDepth)
	}
	pos := len(prefix)
	p := prefix.concat(cur)
	root := p[0]
	d.markVisited(cur, root)

	if d.isMerge(cur) {
		d.below[cur] = newDescendants()
		for _, b := range branches {
			d.record(b.id, cur, p[b.pos:])
		}
		for _, m := range merges {
			d.descendantsOf(m.id).set(cur, p[m.pos:])
		}
		merges = append(slices.Clone(merges), mark{cur, pos})
	}
	if d.isBranch(cur) {
		branches = append(slices.Clone(branches), mark{cur, pos})
	}

	for _, next := range d.adj[cur] {
		if _, seen := d.visited[next]; !seen {
			if err := d.search(next, p, branches, merges); err != nil {
				return err
			}
			continue
		}
		d.rejoin(p, next, branches, merges)
	}
	return nil
}

// rejoin handles a morphism from the end of p into an object an earlier
// traversal already expanded.
func (d *deriver) rejoin(p path, next string, branches, merges []mark) {
	root := p[0]

	for i := len(branches) - 1; i >= 0; i-- {
		b := branches[i]
		done := d.recorded(b.id, next)
		d.record(b.id, next, p[b.pos:].concat(next))
		if done {
			break
		}
	}

	if _, ok := d.below[next]; !ok {
		d.below[next] = newDescendants()
	}
	for _, m := range merges {
		if dm := d.descendantsOf(m.id); !dm.has(next) {
			dm.set(next, p[m.pos:].concat(next))
		}
	}

	ahead := d.below[next]
	for _, cod := range slices.Clone(ahead.order) {
		future := ahead.paths[cod]
		for _, m := range merges {
			if dm := d.descendantsOf(m.id); !dm.has(cod) {
				dm.set(cod, p[m.pos:].concat(future...))
			}
		}
		if !d.visited[next][root] {
			for _, b := range branches {
				done := d.recorded(b.id, cod)
				d.record(b.id, cod, p[b.pos:].concat(future...))
				if done {
					break
				}
			}
		}
		if _, ok := d.visited[cod]; !ok {
			panic(fmt.Sprintf("derive: descendant %s of %s was never visited", cod, next))
		}
		d.markVisited(cod, root)
	}
	d.markVisited(next, root)
}

func (d *deriver) descendantsOf(id string) *descendants {
	dm, ok := d.below[id]
	if !ok {
		panic(fmt.Sprintf("derive: merge object %s has no descendant table", id))
	}
	return dm
}

// composite renders the path codomain first.
func (d *deriver) composite(p path) equation.Composite {
	c := make(equation.Composite, 0, len(p)-1)
	for i := len(p) - 2; i >= 0; i-- {
		c = append(c, d.names[edge{p[i], p[i+1]}])
	}
	return c
}

func (d *deriver) tag(e edge, pr pair) {
	t, ok := d.tags[e]
	if !ok {
		t = make(map[pair]bool)
		d.tags[e] = t
	}
	t[pr] = true
}

// emitPaths emits one line per (branch, merge) pair joined by several
// distinct paths, and a self-equality for every closed loop.
func (d *deriver) emitPaths() {
	for _, b := range d.found {
		if !d.isBranch(b) {
			continue
		}
		r := d.paths[b]
		for _, m := range r.order {
			var distinct []path
			for _, p := range r.paths[m] {
				if !slices.ContainsFunc(distinct, func(q path) bool { return slices.Equal(p, q) }) {
					distinct = append(distinct, p)
				}
			}
			d.pairs++
			pr := pair{b, m}
			switch {
			case len(distinct) > 1:
				eq := make(equation.Equation, len(distinct))
				for i, p := range distinct {
					for j := 0; j+1 < len(p); j++ {
						d.tag(edge{p[j], p[j+1]}, pr)
					}
					eq[i] = d.composite(p)
				}
				d.out.Add(eq)
			case b == m:
				p := distinct[0]
				first := d.names[edge{p[0], p[1]}]
				d.out.Add(equation.Equation{append(equation.Composite{first}, d.composite(p)...)})
			default:
				d.deferred = append(d.deferred, pr)
			}
		}
	}
}

// emitLinks emits the runs of consecutive unexplained morphisms on every
// pair that has a single path, so reconstruction does not collapse them.
func (d *deriver) emitLinks() {
	for _, pr := range d.deferred {
		p := d.paths[pr.branch].paths[pr.merge][0]
		var runs [][]edge
		open := false
		prev := edge{p[0], p[1]}
		for i := 1; i+1 < len(p); i++ {
			cur := edge{p[i], p[i+1]}
			if disjoint(d.tags[prev], d.tags[cur]) {
				if open {
					runs[len(runs)-1] = append(runs[len(runs)-1], cur)
				} else {
					runs = append(runs, []edge{prev, cur})
					d.tag(prev, pr)
				}
				d.tag(cur, pr)
				open = true
			} else {
				open = false
			}
			prev = cur
		}
		for _, run := range runs {
			c := make(equation.Composite, 0, len(run))
			for i := len(run) - 1; i >= 0; i-- {
				c = append(c, d.names[run[i]])
			}
			if d.out.Add(equation.Equation{c}) {
				d.links++
			}
		}
	}
}

// emitStragglers emits a bare line for every morphism no other line
// mentions, such as the only morphism of a two-object component.
func (d *deriver) emitStragglers() {
	used := make(map[string]bool)
	for _, eq := range d.out.Lines() {
		for _, name := range eq.Morphisms() {
			used[name] = true
		}
	}
	for _, m := range d.g.Morphisms() {
		if !used[m.Name] {
			d.out.Add(equation.Equation{{m.Name}})
		}
	}
}

func disjoint(a, b map[pair]bool) bool {
	for k := range a {
		if b[k] {
			return false
		}
	}
	return true
}
