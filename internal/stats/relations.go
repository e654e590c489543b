package stats

// Relations is a weighted directed graph over command names. An edge a -> b
// counts how often a line whose command was b directly followed a line whose
// command was a in one history source.
type Relations struct {
	order []string
	edges map[string]*Counter[string]
}

func newRelations() *Relations {
	return &Relations{edges: make(map[string]*Counter[string])}
}

func (r *Relations) add(from, to string) {
	c, ok := r.edges[from]
	if !ok {
		c = NewCounter[string]()
		r.edges[from] = c
		r.order = append(r.order, from)
	}
	c.Inc(to)
}

// Sources returns every command with at least one outgoing edge, in the
// order they were first seen as a predecessor.
func (r *Relations) Sources() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Edge returns the weight of from -> to.
func (r *Relations) Edge(from, to string) int {
	if c, ok := r.edges[from]; ok {
		return c.Get(to)
	}
	return 0
}

// Successors returns the outgoing edges of name by descending weight, ties
// in first-seen order.
func (r *Relations) Successors(name string) []Count[string] {
	if c, ok := r.edges[name]; ok {
		return c.MostCommon(0)
	}
	return nil
}

// Total returns the summed weight of all outgoing edges of name.
func (r *Relations) Total(name string) int {
	if c, ok := r.edges[name]; ok {
		return c.Total()
	}
	return 0
}

// Len returns the number of commands with outgoing edges.
func (r *Relations) Len() int {
	return len(r.order)
}
