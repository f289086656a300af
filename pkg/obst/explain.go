package obst

// Candidate describes one possible root r for an interval [i, j].
type Candidate struct {
	Root   int     `json:"root"`
	Key    string  `json:"key"`
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Sum    float64 `json:"sum"`
	Total  float64 `json:"total"`
	Chosen bool    `json:"chosen"`
}

// Candidates lists every root considered for the interval [i, j] in scan
// order, marking the one recorded in the root table. It returns false when
// (i, j) is not a defined cell.
func (r *Result) Candidates(i, j int) ([]Candidate, bool) {
	if r == nil || !r.Cost.Defined(i, j) {
		return nil, false
	}
	sum := intervalSum(r.Frequencies, i, j)
	chosen := r.Root.At(i, j)

	out := make([]Candidate, 0, j-i+1)
	for k := i; k <= j; k++ {
		c := Candidate{
			Root:   k,
			Key:    r.Keys[k],
			Left:   r.Cost.At(i, k-1),
			Right:  r.Cost.At(k+1, j),
			Chosen: k == chosen,
		}
		if i == j {
			c.Sum, c.Total = r.Frequencies[i], r.Frequencies[i]
		} else {
			c.Sum = sum
			c.Total = c.Left + c.Right + sum
		}
		out = append(out, c)
	}
	return out, true
}

// UseOrdering sets the key ordering [Result.Search] compares with. Results
// decoded from a document need it when they were built with options.
func (r *Result) UseOrdering(opts ...Option) {
	r.compare = newOptions(opts).comparator()
}

// Search descends the tree comparing key with each node under the ordering
// the result was built with. It returns the visited nodes, root first; the
// last node is the match when found is true.
func (r *Result) Search(key string) (path []*Node, found bool) {
	if r == nil {
		return nil, false
	}
	cmp := r.compare
	if cmp == nil {
		cmp = newOptions(nil).comparator()
	}
	for n := r.Tree; n != nil; {
		path = append(path, n)
		switch c := cmp(key, n.Key); {
		case c == 0:
			return path, true
		case c < 0:
			n = n.Left
		default:
			n = n.Right
		}
	}
	return path, false
}
