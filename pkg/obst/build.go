package obst

// Result holds everything [Build] computes for one input set.
//
// Keys and Frequencies are the sorted key sequence; their indices address
// the rows and columns of Cost and Root. Tree is nil when the input is empty.
type Result struct {
	Tree        *Node
	Cost        *Matrix[float64]
	Root        *Matrix[int]
	Keys        []string
	Frequencies []float64
	TotalCost   float64

	compare func(a, b string) int
}

// Len returns the number of keys in the result.
func (r *Result) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Keys)
}

// Entries returns the sorted entries the result was computed from.
func (r *Result) Entries() []Entry {
	out := make([]Entry, r.Len())
	for i := range out {
		out[i] = Entry{Key: r.Keys[i], Frequency: r.Frequencies[i]}
	}
	return out
}

// Build sorts entries by key and computes the optimal binary search tree.
//
// The function is total: an empty input yields an empty Result (nil tree,
// 0×0 tables, zero cost). Frequencies are used as given; filtering
// non-positive values is the caller's responsibility.
func Build(entries []Entry, opts ...Option) *Result {
	cmp := newOptions(opts).comparator()
	sorted := sortEntries(entries, cmp)

	keys := make([]string, len(sorted))
	freqs := make([]float64, len(sorted))
	for i, e := range sorted {
		keys[i] = e.Key
		freqs[i] = e.Frequency
	}

	cost, root := solve(freqs)

	res := &Result{
		Cost:        cost,
		Root:        root,
		Keys:        keys,
		Frequencies: freqs,
		compare:     cmp,
	}
	if n := len(keys); n > 0 {
		res.TotalCost = cost.At(0, n-1)
		res.Tree = Materialize(keys, freqs, root)
	}
	return res
}

// solve fills the cost and root tables for the sorted frequencies.
func solve(freqs []float64) (*Matrix[float64], *Matrix[int]) {
	n := len(freqs)
	cost := NewMatrix[float64](n)
	root := NewMatrix[int](n)

	for i := 0; i < n; i++ {
		cost.set(i, i, freqs[i])
		root.set(i, i, i)
	}

	for length := 2; length <= n; length++ {
		for i := 0; i+length <= n; i++ {
			j := i + length - 1
			sum := intervalSum(freqs, i, j)

			best, bestRoot := 0.0, i
			for r := i; r <= j; r++ {
				c := cost.At(i, r-1) + cost.At(r+1, j) + sum
				if r == i || c < best {
					best, bestRoot = c, r
				}
			}
			cost.set(i, j, best)
			root.set(i, j, bestRoot)
		}
	}
	return cost, root
}

// intervalSum adds freqs[i..j] left to right. Keep the order fixed: tie
// breaks depend on exact float results.
func intervalSum(freqs []float64, i, j int) float64 {
	var sum float64
	for k := i; k <= j; k++ {
		sum += freqs[k]
	}
	return sum
}
