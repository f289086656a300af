package obst

import (
	"math"
	"slices"
	"testing"
)

func TestBuildThreeKeys(t *testing.T) {
	res := Build([]Entry{{"B", 2}, {"A", 1}, {"C", 4}})

	if got, want := res.Keys, []string{"A", "B", "C"}; !slices.Equal(got, want) {
		t.Fatalf("Keys = %v, want %v", got, want)
	}
	if got, want := res.Frequencies, []float64{1, 2, 4}; !slices.Equal(got, want) {
		t.Fatalf("Frequencies = %v, want %v", got, want)
	}

	cells := []struct {
		i, j    int
		cost    float64
		rootIdx int
	}{
		{0, 0, 1, 0},
		{1, 1, 2, 1},
		{2, 2, 4, 2},
		{0, 1, 4, 1},
		{1, 2, 8, 2},
		{0, 2, 11, 2},
	}
	for _, c := range cells {
		if got := res.Cost.At(c.i, c.j); got != c.cost {
			t.Errorf("Cost.At(%d, %d) = %v, want %v", c.i, c.j, got, c.cost)
		}
		if got := res.Root.At(c.i, c.j); got != c.rootIdx {
			t.Errorf("Root.At(%d, %d) = %d, want %d", c.i, c.j, got, c.rootIdx)
		}
	}

	if res.TotalCost != 11 {
		t.Errorf("TotalCost = %v, want 11", res.TotalCost)
	}

	root := res.Tree
	if root == nil || root.Key != "C" {
		t.Fatalf("root = %+v, want C", root)
	}
	if root.Right != nil {
		t.Errorf("C.Right = %v, want nil", root.Right.Key)
	}
	if root.Left == nil || root.Left.Key != "B" {
		t.Fatalf("C.Left = %+v, want B", root.Left)
	}
	if root.Left.Left == nil || root.Left.Left.Key != "A" {
		t.Fatalf("B.Left = %+v, want A", root.Left.Left)
	}
	if root.Left.Right != nil {
		t.Errorf("B.Right = %v, want nil", root.Left.Right.Key)
	}
}

func TestBuildEmpty(t *testing.T) {
	for _, entries := range [][]Entry{nil, {}} {
		res := Build(entries)
		if res.Tree != nil {
			t.Errorf("Tree = %+v, want nil", res.Tree)
		}
		if res.TotalCost != 0 {
			t.Errorf("TotalCost = %v, want 0", res.TotalCost)
		}
		if res.Cost.Size() != 0 || res.Root.Size() != 0 {
			t.Errorf("table sizes = %d, %d, want 0", res.Cost.Size(), res.Root.Size())
		}
		if res.Len() != 0 {
			t.Errorf("Len() = %d, want 0", res.Len())
		}
	}
}

func TestBuildSingle(t *testing.T) {
	res := Build([]Entry{{"x", 5}})
	if res.TotalCost != 5 {
		t.Errorf("TotalCost = %v, want 5", res.TotalCost)
	}
	if !res.Tree.IsLeaf() || res.Tree.Key != "x" || res.Tree.Frequency != 5 {
		t.Errorf("Tree = %+v, want single node x(5)", res.Tree)
	}
	if res.Root.At(0, 0) != 0 {
		t.Errorf("Root.At(0, 0) = %d, want 0", res.Root.At(0, 0))
	}
}

func TestBuildDefaultDataset(t *testing.T) {
	res := Build(sampleEntries())

	wantKeys := []string{"a", "and", "ball", "eat", "friends", "I", "lot", "meat", "of"}
	if !slices.Equal(res.Keys, wantKeys) {
		t.Fatalf("Keys = %v, want %v", res.Keys, wantKeys)
	}
	if res.TotalCost != 257 {
		t.Errorf("TotalCost = %v, want 257", res.TotalCost)
	}
	if res.Tree.Key != "eat" {
		t.Errorf("root = %s, want eat", res.Tree.Key)
	}
	if got := res.Tree.Height(); got != 4 {
		t.Errorf("Height() = %d, want 4", got)
	}

	wantRow := []int{0, 0, 1, 1, 1, 3, 3, 3, 3}
	if got := res.Root.Rows()[0]; !slices.Equal(got, wantRow) {
		t.Errorf("Root row 0 = %v, want %v", got, wantRow)
	}
}

func TestBuildTieBreakSmallestRoot(t *testing.T) {
	// Equal frequencies make both roots of a pair cost the same.
	res := Build([]Entry{{"x", 3}, {"y", 3}})
	if got := res.Root.At(0, 1); got != 0 {
		t.Errorf("Root.At(0, 1) = %d, want 0", got)
	}
	if got := res.Tree.Key; got != "x" {
		t.Errorf("root = %s, want x", got)
	}

	res = Build([]Entry{{"a", 1}, {"b", 1}, {"c", 1}})
	if got := res.Root.At(0, 2); got != 1 {
		t.Errorf("Root.At(0, 2) = %d, want 1", got)
	}
}

func TestBuildDuplicateKeys(t *testing.T) {
	res := Build([]Entry{{"k", 1}, {"a", 2}, {"k", 3}})
	if got, want := res.Keys, []string{"a", "k", "k"}; !slices.Equal(got, want) {
		t.Fatalf("Keys = %v, want %v", got, want)
	}
	if got, want := res.Frequencies, []float64{2, 1, 3}; !slices.Equal(got, want) {
		t.Errorf("Frequencies = %v, want %v (stable order)", got, want)
	}
	if got := res.Tree.Size(); got != 3 {
		t.Errorf("Size() = %d, want 3", got)
	}
}

func TestBuildNaN(t *testing.T) {
	res := Build([]Entry{{"a", math.NaN()}, {"b", 1}})
	if !math.IsNaN(res.TotalCost) {
		t.Errorf("TotalCost = %v, want NaN", res.TotalCost)
	}
	if got := res.Root.At(0, 1); got != 0 {
		t.Errorf("Root.At(0, 1) = %d, want 0", got)
	}
}

func TestBuildNegativeFrequency(t *testing.T) {
	res := Build([]Entry{{"a", -2}, {"b", 1}, {"c", 3}})

	cells := []struct {
		i, j int
		cost float64
		root int
	}{
		{0, 0, -2, 0},
		{1, 1, 1, 1},
		{2, 2, 3, 2},
		{0, 1, -3, 1},
		{1, 2, 5, 2},
		{0, 2, -1, 2},
	}
	for _, c := range cells {
		if got := res.Cost.At(c.i, c.j); got != c.cost {
			t.Errorf("Cost.At(%d, %d) = %v, want %v", c.i, c.j, got, c.cost)
		}
		if got := res.Root.At(c.i, c.j); got != c.root {
			t.Errorf("Root.At(%d, %d) = %d, want %d", c.i, c.j, got, c.root)
		}
	}

	if res.TotalCost != -1 {
		t.Errorf("TotalCost = %v, want -1", res.TotalCost)
	}
	if got := res.Tree.Size(); got != 3 {
		t.Errorf("Tree.Size() = %d, want 3", got)
	}
	if got, want := res.Tree.InOrder(), []string{"a", "b", "c"}; !slices.Equal(got, want) {
		t.Errorf("InOrder() = %v, want %v", got, want)
	}
	if got := res.Tree.WeightedCost(); got != res.TotalCost {
		t.Errorf("WeightedCost() = %v, want %v", got, res.TotalCost)
	}
}

func TestBuildDoesNotMutateInput(t *testing.T) {
	in := []Entry{{"c", 1}, {"b", 2}, {"a", 3}}
	orig := slices.Clone(in)
	Build(in)
	if !slices.Equal(in, orig) {
		t.Errorf("input = %v, want %v", in, orig)
	}
}

func TestBuildProperties(t *testing.T) {
	inputs := map[string][]Entry{
		"sample":    sampleEntries(),
		"ascending": {{"a", 1}, {"b", 2}, {"c", 3}, {"d", 4}, {"e", 5}, {"f", 6}},
		"skewed":    {{"m", 100}, {"n", 1}, {"o", 1}, {"p", 1}, {"q", 1}},
		"fractions": {{"k1", 0.25}, {"k2", 0.5}, {"k3", 0.125}, {"k4", 0.125}},
		"flat":      {{"u", 2}, {"v", 2}, {"w", 2}, {"x", 2}, {"y", 2}, {"z", 2}, {"zz", 2}},
	}

	for name, entries := range inputs {
		t.Run(name, func(t *testing.T) {
			res := Build(entries)
			n := res.Len()

			if got := res.Tree.InOrder(); !slices.Equal(got, res.Keys) {
				t.Errorf("InOrder() = %v, want %v", got, res.Keys)
			}
			if got := res.Tree.Size(); got != n {
				t.Errorf("Size() = %d, want %d", got, n)
			}
			if res.TotalCost != res.Cost.At(0, n-1) {
				t.Errorf("TotalCost = %v, want Cost.At(0, %d) = %v", res.TotalCost, n-1, res.Cost.At(0, n-1))
			}
			if got := res.Tree.WeightedCost(); math.Abs(got-res.TotalCost) > 1e-9 {
				t.Errorf("WeightedCost() = %v, want %v", got, res.TotalCost)
			}

			for i := 0; i < n; i++ {
				if res.Cost.At(i, i) != res.Frequencies[i] {
					t.Errorf("Cost.At(%d, %d) = %v, want %v", i, i, res.Cost.At(i, i), res.Frequencies[i])
				}
				maxFreq := 0.0
				for j := i; j < n; j++ {
					maxFreq = max(maxFreq, res.Frequencies[j])
					c := res.Cost.At(i, j)
					if c < maxFreq {
						t.Errorf("Cost.At(%d, %d) = %v < max freq %v", i, j, c, maxFreq)
					}
					if j+1 < n && c > res.Cost.At(i, j+1) {
						t.Errorf("Cost.At(%d, %d) = %v > Cost.At(%d, %d)", i, j, c, i, j+1)
					}
					if i+1 <= j && res.Cost.At(i+1, j) > c {
						t.Errorf("Cost.At(%d, %d) > Cost.At(%d, %d) = %v", i+1, j, i, j, c)
					}
					if r := res.Root.At(i, j); r < i || r > j {
						t.Errorf("Root.At(%d, %d) = %d out of range", i, j, r)
					}
				}
			}

			again := Build(entries)
			if !again.Cost.Equal(res.Cost) || !again.Root.Equal(res.Root) {
				t.Error("Build is not deterministic")
			}
		})
	}
}

func TestBuildOptimalAgainstBruteForce(t *testing.T) {
	freqs := []float64{3, 1, 4, 1, 5, 9}
	entries := make([]Entry, len(freqs))
	for i, f := range freqs {
		entries[i] = Entry{Key: string(rune('a' + i)), Frequency: f}
	}
	res := Build(entries)

	if want := bruteForce(freqs, 0, len(freqs)-1); res.TotalCost != want {
		t.Errorf("TotalCost = %v, want %v", res.TotalCost, want)
	}
}

// bruteForce tries every root recursively, charging each level once.
func bruteForce(freqs []float64, i, j int) float64 {
	if i > j {
		return 0
	}
	var sum float64
	for k := i; k <= j; k++ {
		sum += freqs[k]
	}
	best := math.Inf(1)
	for r := i; r <= j; r++ {
		best = min(best, bruteForce(freqs, i, r-1)+bruteForce(freqs, r+1, j)+sum)
	}
	return best
}

func sampleEntries() []Entry {
	return []Entry{
		{"lot", 5}, {"of", 7}, {"I", 10}, {"ball", 11}, {"eat", 15},
		{"a", 17}, {"and", 12}, {"friends", 12}, {"meat", 10},
	}
}
