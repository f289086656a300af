package obst

import (
	"slices"
	"testing"

	"golang.org/x/text/language"
)

func TestNodeNil(t *testing.T) {
	var n *Node
	if n.Size() != 0 || n.Height() != 0 || n.WeightedCost() != 0 {
		t.Errorf("nil node: Size=%d Height=%d WeightedCost=%v", n.Size(), n.Height(), n.WeightedCost())
	}
	if got := n.InOrder(); len(got) != 0 {
		t.Errorf("InOrder() = %v, want empty", got)
	}
	if n.IsLeaf() {
		t.Error("IsLeaf() = true, want false")
	}
}

func TestNodeWalk(t *testing.T) {
	res := Build(sampleEntries())

	var order []string
	var depths []int
	res.Tree.Walk(func(n *Node, depth int) bool {
		order = append(order, n.Key)
		depths = append(depths, depth)
		return true
	})

	wantOrder := []string{"eat", "and", "a", "ball", "I", "friends", "meat", "lot", "of"}
	wantDepths := []int{1, 2, 3, 3, 2, 3, 3, 4, 4}
	if !slices.Equal(order, wantOrder) {
		t.Errorf("pre-order = %v, want %v", order, wantOrder)
	}
	if !slices.Equal(depths, wantDepths) {
		t.Errorf("depths = %v, want %v", depths, wantDepths)
	}

	var visited []string
	res.Tree.Walk(func(n *Node, depth int) bool {
		visited = append(visited, n.Key)
		return n.Key != "I"
	})
	if slices.Contains(visited, "meat") {
		t.Errorf("Walk() descended into a pruned subtree: %v", visited)
	}
}

func TestMaterializeIndices(t *testing.T) {
	res := Build(sampleEntries())
	res.Tree.Walk(func(n *Node, _ int) bool {
		if res.Keys[n.Index] != n.Key {
			t.Errorf("node %s has Index %d pointing at %s", n.Key, n.Index, res.Keys[n.Index])
		}
		return true
	})
	if Materialize(nil, nil, nil) != nil {
		t.Error("Materialize(nil) != nil")
	}
}

func TestCandidates(t *testing.T) {
	res := Build([]Entry{{"B", 2}, {"A", 1}, {"C", 4}})

	got, ok := res.Candidates(0, 2)
	if !ok {
		t.Fatal("Candidates(0, 2) not defined")
	}
	want := []Candidate{
		{Root: 0, Key: "A", Left: 0, Right: 8, Sum: 7, Total: 15},
		{Root: 1, Key: "B", Left: 1, Right: 4, Sum: 7, Total: 12},
		{Root: 2, Key: "C", Left: 4, Right: 0, Sum: 7, Total: 11, Chosen: true},
	}
	if !slices.Equal(got, want) {
		t.Errorf("Candidates(0, 2) =\n%+v\nwant\n%+v", got, want)
	}

	single, ok := res.Candidates(1, 1)
	if !ok || len(single) != 1 || single[0].Total != 2 || !single[0].Chosen {
		t.Errorf("Candidates(1, 1) = %+v, %v", single, ok)
	}

	if _, ok := res.Candidates(2, 1); ok {
		t.Error("Candidates(2, 1) defined, want undefined")
	}
}

func TestSearch(t *testing.T) {
	res := Build(sampleEntries())

	tests := []struct {
		key   string
		path  []string
		found bool
	}{
		{"eat", []string{"eat"}, true},
		{"lot", []string{"eat", "I", "meat", "lot"}, true},
		{"ball", []string{"eat", "and", "ball"}, true},
		{"zebra", []string{"eat", "I", "meat", "of"}, false},
		{"b", []string{"eat", "and", "ball"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			path, found := res.Search(tt.key)
			keys := make([]string, len(path))
			for i, n := range path {
				keys[i] = n.Key
			}
			if found != tt.found {
				t.Errorf("found = %v, want %v", found, tt.found)
			}
			if !slices.Equal(keys, tt.path) {
				t.Errorf("path = %v, want %v", keys, tt.path)
			}
		})
	}
}

func TestSortEntries(t *testing.T) {
	in := []Entry{{"b", 1}, {"B", 2}, {"a", 3}, {"A", 4}}

	got := SortEntries(in, WithByteOrder())
	if keys := entryKeys(got); !slices.Equal(keys, []string{"A", "B", "a", "b"}) {
		t.Errorf("byte order = %v", keys)
	}

	got = SortEntries(in)
	if keys := entryKeys(got); !slices.Equal(keys, []string{"a", "A", "b", "B"}) {
		t.Errorf("collated order = %v", keys)
	}

	got = SortEntries([]Entry{{"ö", 1}, {"z", 1}, {"o", 1}}, WithLocale(language.Swedish))
	if keys := entryKeys(got); !slices.Equal(keys, []string{"o", "z", "ö"}) {
		t.Errorf("swedish order = %v", keys)
	}
}

func TestUseOrdering(t *testing.T) {
	res := Build([]Entry{{"ö", 1}, {"z", 1}, {"o", 1}}, WithLocale(language.Swedish))
	if res.Tree.Key != "z" {
		t.Fatalf("root = %q, want z", res.Tree.Key)
	}

	decoded := *res
	decoded.compare = nil
	if _, found := decoded.Search("ö"); found {
		t.Error("root collation should miss ö in a swedish tree")
	}

	decoded.UseOrdering(WithLocale(language.Swedish))
	path, found := decoded.Search("ö")
	if !found || len(path) != 2 {
		t.Errorf("Search(ö) = %d nodes, found %v", len(path), found)
	}
}

func entryKeys(entries []Entry) []string {
	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
	}
	return keys
}
