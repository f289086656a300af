package graph

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/obst/pkg/obst"
)

func sample() *obst.Result {
	return obst.Build([]obst.Entry{
		{Key: "B", Frequency: 2},
		{Key: "A", Frequency: 1},
		{Key: "C", Frequency: 4},
	})
}

func TestFromResult(t *testing.T) {
	doc := FromResult(sample())

	if !slices.Equal(doc.Keys, []string{"A", "B", "C"}) {
		t.Errorf("Keys = %v", doc.Keys)
	}
	if doc.TotalCost != 11 {
		t.Errorf("TotalCost = %v, want 11", doc.TotalCost)
	}
	for i := range doc.Cost {
		for j := range doc.Cost[i] {
			if got := doc.Cost[i][j] == nil; got != (i > j) {
				t.Errorf("Cost[%d][%d] nil = %v, want %v", i, j, got, i > j)
			}
			if got := doc.Root[i][j] == nil; got != (i > j) {
				t.Errorf("Root[%d][%d] nil = %v, want %v", i, j, got, i > j)
			}
		}
	}
	if *doc.Cost[0][2] != 11 || *doc.Root[0][2] != 2 {
		t.Errorf("cell (0, 2) = %v/%v, want 11/2", *doc.Cost[0][2], *doc.Root[0][2])
	}
	if doc.Tree == nil || doc.Tree.Key != "C" || doc.Tree.Left == nil || doc.Tree.Left.Key != "B" {
		t.Errorf("Tree = %+v", doc.Tree)
	}
}

func TestFromResultEmpty(t *testing.T) {
	data, err := MarshalDocument(obst.Build(nil))
	if err != nil {
		t.Fatalf("MarshalDocument: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if raw["tree"] != nil {
		t.Errorf("tree = %v, want null", raw["tree"])
	}
	if keys, ok := raw["keys"].([]any); !ok || len(keys) != 0 {
		t.Errorf("keys = %v, want []", raw["keys"])
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	res := sample()

	var buf bytes.Buffer
	if err := WriteDocument(res, &buf); err != nil {
		t.Fatalf("WriteDocument: %v", err)
	}
	back, err := ReadDocument(&buf)
	if err != nil {
		t.Fatalf("ReadDocument: %v", err)
	}

	if !back.Cost.Equal(res.Cost) || !back.Root.Equal(res.Root) {
		t.Error("tables differ after round trip")
	}
	if !slices.Equal(back.Tree.InOrder(), res.Tree.InOrder()) {
		t.Errorf("InOrder() = %v, want %v", back.Tree.InOrder(), res.Tree.InOrder())
	}
	if back.TotalCost != res.TotalCost {
		t.Errorf("TotalCost = %v, want %v", back.TotalCost, res.TotalCost)
	}
	if _, found := back.Search("A"); !found {
		t.Error("Search(A) on decoded result: not found")
	}
}

func TestToResultInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"FrequencyCount", `{"keys":["a"],"frequencies":[],"cost":[[1]],"root":[[0]]}`},
		{"RowCount", `{"keys":["a","b"],"frequencies":[1,2],"cost":[[1,3]],"root":[[0,0]]}`},
		{"RaggedRow", `{"keys":["a","b"],"frequencies":[1,2],"cost":[[1,4],[null]],"root":[[0,1],[null,1]]}`},
		{"MissingCell", `{"keys":["a","b"],"frequencies":[1,2],"cost":[[1,null],[null,2]],"root":[[0,1],[null,1]]}`},
		{"RootOutOfRange", `{"keys":["a","b"],"frequencies":[1,2],"cost":[[1,4],[null,2]],"root":[[0,5],[null,1]]}`},
		{"TreeMismatch", `{"keys":["a","b"],"frequencies":[1,2],"cost":[[1,4],[null,2]],"root":[[0,1],[null,1]],"tree":{"key":"a","frequency":1,"index":0}}`},
		{"Malformed", `{keys}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadDocument(strings.NewReader(tt.input)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestDocumentFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.json")
	if err := WriteDocumentFile(sample(), path); err != nil {
		t.Fatalf("WriteDocumentFile: %v", err)
	}
	res, err := ReadDocumentFile(path)
	if err != nil {
		t.Fatalf("ReadDocumentFile: %v", err)
	}
	if res.Len() != 3 {
		t.Errorf("Len() = %d, want 3", res.Len())
	}

	if _, err := ReadDocumentFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestUnmarshalLayout(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantViz string
		wantErr bool
	}{
		{"DefaultsToTree", `{"width":1000,"height":500,"nodes":[{"id":"k0","label":"a"}]}`, VizTypeTree, false},
		{"Nodelink", `{"viz_type":"nodelink","dot":"digraph{}"}`, VizTypeNodelink, false},
		{"NodelinkWithoutDOT", `{"viz_type":"nodelink"}`, "", true},
		{"UnknownViz", `{"viz_type":"tower"}`, "", true},
		{"DanglingEdge", `{"nodes":[{"id":"k0"}],"edges":[{"from":"k0","to":"k9"}]}`, "", true},
		{"Malformed", `not json`, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := UnmarshalLayout([]byte(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("UnmarshalLayout: %v", err)
			}
			if l.VizType != tt.wantViz {
				t.Errorf("VizType = %q, want %q", l.VizType, tt.wantViz)
			}
		})
	}
}

func TestLayoutNode(t *testing.T) {
	l := Layout{Nodes: []Node{{ID: "k0", Label: "a"}, {ID: "k1", Label: "b"}}}
	if n, ok := l.Node("k1"); !ok || n.Label != "b" {
		t.Errorf("Node(k1) = %+v, %v", n, ok)
	}
	if _, ok := l.Node("k2"); ok {
		t.Error("Node(k2) found, want missing")
	}
}

func TestReadLayoutFileNotFound(t *testing.T) {
	if _, err := ReadLayoutFile(filepath.Join(os.TempDir(), "obst-missing-layout.json")); err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestNodeID(t *testing.T) {
	if got := NodeID(3); got != "k3" {
		t.Errorf("NodeID(3) = %q, want k3", got)
	}
}
