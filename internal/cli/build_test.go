package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/matzehuels/obst/pkg/dataset"
	errs "github.com/matzehuels/obst/pkg/errors"
	"github.com/matzehuels/obst/pkg/graph"
	"github.com/matzehuels/obst/pkg/obst"
	"github.com/matzehuels/obst/pkg/pipeline"
)

func TestParseCell(t *testing.T) {
	tests := []struct {
		in      string
		want    []int
		wantErr bool
	}{
		{"0,2", []int{0, 2}, false},
		{" 3 , 4 ", []int{3, 4}, false},
		{"1", nil, true},
		{"1,2,3", nil, true},
		{"a,b", nil, true},
		{"-1,2", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseCell(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseCell(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("parseCell(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsResultDocument(t *testing.T) {
	dir := t.TempDir()
	resultPath := filepath.Join(dir, "words.result.json")
	if err := graph.WriteDocumentFile(obst.Build(dataset.Default()), resultPath); err != nil {
		t.Fatal(err)
	}
	datasetPath := filepath.Join(dir, "words.json")
	if err := os.WriteFile(datasetPath, []byte(`[{"key": "a", "frequency": 1}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	objectPath := filepath.Join(dir, "object.json")
	if err := os.WriteFile(objectPath, []byte(`{"entries": [{"key": "a", "frequency": 1}]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		path string
		want bool
	}{
		{resultPath, true},
		{datasetPath, false},
		{objectPath, false},
		{filepath.Join(dir, "words.toml"), false},
		{filepath.Join(dir, "missing.json"), false},
	}

	for _, tt := range tests {
		t.Run(filepath.Base(tt.path), func(t *testing.T) {
			if got := isResultDocument(tt.path); got != tt.want {
				t.Errorf("isResultDocument(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestResolveResult(t *testing.T) {
	ctx := context.Background()
	c := New(io.Discard, LogInfo)
	runner := pipeline.NewRunner(nil, nil, c.Logger)
	dir := t.TempDir()

	resultPath := filepath.Join(dir, "words.result.json")
	if err := graph.WriteDocumentFile(obst.Build(dataset.Default()), resultPath); err != nil {
		t.Fatal(err)
	}
	csvPath := filepath.Join(dir, "abc.csv")
	if err := os.WriteFile(csvPath, []byte("key,frequency\nb,2\na,1\nc,4\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		path     string
		wantCost float64
		wantBase string
	}{
		{"sample fallback", "", 257, "sample"},
		{"result document", resultPath, 257, filepath.Join(dir, "words")},
		{"dataset file", csvPath, 11, filepath.Join(dir, "abc")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, base, _, err := c.resolveResult(ctx, runner, tt.path, pipeline.Options{})
			if err != nil {
				t.Fatalf("resolveResult() error: %v", err)
			}
			if res.TotalCost != tt.wantCost {
				t.Errorf("TotalCost = %v, want %v", res.TotalCost, tt.wantCost)
			}
			if base != tt.wantBase {
				t.Errorf("base = %q, want %q", base, tt.wantBase)
			}
		})
	}
}

func TestRunBuildExplainOutOfRange(t *testing.T) {
	c := New(io.Discard, LogInfo)
	opts := pipeline.Options{Entries: dataset.Default()}

	err := c.runBuild(context.Background(), opts, source{name: "sample"}, buildView{explain: []int{3, 12}, noCache: true})
	if !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("runBuild() error = %v, want INVALID_INPUT", err)
	}
}

func TestRunBuildWritesResult(t *testing.T) {
	c := New(io.Discard, LogInfo)
	path := filepath.Join(t.TempDir(), "out.result.json")
	opts := pipeline.Options{Entries: []obst.Entry{{Key: "B", Frequency: 2}, {Key: "A", Frequency: 1}, {Key: "C", Frequency: 4}}}

	err := c.runBuild(context.Background(), opts, source{name: "arguments"}, buildView{explain: []int{0, 2}, output: path, noCache: true})
	if err != nil {
		t.Fatalf("runBuild() error: %v", err)
	}

	res, err := graph.ReadDocumentFile(path)
	if err != nil {
		t.Fatalf("read result: %v", err)
	}
	if res.TotalCost != 11 || res.Tree.Key != "C" {
		t.Errorf("result = cost %v root %q, want cost 11 root C", res.TotalCost, res.Tree.Key)
	}
}

func TestRunBuildEmptyDataset(t *testing.T) {
	c := New(io.Discard, LogInfo)
	opts := pipeline.Options{Entries: []obst.Entry{{Key: " ", Frequency: 3}, {Key: "x", Frequency: 0}}}

	if err := c.runBuild(context.Background(), opts, source{name: "arguments"}, buildView{noCache: true}); err != nil {
		t.Errorf("runBuild() on an empty dataset should print a notice, got error %v", err)
	}
}
