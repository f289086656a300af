package dataset

import (
	"math"
	"os"
	"path/filepath"
	"slices"
	"testing"

	errs "github.com/matzehuels/obst/pkg/errors"
	"github.com/matzehuels/obst/pkg/obst"
)

func TestDefault(t *testing.T) {
	d := Default()
	if len(d) != 9 {
		t.Fatalf("len(Default()) = %d, want 9", len(d))
	}
	if d[0] != (obst.Entry{Key: "lot", Frequency: 5}) {
		t.Errorf("Default()[0] = %v", d[0])
	}

	res := obst.Build(d)
	if res.TotalCost != 257 {
		t.Errorf("TotalCost = %v, want 257", res.TotalCost)
	}
	if res.Tree.Key != "eat" {
		t.Errorf("root = %q, want eat", res.Tree.Key)
	}
}

func TestFilter(t *testing.T) {
	in := []obst.Entry{
		{Key: "a", Frequency: 1},
		{Key: "", Frequency: 3},
		{Key: "  ", Frequency: 3},
		{Key: "b", Frequency: 0},
		{Key: "c", Frequency: -2},
		{Key: "d", Frequency: math.NaN()},
		{Key: " e ", Frequency: 2},
	}

	got, dropped := Filter(in)
	if dropped != 5 {
		t.Errorf("dropped = %d, want 5", dropped)
	}
	if want := []string{"a", " e "}; !slices.Equal(Keys(got), want) {
		t.Errorf("kept = %q, want %q", Keys(got), want)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		in      []obst.Entry
		opts    Options
		wantErr errs.Code
	}{
		{
			name: "valid",
			in:   []obst.Entry{{Key: "a", Frequency: 1}, {Key: "b", Frequency: 2}},
		},
		{
			name: "empty allowed",
		},
		{
			name:    "empty required",
			opts:    Options{RequireEntries: true},
			wantErr: errs.ErrCodeEmptyDataset,
		},
		{
			name:    "duplicate",
			in:      []obst.Entry{{Key: "a", Frequency: 1}, {Key: "a", Frequency: 2}},
			wantErr: errs.ErrCodeDuplicateKey,
		},
		{
			name: "duplicate allowed",
			in:   []obst.Entry{{Key: "a", Frequency: 1}, {Key: "a", Frequency: 2}},
			opts: Options{AllowDuplicates: true},
		},
		{
			name: "case differs",
			in:   []obst.Entry{{Key: "a", Frequency: 1}, {Key: "A", Frequency: 2}},
		},
		{
			name:    "infinite",
			in:      []obst.Entry{{Key: "a", Frequency: math.Inf(1)}},
			wantErr: errs.ErrCodeInvalidFrequency,
		},
		{
			name:    "costs overflow",
			in:      []obst.Entry{{Key: "a", Frequency: 1e308}, {Key: "b", Frequency: 1e308}},
			wantErr: errs.ErrCodeInvalidFrequency,
		},
		{
			name:    "product overflows",
			in:      []obst.Entry{{Key: "a", Frequency: 1e308}, {Key: "b", Frequency: 1}},
			wantErr: errs.ErrCodeInvalidFrequency,
		},
		{
			name: "large but bounded",
			in:   []obst.Entry{{Key: "a", Frequency: 1e307}, {Key: "b", Frequency: 1e307}},
		},
		{
			name:    "control character",
			in:      []obst.Entry{{Key: "a\nb", Frequency: 1}},
			wantErr: errs.ErrCodeInvalidKey,
		},
		{
			name:    "too many",
			in:      []obst.Entry{{Key: "a", Frequency: 1}, {Key: "b", Frequency: 1}, {Key: "c", Frequency: 1}},
			opts:    Options{MaxEntries: 2},
			wantErr: errs.ErrCodeTooManyEntries,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.in, tt.opts)
			if got := errs.GetCode(err); got != tt.wantErr {
				t.Errorf("Validate() code = %q, want %q (err %v)", got, tt.wantErr, err)
			}
		})
	}
}

func TestPrepare(t *testing.T) {
	in := []obst.Entry{{Key: "x", Frequency: 5}, {Key: "y", Frequency: 0}}

	got, dropped, err := Prepare(in, Options{})
	if err != nil {
		t.Fatalf("Prepare() error: %v", err)
	}
	if dropped != 1 || len(got) != 1 || got[0].Key != "x" {
		t.Errorf("Prepare() = %v, %d", got, dropped)
	}

	_, _, err = Prepare([]obst.Entry{{Key: "y", Frequency: 0}}, Options{RequireEntries: true})
	if !errs.Is(err, errs.ErrCodeEmptyDataset) {
		t.Errorf("Prepare() error = %v, want %s", err, errs.ErrCodeEmptyDataset)
	}
}

func TestParseTOML(t *testing.T) {
	data := []byte(`
[[entry]]
key = "eat"
frequency = 15

[[entry]]
key = "a"
frequency = 17.5
`)
	got, err := ParseTOML(data)
	if err != nil {
		t.Fatalf("ParseTOML() error: %v", err)
	}
	want := []obst.Entry{{Key: "eat", Frequency: 15}, {Key: "a", Frequency: 17.5}}
	if !slices.Equal(got, want) {
		t.Errorf("ParseTOML() = %v, want %v", got, want)
	}

	if _, err := ParseTOML([]byte("[[entry]\n")); !errs.Is(err, errs.ErrCodeInvalidFormat) {
		t.Errorf("ParseTOML(bad) error = %v, want %s", err, errs.ErrCodeInvalidFormat)
	}
}

func TestParseJSON(t *testing.T) {
	want := []obst.Entry{{Key: "eat", Frequency: 15}, {Key: "of", Frequency: 7}}

	tests := []struct {
		name string
		in   string
	}{
		{"array", `[{"key":"eat","frequency":15},{"key":"of","frequency":7}]`},
		{"object", `{"entries":[{"key":"eat","frequency":15},{"key":"of","frequency":7}]}`},
		{"leading space", "\n  [{\"key\":\"eat\",\"frequency\":15},{\"key\":\"of\",\"frequency\":7}]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseJSON([]byte(tt.in))
			if err != nil {
				t.Fatalf("ParseJSON() error: %v", err)
			}
			if !slices.Equal(got, want) {
				t.Errorf("ParseJSON() = %v, want %v", got, want)
			}
		})
	}

	if _, err := ParseJSON([]byte(`[{"key":1}]`)); !errs.Is(err, errs.ErrCodeInvalidFormat) {
		t.Errorf("ParseJSON(bad) error = %v", err)
	}
}

func TestParseCSV(t *testing.T) {
	data := []byte("key,frequency\n# comment\neat,15\n\n\"x,y\", 2.5\n")

	got, err := ParseCSV(data)
	if err != nil {
		t.Fatalf("ParseCSV() error: %v", err)
	}
	want := []obst.Entry{{Key: "eat", Frequency: 15}, {Key: "x,y", Frequency: 2.5}}
	if !slices.Equal(got, want) {
		t.Errorf("ParseCSV() = %v, want %v", got, want)
	}

	for _, bad := range []string{"eat\n", "eat,many\n", "a,1,2\n"} {
		if _, err := ParseCSV([]byte(bad)); !errs.Is(err, errs.ErrCodeInvalidFormat) {
			t.Errorf("ParseCSV(%q) error = %v, want %s", bad, err, errs.ErrCodeInvalidFormat)
		}
	}
}

func TestParseInline(t *testing.T) {
	got, err := ParseInline([]string{"eat=15", "a=b=2", " sp =0.5"})
	if err != nil {
		t.Fatalf("ParseInline() error: %v", err)
	}
	want := []obst.Entry{{Key: "eat", Frequency: 15}, {Key: "a=b", Frequency: 2}, {Key: " sp ", Frequency: 0.5}}
	if !slices.Equal(got, want) {
		t.Errorf("ParseInline() = %v, want %v", got, want)
	}

	for _, bad := range []string{"eat", "eat=", "eat=x"} {
		if _, err := ParseInline([]string{bad}); !errs.Is(err, errs.ErrCodeInvalidFormat) {
			t.Errorf("ParseInline(%q) error = %v", bad, err)
		}
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	tests := []struct {
		name    string
		path    string
		want    int
		wantErr errs.Code
	}{
		{"toml", write("d.toml", "[[entry]]\nkey = \"a\"\nfrequency = 1\n"), 1, ""},
		{"json", write("d.json", `[{"key":"a","frequency":1},{"key":"b","frequency":2}]`), 2, ""},
		{"csv", write("d.CSV", "a,1\nb,2\nc,3\n"), 3, ""},
		{"unknown extension", write("d.yaml", "a: 1"), 0, errs.ErrCodeInvalidFormat},
		{"missing", filepath.Join(dir, "none.toml"), 0, errs.ErrCodeFileNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadFile(tt.path)
			if code := errs.GetCode(err); code != tt.wantErr {
				t.Fatalf("ReadFile() code = %q, want %q (err %v)", code, tt.wantErr, err)
			}
			if len(got) != tt.want {
				t.Errorf("ReadFile() len = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestWriteRoundTrip(t *testing.T) {
	for _, format := range Formats {
		t.Run(format, func(t *testing.T) {
			data, err := Marshal(Default(), format)
			if err != nil {
				t.Fatalf("Marshal() error: %v", err)
			}
			got, err := Parse(data, format)
			if err != nil {
				t.Fatalf("Parse() error: %v", err)
			}
			if !slices.Equal(got, Default()) {
				t.Errorf("round trip = %v", got)
			}
		})
	}

	if _, err := Marshal(nil, "yaml"); !errs.Is(err, errs.ErrCodeInvalidFormat) {
		t.Errorf("Marshal(yaml) error = %v", err)
	}
}
