package dataset

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/obst/pkg/errors"
	"github.com/matzehuels/obst/pkg/obst"
)

// Supported dataset formats.
const (
	FormatTOML = "toml"
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// Formats lists the supported dataset formats.
var Formats = []string{FormatTOML, FormatJSON, FormatCSV}

// tomlFile is the on-disk TOML shape:
//
//	[[entry]]
//	key = "eat"
//	frequency = 15
type tomlFile struct {
	Entry []obst.Entry `toml:"entry"`
}

// jsonFile is the object form of a JSON dataset. A bare array is accepted too.
type jsonFile struct {
	Entries []obst.Entry `json:"entries"`
}

// FormatFromPath infers the dataset format from a file extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	case ".csv", ".txt":
		return FormatCSV, nil
	default:
		return "", errs.New(errs.ErrCodeInvalidFormat, "unknown dataset extension %q (want .toml, .json or .csv)", filepath.Ext(path))
	}
}

// ReadFile reads a dataset file, choosing the parser by extension.
// Entries are returned unfiltered.
func ReadFile(path string) ([]obst.Entry, error) {
	if err := errs.ValidatePath(path); err != nil {
		return nil, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "dataset %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(data, format)
}

// Read parses a dataset of the given format from r.
func Read(r io.Reader, format string) ([]obst.Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return Parse(data, format)
}

// Parse decodes dataset bytes of the given format.
func Parse(data []byte, format string) ([]obst.Entry, error) {
	switch format {
	case FormatTOML:
		return ParseTOML(data)
	case FormatJSON:
		return ParseJSON(data)
	case FormatCSV:
		return ParseCSV(data)
	default:
		return nil, errs.New(errs.ErrCodeInvalidFormat, "unsupported dataset format %q", format)
	}
}

// ParseTOML decodes [[entry]] tables.
func ParseTOML(data []byte) ([]obst.Entry, error) {
	var f tomlFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "parse TOML dataset")
	}
	return f.Entry, nil
}

// ParseJSON decodes either an array of {"key", "frequency"} objects or an
// object with an "entries" array.
func ParseJSON(data []byte) ([]obst.Entry, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var entries []obst.Entry
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "parse JSON dataset")
		}
		return entries, nil
	}

	var f jsonFile
	if err := json.Unmarshal(trimmed, &f); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "parse JSON dataset")
	}
	return f.Entries, nil
}

// ParseCSV decodes "key,frequency" records. Lines starting with '#' are
// comments. A first record whose second field is "frequency" is a header.
func ParseCSV(data []byte) ([]obst.Entry, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comment = '#'
	r.FieldsPerRecord = 2

	records, err := r.ReadAll()
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "parse CSV dataset")
	}
	if len(records) > 0 && strings.EqualFold(strings.TrimSpace(records[0][1]), "frequency") {
		records = records[1:]
	}

	entries := make([]obst.Entry, 0, len(records))
	for i, rec := range records {
		f, err := parseFrequency(rec[1])
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "record %d", i+1)
		}
		entries = append(entries, obst.Entry{Key: rec[0], Frequency: f})
	}
	return entries, nil
}

// ParseInline decodes "key=frequency" arguments. The last '=' separates the
// key from the frequency, so keys may contain '='.
func ParseInline(args []string) ([]obst.Entry, error) {
	entries := make([]obst.Entry, 0, len(args))
	for _, arg := range args {
		i := strings.LastIndexByte(arg, '=')
		if i < 0 {
			return nil, errs.New(errs.ErrCodeInvalidFormat, "entry %q: want key=frequency", arg)
		}
		f, err := parseFrequency(arg[i+1:])
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "entry %q", arg)
		}
		entries = append(entries, obst.Entry{Key: arg[:i], Frequency: f})
	}
	return entries, nil
}

func parseFrequency(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("frequency %q is not a number", s)
	}
	return f, nil
}

// Marshal encodes entries in the given format.
func Marshal(entries []obst.Entry, format string) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, entries, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes entries in the given format to w.
func Write(w io.Writer, entries []obst.Entry, format string) error {
	switch format {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(tomlFile{Entry: entries})
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if entries == nil {
			entries = []obst.Entry{}
		}
		return enc.Encode(entries)
	case FormatCSV:
		cw := csv.NewWriter(w)
		_ = cw.Write([]string{"key", "frequency"})
		for _, e := range entries {
			_ = cw.Write([]string{e.Key, strconv.FormatFloat(e.Frequency, 'f', -1, 64)})
		}
		cw.Flush()
		return cw.Error()
	default:
		return errs.New(errs.ErrCodeInvalidFormat, "unsupported dataset format %q", format)
	}
}
