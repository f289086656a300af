package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/obst/pkg/obst"
)

// =============================================================================
// Document Serialization API
// =============================================================================

// MarshalDocument converts a result to pretty-printed JSON bytes.
func MarshalDocument(res *obst.Result) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeDocumentTo(res, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteDocumentFile writes a result to a JSON file.
// The file is created with 0644 permissions.
func WriteDocumentFile(res *obst.Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeDocumentTo(res, f)
}

// WriteDocument writes a result as JSON to an io.Writer.
func WriteDocument(res *obst.Result, w io.Writer) error {
	return writeDocumentTo(res, w)
}

// ReadDocumentFile reads a JSON file and returns the decoded result.
func ReadDocumentFile(path string) (*obst.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readDocumentFrom(f)
}

// ReadDocument decodes a JSON document from an io.Reader into a result.
func ReadDocument(r io.Reader) (*obst.Result, error) {
	return readDocumentFrom(r)
}

// UnmarshalDocument deserializes JSON bytes to a Document without
// validating its tables.
func UnmarshalDocument(data []byte) (Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return Document{}, err
	}
	return d, nil
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeDocumentTo(res *obst.Result, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromResult(res)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readDocumentFrom(r io.Reader) (*obst.Result, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return ToResult(doc)
}
