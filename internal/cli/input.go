package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/obst/pkg/dataset"
	errs "github.com/matzehuels/obst/pkg/errors"
	"github.com/matzehuels/obst/pkg/obst"
)

// inputFlags selects where a command reads its entries from.
type inputFlags struct {
	file   string // dataset file, or "-" for stdin
	format string // dataset format; inferred from the file extension when empty
	sample bool   // use the built-in sample dataset
}

// register adds the input flags to cmd.
func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "input", "i", "", `dataset file (.toml, .json, .csv), or "-" for stdin`)
	cmd.Flags().StringVar(&f.format, "input-format", "", "dataset format: toml, json, csv (default: from extension; toml for stdin)")
	cmd.Flags().BoolVar(&f.sample, "sample", false, "use the built-in sample dataset")
}

// source describes where entries came from.
type source struct {
	name     string
	fallback bool // no input was given; the sample dataset was used
}

// entries reads the dataset named by the flags, or parses key=frequency
// arguments. With no input at all the sample dataset is returned.
func (f *inputFlags) entries(args []string, stdin io.Reader) ([]obst.Entry, source, error) {
	given := 0
	for _, set := range []bool{f.file != "", f.sample, len(args) > 0} {
		if set {
			given++
		}
	}
	if given > 1 {
		return nil, source{}, errs.New(errs.ErrCodeInvalidInput, "use only one of --input, --sample or key=frequency arguments")
	}

	switch {
	case f.sample:
		return dataset.Default(), source{name: "sample"}, nil
	case len(args) > 0:
		entries, err := dataset.ParseInline(args)
		return entries, source{name: "arguments"}, err
	case f.file == "-":
		format := f.format
		if format == "" {
			format = dataset.FormatTOML
		}
		entries, err := dataset.Read(stdin, format)
		return entries, source{name: "stdin"}, err
	case f.file != "" && f.format != "":
		entries, err := readWithFormat(f.file, f.format)
		return entries, source{name: f.file}, err
	case f.file != "":
		entries, err := dataset.ReadFile(f.file)
		return entries, source{name: f.file}, err
	default:
		return dataset.Default(), source{name: "sample", fallback: true}, nil
	}
}

// readWithFormat reads path with an explicit format, ignoring its extension.
func readWithFormat(path, format string) ([]obst.Entry, error) {
	if err := errs.ValidatePath(path); err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "dataset %s", path)
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return dataset.Read(file, format)
}

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty or "-", it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
