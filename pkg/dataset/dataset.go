package dataset

import (
	"math"
	"strings"

	errs "github.com/matzehuels/obst/pkg/errors"
	"github.com/matzehuels/obst/pkg/obst"
)

// DefaultMaxEntries bounds dataset size for callers that set no limit of
// their own. The builder is cubic in the number of keys.
const DefaultMaxEntries = 2000

// Options controls [Validate] and [Prepare].
type Options struct {
	// AllowDuplicates keeps repeated keys as distinct entries.
	AllowDuplicates bool

	// RequireEntries rejects datasets that are empty after filtering.
	RequireEntries bool

	// MaxEntries rejects larger datasets. Zero means no limit.
	MaxEntries int
}

// Default returns the sample dataset: nine words with access frequencies.
func Default() []obst.Entry {
	return []obst.Entry{
		{Key: "lot", Frequency: 5},
		{Key: "of", Frequency: 7},
		{Key: "I", Frequency: 10},
		{Key: "ball", Frequency: 11},
		{Key: "eat", Frequency: 15},
		{Key: "a", Frequency: 17},
		{Key: "and", Frequency: 12},
		{Key: "friends", Frequency: 12},
		{Key: "meat", Frequency: 10},
	}
}

// Filter drops entries whose trimmed key is empty or whose frequency is not
// positive. NaN frequencies are dropped too. Kept keys are not trimmed.
// It returns the kept entries and the number dropped.
func Filter(entries []obst.Entry) ([]obst.Entry, int) {
	kept := make([]obst.Entry, 0, len(entries))
	for _, e := range entries {
		if strings.TrimSpace(e.Key) == "" || !(e.Frequency > 0) {
			continue
		}
		kept = append(kept, e)
	}
	return kept, len(entries) - len(kept)
}

// Validate checks filtered entries: every key must be valid, every
// frequency finite, and keys unique unless opts.AllowDuplicates is set.
// The frequency total times the entry count must be finite too; it bounds
// every cell of the cost table.
func Validate(entries []obst.Entry, opts Options) error {
	if opts.RequireEntries && len(entries) == 0 {
		return errs.New(errs.ErrCodeEmptyDataset, "dataset has no usable entries")
	}
	if opts.MaxEntries > 0 && len(entries) > opts.MaxEntries {
		return errs.New(errs.ErrCodeTooManyEntries, "dataset has %d entries (max %d)", len(entries), opts.MaxEntries)
	}

	seen := make(map[string]struct{}, len(entries))
	var total float64
	for _, e := range entries {
		if err := errs.ValidateKey(e.Key); err != nil {
			return err
		}
		if err := errs.ValidateFrequency(e.Key, e.Frequency); err != nil {
			return err
		}
		total += e.Frequency
		if opts.AllowDuplicates {
			continue
		}
		if _, dup := seen[e.Key]; dup {
			return errs.New(errs.ErrCodeDuplicateKey, "key %q appears more than once", e.Key)
		}
		seen[e.Key] = struct{}{}
	}
	if math.IsInf(total*float64(len(entries)), 0) {
		return errs.New(errs.ErrCodeInvalidFrequency, "frequencies are too large: tree costs would overflow")
	}
	return nil
}

// Prepare filters entries and validates the rest. It returns the kept
// entries and the number dropped by filtering.
func Prepare(entries []obst.Entry, opts Options) ([]obst.Entry, int, error) {
	kept, dropped := Filter(entries)
	if err := Validate(kept, opts); err != nil {
		return nil, dropped, err
	}
	return kept, dropped, nil
}

// Keys returns the keys of entries in input order.
func Keys(entries []obst.Entry) []string {
	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
	}
	return keys
}
