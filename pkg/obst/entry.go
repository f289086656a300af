package obst

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Entry is one (key, frequency) input pair.
type Entry struct {
	Key       string  `json:"key" toml:"key"`
	Frequency float64 `json:"frequency" toml:"frequency"`
}

// Option configures [Build].
type Option func(*options)

type options struct {
	tag       language.Tag
	byteOrder bool
}

// WithLocale orders keys using the collation rules of tag.
func WithLocale(tag language.Tag) Option {
	return func(o *options) {
		o.tag = tag
		o.byteOrder = false
	}
}

// WithByteOrder orders keys by plain byte comparison.
func WithByteOrder() Option {
	return func(o *options) { o.byteOrder = true }
}

func newOptions(opts []Option) options {
	o := options{tag: language.Und}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// comparator returns the key ordering for one Build call. Collators keep
// internal buffers, so each call gets its own.
func (o options) comparator() func(a, b string) int {
	if o.byteOrder {
		return strings.Compare
	}
	c := collate.New(o.tag)
	return func(a, b string) int {
		if r := c.CompareString(a, b); r != 0 {
			return r
		}
		return strings.Compare(a, b)
	}
}

// SortEntries returns a copy of entries ordered by key. Entries with equal
// keys keep their input order.
func SortEntries(entries []Entry, opts ...Option) []Entry {
	return sortEntries(entries, newOptions(opts).comparator())
}

func sortEntries(entries []Entry, cmp func(a, b string) int) []Entry {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b Entry) int {
		return cmp(a.Key, b.Key)
	})
	return sorted
}
