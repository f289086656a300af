// Package dataset reads, filters and validates the (key, frequency) entries
// fed to the OBST builder.
//
// # Formats
//
// Datasets are read from TOML, JSON or CSV files, or from inline
// "key=frequency" arguments:
//
//	[[entry]]
//	key = "eat"
//	frequency = 15
//
//	[{"key": "eat", "frequency": 15}]
//
//	key,frequency
//	eat,15
//
// # Filtering and Validation
//
// [Filter] drops rows the builder should never see: blank keys and
// frequencies that are not positive. Keys are passed through untrimmed.
// [Validate] then rejects what cannot be silently dropped: infinite
// frequencies, malformed keys and, unless allowed, duplicate keys.
// [Prepare] runs both.
//
// The builder itself accepts any input; these checks belong to its callers.
package dataset
