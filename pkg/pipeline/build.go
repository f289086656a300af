package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/obst/pkg/dataset"
	"github.com/matzehuels/obst/pkg/observability"
	"github.com/matzehuels/obst/pkg/obst"
)

// Build filters and validates opts.Entries and computes the optimal tree.
// It returns the result and the number of entries dropped by filtering.
func Build(ctx context.Context, opts Options) (*obst.Result, int, error) {
	if err := opts.ValidateForBuild(); err != nil {
		return nil, 0, err
	}
	entries, dropped, err := dataset.Prepare(opts.Entries, opts.DatasetOptions())
	if err != nil {
		return nil, dropped, err
	}
	res, err := build(ctx, entries, opts)
	return res, dropped, err
}

// build runs the builder on prepared entries.
func build(ctx context.Context, entries []obst.Entry, opts Options) (*obst.Result, error) {
	buildOpts, err := opts.BuildOptions()
	if err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, len(entries))
	start := time.Now()

	res := obst.Build(entries, buildOpts...)

	hooks.OnBuildComplete(ctx, len(entries), res.TotalCost, time.Since(start), nil)
	return res, nil
}
