// Package obst constructs optimal binary search trees by dynamic programming.
//
// # Overview
//
// Given a set of keys and their access frequencies, an optimal BST minimizes
// the total weighted search cost Σ frequency × depth, where the root sits at
// depth 1. [Build] sorts the entries, fills the interval cost and root tables
// and materializes the tree described by the root table:
//
//	res := obst.Build([]obst.Entry{
//	    {Key: "B", Frequency: 2},
//	    {Key: "A", Frequency: 1},
//	    {Key: "C", Frequency: 4},
//	})
//	res.TotalCost        // 11
//	res.Tree.Key         // "C"
//	res.Root.At(0, 1)    // 1 (B roots the interval [A, B])
//
// # Recurrence
//
// For every interval [i, j] of the sorted key sequence:
//
//	cost[i][i] = freq[i]
//	cost[i][j] = min over r in [i, j] of cost[i][r-1] + cost[r+1][j] + Σ freq[i..j]
//
// where an empty interval costs 0. Candidates are scanned with r ascending and
// only a strictly smaller cost replaces the current best, so the smallest root
// index wins ties. This makes the root table, and therefore the tree shape,
// fully deterministic.
//
// # Ordering
//
// Keys are ordered with a Unicode collator (root locale by default) so that
// "a" < "and" < "ball" < "I" the way a human reader expects. Use
// [WithLocale] to pick another tailoring or [WithByteOrder] for plain byte
// comparison. Duplicate keys are kept as distinct, adjacent indices in input
// order; rejecting them is the caller's job.
//
// # Tables
//
// [Matrix] stores the n×n tables in a flat row-major buffer. Only cells with
// i ≤ j are meaningful; [Matrix.Defined] is the guard renderers should use to
// decide whether to print a placeholder.
//
// Build is a pure function: it performs no I/O, holds no shared state and
// runs in Θ(n³) time and Θ(n²) space.
package obst
