// Package configtree provides the value model for legacy configuration
// trees.
//
// A legacy config is a heterogeneous nested structure: scalars,
// sequences, ordered mappings, tuple values (a primary value paired with
// named companions, e.g. a font size and its line height), and deferred
// values computed against the resolved theme. The package provides deep
// merging, deep cloning, equality, dotted/bracketed path resolution, and
// deterministic JSON snapshots over that model.
//
// # Ordering
//
// Map preserves key insertion order. Merge results, resolution order and
// snapshots are therefore deterministic: processing the same tree twice
// produces identical output.
//
// # Merging
//
// Merge follows override semantics: values in the source override values
// in the destination. Mappings merge key-wise and recursively; all other
// kinds replace. A source value of an unexpected kind for its target
// never fails the merge; the leaf keeps the prior value.
package configtree
