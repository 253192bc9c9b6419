// Package compare classifies the key paths of a document pair.
//
// # Comparison Units
//
// Compare walks two documents in lock-step. A key whose value is an
// object on both sides is a shared branch, not a unit: it produces no
// record, only its descendants do. Everything else a key can hold is
// atomic. Arrays in particular are one unit, compared element-wise for
// equality but never descended into.
//
// A key present on one side only is a single unit regardless of its
// depth, so a missing subtree of fifty keys is one record with status
// MissingLeft or MissingRight, not fifty.
//
// # Determinism
//
// Record order follows the left document's key order, then right-only
// keys, at every level. Comparing the same pair twice yields equal
// lists.
//
// # Derived Artifacts
//
// Summarize folds records into per-status counts. NewFilter compiles an
// expression selecting a record subset. JSONPatch turns a record list
// into an RFC 6902 document that rewrites left into right.
package compare
