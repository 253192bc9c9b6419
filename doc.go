// Package catdiff compares two hierarchical key-value documents and
// reconciles them into one browsable tree, layering pending edits over
// the originals.
//
// A Session holds at most one document per side, left and right.
// Comparison and tree reconciliation always read through any pending
// edits, so results reflect the documents as they would be after
// export.
package catdiff
