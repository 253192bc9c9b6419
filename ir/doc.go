// Package ir provides the in-memory representation of catalog documents.
//
// # Overview
//
// A catalog document is a tree of Node values. The tree is a recursive
// tagged union: the Type field says which of the payload fields carry the
// value. Documents decode from JSON or YAML into nodes, are compared and
// merged as nodes, and encode back out as nodes.
//
// # Node Structure
//
// Nodes represent:
//
//   - Atomic values: null, boolean, number, string
//   - Arrays: ordered lists, treated as atomic units by comparison
//   - Objects: key-value containers with their document key order intact
//
// For ObjectType nodes, Keys[i] names the value at Values[i], so there
// are always as many keys as values. Key order is the order keys appeared
// in the source document; comparison never depends on it, rendering sorts
// where it needs to.
//
// # Numbers
//
// Number values are placed under:
//
//   - Int64: if the literal is a 64-bit signed integer
//   - Float64: if it is representable as a 64-bit IEEE float
//   - Number: the raw literal as a string fallback otherwise
//
// Equality between numbers is numeric, not representational: 2 and 2.0
// are equal.
//
// # Creating Nodes
//
// Use constructor functions:
//
//	node := ir.FromString("hello")
//	num := ir.FromInt(42)
//	obj := ir.FromMap(map[string]*ir.Node{
//	    "key": ir.FromString("value"),
//	})
//
// # Comparison, Counting and Hashing
//
// Equal implements the canonical deep equality the comparison engine
// classifies with. CountKeys and CountKeysWithin implement key counting
// with arrays opaque; CountKeysWithin bounds the work for quota gates.
// Hash returns a structural hash consistent with Equal within a process.
//
// # Thread Safety
//
// Nodes are not thread-safe. Clone a tree before sharing it across
// goroutines, or synchronize access yourself.
package ir
