// Package encode renders IR nodes as catalog documents.
//
// # Usage
//
//	// Pretty JSON, keys sorted
//	err := encode.Encode(node, w)
//
//	// Compact JSON for wire use
//	err := encode.Encode(node, w, encode.EncodeCompact(true))
//
//	// YAML
//	err := encode.Encode(node, w, encode.EncodeFormat(format.YAMLFormat))
//
// Encoded output parses back to a node canonically equal to the input.
//
// # Related Packages
//
//   - github.com/locforge/catdiff/ir - IR representation
//   - github.com/locforge/catdiff/parse - Parse documents to IR
package encode
