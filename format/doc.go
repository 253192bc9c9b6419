// Package format names the serialization formats catdiff accepts.
//
// # Usage
//
//	f, err := format.ParseFormat("yaml")
//
//	// Pick a format from a file name
//	f, ok := format.DetectPath("en-US.json")
//
// Format values round-trip through text, so they can sit directly in
// configuration structs and command line options.
//
// # Related Packages
//
//   - github.com/locforge/catdiff/parse - Parse documents to IR
//   - github.com/locforge/catdiff/encode - Encode IR to documents
package format
