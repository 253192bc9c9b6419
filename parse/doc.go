// Package parse parses catalog documents into IR nodes.
//
// # Usage
//
//	// Parse JSON (the default)
//	node, err := parse.Parse(data)
//	if err != nil {
//	    return err
//	}
//
//	// Parse YAML
//	node, err := parse.Parse(data, parse.ParseYAML())
//
// Object key order is preserved for both formats. Parse failures wrap
// ErrParse.
//
// # Related Packages
//
//   - github.com/locforge/catdiff/ir - IR representation
//   - github.com/locforge/catdiff/encode - Encode IR to text
package parse
