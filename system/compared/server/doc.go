// Package server provides the session server implementation for compared.
//
// Exposes comparison, edit, and export operations over JSON-RPC,
// one isolated engine session per connection.
//
// # Related Packages
//
//   - github.com/locforge/catdiff/system/compared/api - API types
//   - github.com/locforge/catdiff - Engine session
package server
