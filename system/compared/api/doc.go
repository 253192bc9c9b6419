// Package api provides session protocol types for the compared server.
//
// Defines JSON-RPC method names, request/response structures, and error
// codes for document, comparison, edit, and export operations.
//
// # Related Packages
//
//   - github.com/locforge/catdiff/system/compared/server - Server implementation
package api
