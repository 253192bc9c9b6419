// Package compared provides a catalog comparison daemon.
//
// compared hosts one comparison session per connection:
//
//   - Load left and right catalog documents
//   - Compare, merged tree, and RFC 6902 patch queries
//   - Pending edit recording with last-write-wins collapse
//   - Export of edited documents and RFC 7386 merge patches
//
// # Server
//
// Start the server with:
//
//	catdiff serve -addr localhost:9311
//
// Each TCP connection speaks raw JSON-RPC 2.0 and owns an isolated
// session; loading a document on one connection never affects another.
// Editor-style hosts can instead run the server over stdio with
// Content-Length framing:
//
//	catdiff serve -stdio
//
// # Related Packages
//
//   - [api] - Request/response types and method names
//   - [server] - TCP and stdio session server
package compared
