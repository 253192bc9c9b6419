package api

import (
	"go.lsp.dev/jsonrpc2"
)

// Error codes in the JSON-RPC server-reserved range. Handlers wrap these
// with fmt.Errorf("%w: ...", Err...) so the code survives to the wire
// while the message carries detail.
const (
	// CodeInvalidSide reports a side other than "left" or "right".
	CodeInvalidSide jsonrpc2.Code = -32010

	// CodeNoDocument reports an operation that needs a document on a
	// side that has none.
	CodeNoDocument jsonrpc2.Code = -32011

	// CodeBadDocument reports a document that failed to parse or that
	// violates catalog constraints.
	CodeBadDocument jsonrpc2.Code = -32012

	// CodeTooManyKeys reports a document over the key quota.
	CodeTooManyKeys jsonrpc2.Code = -32013

	// CodeBadFilter reports a filter expression that failed to compile
	// or did not evaluate to a boolean.
	CodeBadFilter jsonrpc2.Code = -32014
)

var (
	ErrInvalidSide = jsonrpc2.NewError(CodeInvalidSide, "invalid side")
	ErrNoDocument  = jsonrpc2.NewError(CodeNoDocument, "no document")
	ErrBadDocument = jsonrpc2.NewError(CodeBadDocument, "bad document")
	ErrTooManyKeys = jsonrpc2.NewError(CodeTooManyKeys, "too many keys")
	ErrBadFilter   = jsonrpc2.NewError(CodeBadFilter, "bad filter")
)
