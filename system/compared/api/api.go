package api

import (
	"github.com/locforge/catdiff/compare"
	"github.com/locforge/catdiff/edits"
	"github.com/locforge/catdiff/ir"
	"github.com/locforge/catdiff/mergetree"
)

// Method names for the compared session protocol.
//
// Session protocol message shapes for JSON-RPC 2.0 communication.
// TCP connections use raw JSON framing, stdio uses Content-Length
// headers. Each connection owns one comparison session.
const (
	MethodDocumentLoad   = "document/load"
	MethodDocumentInfo   = "document/info"
	MethodCompareRecords = "compare/records"
	MethodCompareTree    = "compare/tree"
	MethodComparePatch   = "compare/patch"
	MethodEditRecord     = "edit/record"
	MethodEditList       = "edit/list"
	MethodEditClear      = "edit/clear"
	MethodExport         = "export"
	MethodSessionInfo    = "session/info"
)

// DocumentLoadRequest installs a catalog document on one side of the
// session. Loading a side discards that side's pending edits.
type DocumentLoadRequest struct {
	Side   string `json:"side"`             // "left" or "right"
	Name   string `json:"name,omitempty"`   // display name, e.g. a file basename
	Format string `json:"format,omitempty"` // "json" or "yaml", default "json"
	Data   string `json:"data"`             // document text in the given format

	// MaxKeys overrides the server's key quota for this document when > 0.
	MaxKeys int `json:"maxKeys,omitempty"`
}

// DocumentInfo describes an installed document.
type DocumentInfo struct {
	Side   string `json:"side"`
	Name   string `json:"name,omitempty"`
	Format string `json:"format"`
	Keys   int    `json:"keys"`

	// Pending is the number of collapsed pending edits on this side.
	Pending int `json:"pending"`
}

// DocumentInfoRequest requests info for one side, or both when Side is
// empty.
type DocumentInfoRequest struct {
	Side string `json:"side,omitempty"`
}

// DocumentInfoResponse lists the installed documents, left before right.
type DocumentInfoResponse struct {
	Documents []*DocumentInfo `json:"documents"`
}

// CompareRecordsRequest runs a comparison of the two current documents.
type CompareRecordsRequest struct {
	// Filter is an optional expression narrowing the records, with the
	// same environment as compare.NewFilter. The summary always covers
	// the unfiltered records.
	Filter string `json:"filter,omitempty"`
}

// CompareRecordsResponse carries comparison records and their summary.
type CompareRecordsResponse struct {
	Records []compare.Record `json:"records"`
	Summary compare.Summary  `json:"summary"`
}

// CompareTreeResponse carries the merged tree of both documents.
type CompareTreeResponse struct {
	Roots  []*mergetree.Node `json:"roots"`
	Leaves int               `json:"leaves"`
}

// ComparePatchResponse carries an RFC 6902 patch that transforms the
// left document into the right one.
type ComparePatchResponse struct {
	Patch *ir.Node `json:"patch"`
}

// EditRecordRequest records a pending edit on one side.
type EditRecordRequest struct {
	Side  string   `json:"side"`
	Path  string   `json:"path"`
	Value *ir.Node `json:"value"`

	// Kind is "add" or "update". When empty the server derives it from
	// whether the path already resolves in the side's current document.
	Kind string `json:"kind,omitempty"`
}

// EditRecordResponse acknowledges a recorded edit.
type EditRecordResponse struct {
	// Pending is the number of collapsed pending edits on the side
	// after recording.
	Pending int `json:"pending"`
}

// EditListRequest lists pending edits for a side, or both when Side is
// empty.
type EditListRequest struct {
	Side string `json:"side,omitempty"`
}

// EditListResponse carries pending edits in application order.
type EditListResponse struct {
	Edits []edits.Edit `json:"edits"`
}

// EditClearRequest discards pending edits for a side, or both when Side
// is empty.
type EditClearRequest struct {
	Side string `json:"side,omitempty"`
}

// ExportRequest renders a side's current document, pending edits
// applied.
type ExportRequest struct {
	Side    string `json:"side"`
	Format  string `json:"format,omitempty"` // "json" or "yaml"; document format when empty
	Compact bool   `json:"compact,omitempty"`

	// MergePatch returns an RFC 7386 merge patch from the loaded
	// document to its edited form instead of the document itself.
	MergePatch bool `json:"mergePatch,omitempty"`
}

// ExportResponse carries the rendered document or the merge patch.
type ExportResponse struct {
	Data  string   `json:"data,omitempty"`
	Patch *ir.Node `json:"patch,omitempty"`
}

// SessionInfoResponse describes the server and the session state.
type SessionInfoResponse struct {
	ServerID  string          `json:"serverId"`
	SessionID string          `json:"sessionId"`
	Version   string          `json:"version"`
	Documents []*DocumentInfo `json:"documents"`
}
