package edits

import (
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/locforge/catdiff/ir"
)

// MergePatch returns the RFC 7386 merge patch turning original into
// edited, the compact summary of what a side's pending edits did.
func MergePatch(original, edited *ir.Node) (*ir.Node, error) {
	d, err := jsonpatch.CreateMergePatch(ir.EncodeJSON(original), ir.EncodeJSON(edited))
	if err != nil {
		return nil, fmt.Errorf("create merge patch: %w", err)
	}
	return ir.DecodeJSON(d)
}

// ApplyMergePatch applies an RFC 7386 merge patch to doc and returns
// the result. doc is not modified.
func ApplyMergePatch(doc, patch *ir.Node) (*ir.Node, error) {
	out, err := jsonpatch.MergePatch(ir.EncodeJSON(doc), ir.EncodeJSON(patch))
	if err != nil {
		return nil, fmt.Errorf("apply merge patch: %w", err)
	}
	return ir.DecodeJSON(out)
}
