// Package catalog models the validated documents a comparison session
// works on.
//
// A Document only exists once its content has passed validation: the
// root is an object, every key is representable as a path segment and
// free of prototype-aliasing names, and the total key count fits the
// configured ceiling. The engines downstream assume all of this and
// never re-check it.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/locforge/catdiff/format"
	"github.com/locforge/catdiff/ir"
	"github.com/locforge/catdiff/parse"
)

// DefaultMaxKeys bounds the total key count of one document.
const DefaultMaxKeys = 10000

var (
	ErrNotObject   = errors.New("document root is not an object")
	ErrUnsafeKey   = errors.New("unsafe key")
	ErrTooManyKeys = errors.New("too many keys")
)

// Document is one validated side of a comparison session. Root is
// owned by the document; callers treat it as read-only.
type Document struct {
	Side   Side          `json:"side"`
	Name   string        `json:"name,omitempty"`
	Format format.Format `json:"format"`
	Root   *ir.Node      `json:"root"`
	Keys   int           `json:"keys"`
}

type loadOpts struct {
	name    string
	format  *format.Format
	maxKeys int
}

type LoadOption func(*loadOpts)

func WithName(name string) LoadOption {
	return func(o *loadOpts) { o.name = name }
}
func WithFormat(f format.Format) LoadOption {
	return func(o *loadOpts) { o.format = &f }
}
func WithMaxKeys(n int) LoadOption {
	return func(o *loadOpts) { o.maxKeys = n }
}

// LoadBytes parses and validates one document. The format defaults to
// JSON unless WithFormat says otherwise.
func LoadBytes(side Side, data []byte, opts ...LoadOption) (*Document, error) {
	if !side.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSide, side)
	}
	lo := &loadOpts{maxKeys: DefaultMaxKeys}
	for _, o := range opts {
		o(lo)
	}
	f := format.JSONFormat
	if lo.format != nil {
		f = *lo.format
	}
	root, err := parse.Parse(data, parse.ParseFormat(f))
	if err != nil {
		return nil, err
	}
	return build(side, lo.name, f, root, lo.maxKeys)
}

// LoadFile reads, parses and validates one document, picking the
// format from the file extension and the name from the base name.
// Explicit options win over both.
func LoadFile(side Side, path string, opts ...LoadOption) (*Document, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	auto := []LoadOption{WithName(filepath.Base(path))}
	if f, ok := format.DetectPath(path); ok {
		auto = append(auto, WithFormat(f))
	}
	return LoadBytes(side, d, append(auto, opts...)...)
}

// FromNode validates an already parsed tree as a document. The tree is
// adopted, not copied.
func FromNode(side Side, root *ir.Node, opts ...LoadOption) (*Document, error) {
	if !side.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSide, side)
	}
	lo := &loadOpts{maxKeys: DefaultMaxKeys}
	for _, o := range opts {
		o(lo)
	}
	f := format.JSONFormat
	if lo.format != nil {
		f = *lo.format
	}
	return build(side, lo.name, f, root, lo.maxKeys)
}

func build(side Side, name string, f format.Format, root *ir.Node, maxKeys int) (*Document, error) {
	if root == nil || !root.Type.IsContainer() {
		return nil, ErrNotObject
	}
	if err := checkKeys(root); err != nil {
		return nil, err
	}
	n, ok := ir.CountKeysWithin(root, maxKeys)
	if !ok {
		return nil, fmt.Errorf("%w: more than %d", ErrTooManyKeys, maxKeys)
	}
	return &Document{
		Side:   side,
		Name:   name,
		Format: f,
		Root:   root,
		Keys:   n,
	}, nil
}

var unsafeKeys = map[string]bool{
	"__proto__":   true,
	"prototype":   true,
	"constructor": true,
}

// checkKeys rejects keys that cannot be addressed as path segments or
// that alias prototype members of the host container type.
func checkKeys(root *ir.Node) error {
	return root.Visit(func(n *ir.Node, isPost bool) (bool, error) {
		if isPost || n.Type != ir.ObjectType {
			return true, nil
		}
		for _, k := range n.Keys {
			switch {
			case k == "":
				return false, fmt.Errorf("%w: empty key", ErrUnsafeKey)
			case unsafeKeys[k]:
				return false, fmt.Errorf("%w: %q", ErrUnsafeKey, k)
			case strings.Contains(k, "."):
				return false, fmt.Errorf("%w: %q contains '.'", ErrUnsafeKey, k)
			}
		}
		return true, nil
	})
}
