package catdiff

import (
	"fmt"
	"io"
	"sync"

	"github.com/locforge/catdiff/catalog"
	"github.com/locforge/catdiff/compare"
	"github.com/locforge/catdiff/debug"
	"github.com/locforge/catdiff/edits"
	"github.com/locforge/catdiff/encode"
	"github.com/locforge/catdiff/ir"
	"github.com/locforge/catdiff/keypath"
	"github.com/locforge/catdiff/mergetree"
)

var ErrNoDocument = fmt.Errorf("no document")

// Session holds one document pair and its pending edits. Comparison,
// tree and export operations all see the current documents, that is
// the originals with each side's pending edits applied. Safe for
// concurrent use.
type Session struct {
	mu    sync.Mutex
	docs  map[catalog.Side]*catalog.Document
	store *edits.Store
}

type SessionOption func(*Session)

// WithStore substitutes the edit store, for tests needing a fixed
// clock.
func WithStore(store *edits.Store) SessionOption {
	return func(s *Session) { s.store = store }
}

func NewSession(opts ...SessionOption) *Session {
	s := &Session{
		docs:  map[catalog.Side]*catalog.Document{},
		store: edits.NewStore(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// SetDocument installs doc as its side of the pair, replacing any
// previous document and discarding that side's pending edits.
func (s *Session) SetDocument(doc *catalog.Document) error {
	if doc == nil || !doc.Side.Valid() {
		return fmt.Errorf("%w: %v", catalog.ErrInvalidSide, doc)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.Side] = doc
	if err := s.store.Clear(doc.Side); err != nil {
		return err
	}
	if debug.Session() {
		debug.Logf("session: set %s %q (%d keys)\n", doc.Side, doc.Name, doc.Keys)
	}
	return nil
}

// Document returns the original document of one side, or ErrNoDocument.
func (s *Session) Document(side catalog.Side) (*catalog.Document, error) {
	if !side.Valid() {
		return nil, fmt.Errorf("%w: %q", catalog.ErrInvalidSide, side)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.docs[side]
	if doc == nil {
		return nil, fmt.Errorf("%w for side %s", ErrNoDocument, side)
	}
	return doc, nil
}

// Reset drops both documents and all pending edits.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = map[catalog.Side]*catalog.Document{}
	s.store.ClearAll()
}

// current returns side's document under its pending edits, nil when
// the side has neither a document nor edits.
func (s *Session) current(side catalog.Side) *ir.Node {
	var root *ir.Node
	if doc := s.docs[side]; doc != nil {
		root = doc.Root
	}
	cur, err := s.store.Current(side, root)
	if err != nil {
		// side is validated by every caller
		panic(err)
	}
	return cur
}

// Compare classifies every key path of the current document pair.
func (s *Session) Compare() []compare.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return compare.Compare(s.current(catalog.Left), s.current(catalog.Right))
}

// Summary folds Compare into per-status counts.
func (s *Session) Summary() compare.Summary {
	return compare.Summarize(s.Compare())
}

// Tree reconciles the current document pair for dual-column display.
func (s *Session) Tree() []*mergetree.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return mergetree.Merge(s.current(catalog.Left), s.current(catalog.Right))
}

// Counts returns the key count of each side's current document.
func (s *Session) Counts() map[catalog.Side]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := map[catalog.Side]int{}
	for _, side := range catalog.Sides() {
		res[side] = ir.CountKeys(s.current(side))
	}
	return res
}

// Edit records a pending edit, deriving its kind from whether the path
// already resolves in side's current document.
func (s *Session) Edit(side catalog.Side, path string, value *ir.Node) error {
	if !side.Valid() {
		return fmt.Errorf("%w: %q", catalog.ErrInvalidSide, side)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	kind := edits.Add
	if keypath.Read(s.current(side), path) != nil {
		kind = edits.Update
	}
	return s.store.Record(side, path, value, kind)
}

// EditWithKind records a pending edit with an explicit kind.
func (s *Session) EditWithKind(side catalog.Side, path string, value *ir.Node, kind edits.Kind) error {
	return s.store.Record(side, path, value, kind)
}

// Pending returns copies of side's pending edits in record order.
func (s *Session) Pending(side catalog.Side) ([]edits.Edit, error) {
	return s.store.Pending(side)
}

// ClearEdits discards side's pending edits.
func (s *Session) ClearEdits(side catalog.Side) error {
	return s.store.Clear(side)
}

// ClearAllEdits discards both sides' pending edits.
func (s *Session) ClearAllEdits() {
	s.store.ClearAll()
}

// Current returns side's document under its pending edits. Without
// edits it is the original root itself; do not mutate it.
func (s *Session) Current(side catalog.Side) (*ir.Node, error) {
	if !side.Valid() {
		return nil, fmt.Errorf("%w: %q", catalog.ErrInvalidSide, side)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current(side), nil
}

// Export writes side's current document to w. The document's own
// format applies unless opts override it.
func (s *Session) Export(side catalog.Side, w io.Writer, opts ...encode.EncodeOption) error {
	if !side.Valid() {
		return fmt.Errorf("%w: %q", catalog.ErrInvalidSide, side)
	}
	s.mu.Lock()
	doc := s.docs[side]
	cur := s.current(side)
	s.mu.Unlock()
	if cur == nil {
		return fmt.Errorf("%w for side %s", ErrNoDocument, side)
	}
	eOpts := []encode.EncodeOption{}
	if doc != nil {
		eOpts = append(eOpts, encode.EncodeFormat(doc.Format))
	}
	eOpts = append(eOpts, opts...)
	return encode.Encode(cur, w, eOpts...)
}

// MergePatch summarizes side's pending edits as an RFC 7386 merge
// patch against the original document.
func (s *Session) MergePatch(side catalog.Side) (*ir.Node, error) {
	if !side.Valid() {
		return nil, fmt.Errorf("%w: %q", catalog.ErrInvalidSide, side)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var root *ir.Node
	if doc := s.docs[side]; doc != nil {
		root = doc.Root
	}
	if root == nil {
		root = ir.Object()
	}
	cur := s.current(side)
	if cur == nil {
		cur = root
	}
	return edits.MergePatch(root, cur)
}
