// Package edits layers sparse pending mutations over immutable source
// documents.
//
// A Store keeps at most one pending edit per (side, path); recording a
// path twice keeps only the newest value. Materializing applies the
// pending edits of one side to a deep copy of a source document, so
// the source is never touched. The materialized result is cached and
// reused until the edit set or the source changes.
package edits

import (
	"cmp"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/locforge/catdiff/catalog"
	"github.com/locforge/catdiff/debug"
	"github.com/locforge/catdiff/ir"
	"github.com/locforge/catdiff/keypath"
)

// Edit is one pending mutation. Value is owned by the store.
type Edit struct {
	Side  catalog.Side `json:"side"`
	Path  string       `json:"path"`
	Value *ir.Node     `json:"value"`
	Kind  Kind         `json:"kind"`
	Time  time.Time    `json:"time"`
	Seq   uint64       `json:"seq"`
}

// Store holds the pending edits of both sides. Safe for concurrent
// use.
type Store struct {
	mu    sync.Mutex
	now   func() time.Time
	seq   uint64
	edits map[catalog.Side]map[string]*Edit
	gens  map[catalog.Side]uint64
	cache map[catalog.Side]*snapshot
}

// snapshot is one cached materialization, valid while the source
// document hash and the side's edit generation both still match.
type snapshot struct {
	srcHash uint64
	gen     uint64
	doc     *ir.Node
}

type StoreOption func(*Store)

// WithClock substitutes the timestamp source, for tests.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		now:   time.Now,
		edits: map[catalog.Side]map[string]*Edit{},
		gens:  map[catalog.Side]uint64{},
		cache: map[catalog.Side]*snapshot{},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Record stores the pending edit for (side, path), replacing any
// previous one with a fresh timestamp. The value is copied; nil means
// JSON null.
func (s *Store) Record(side catalog.Side, path string, value *ir.Node, kind Kind) error {
	if !side.Valid() {
		return fmt.Errorf("%w: %q", catalog.ErrInvalidSide, side)
	}
	if value == nil {
		value = ir.Null()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	byPath := s.edits[side]
	if byPath == nil {
		byPath = map[string]*Edit{}
		s.edits[side] = byPath
	}
	byPath[path] = &Edit{
		Side:  side,
		Path:  path,
		Value: value.Clone(),
		Kind:  kind,
		Time:  s.now(),
		Seq:   s.seq,
	}
	s.gens[side]++
	if debug.Edits() {
		debug.Logf("edits: record %s %q (%d pending)\n", side, path, len(byPath))
	}
	return nil
}

// Clear discards the pending edits of one side.
func (s *Store) Clear(side catalog.Side) error {
	if !side.Valid() {
		return fmt.Errorf("%w: %q", catalog.ErrInvalidSide, side)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.edits, side)
	delete(s.cache, side)
	s.gens[side]++
	return nil
}

// ClearAll discards the pending edits of both sides.
func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, side := range catalog.Sides() {
		delete(s.edits, side)
		delete(s.cache, side)
		s.gens[side]++
	}
}

// Count returns the number of pending edits for side.
func (s *Store) Count(side catalog.Side) (int, error) {
	if !side.Valid() {
		return 0, fmt.Errorf("%w: %q", catalog.ErrInvalidSide, side)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.edits[side]), nil
}

// Pending returns copies of side's pending edits in record order.
func (s *Store) Pending(side catalog.Side) ([]Edit, error) {
	if !side.Valid() {
		return nil, fmt.Errorf("%w: %q", catalog.ErrInvalidSide, side)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	res := make([]Edit, 0, len(s.edits[side]))
	for _, e := range s.edits[side] {
		cp := *e
		cp.Value = e.Value.Clone()
		res = append(res, cp)
	}
	slices.SortFunc(res, func(a, b Edit) int {
		return cmp.Compare(a.Seq, b.Seq)
	})
	return res, nil
}

// Materialize applies side's pending edits to a deep copy of doc and
// returns the copy. doc itself is never modified.
func (s *Store) Materialize(side catalog.Side, doc *ir.Node) (*ir.Node, error) {
	if !side.Valid() {
		return nil, fmt.Errorf("%w: %q", catalog.ErrInvalidSide, side)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.materialize(side, doc), nil
}

func (s *Store) materialize(side catalog.Side, doc *ir.Node) *ir.Node {
	var out *ir.Node
	if doc != nil {
		out = doc.Clone()
	} else {
		out = ir.Object()
	}
	// apply in record order; writes to overlapping paths make the
	// order observable
	pending := make([]*Edit, 0, len(s.edits[side]))
	for _, e := range s.edits[side] {
		pending = append(pending, e)
	}
	slices.SortFunc(pending, func(a, b *Edit) int {
		return cmp.Compare(a.Seq, b.Seq)
	})
	for _, e := range pending {
		keypath.Write(out, e.Path, e.Value.Clone())
	}
	return out
}

// Current returns doc itself when side has no pending edits, else the
// materialization of doc under them. Repeated calls with the same doc
// and edit set return the same materialized tree.
func (s *Store) Current(side catalog.Side, doc *ir.Node) (*ir.Node, error) {
	if !side.Valid() {
		return nil, fmt.Errorf("%w: %q", catalog.ErrInvalidSide, side)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.edits[side]) == 0 {
		return doc, nil
	}
	srcHash := uint64(0)
	if doc != nil {
		srcHash = ir.Hash(doc)
	}
	if snap := s.cache[side]; snap != nil && snap.srcHash == srcHash && snap.gen == s.gens[side] {
		return snap.doc, nil
	}
	out := s.materialize(side, doc)
	s.cache[side] = &snapshot{srcHash: srcHash, gen: s.gens[side], doc: out}
	return out, nil
}
