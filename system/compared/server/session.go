package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"

	"go.lsp.dev/jsonrpc2"

	"github.com/locforge/catdiff"
	"github.com/locforge/catdiff/catalog"
	"github.com/locforge/catdiff/compare"
	"github.com/locforge/catdiff/edits"
	"github.com/locforge/catdiff/encode"
	"github.com/locforge/catdiff/format"
	"github.com/locforge/catdiff/mergetree"
	"github.com/locforge/catdiff/system/compared/api"
)

// Session serves one connection's comparison state over JSON-RPC.
// mu serializes handlers so the engine session always sees
// single-threaded access.
type Session struct {
	ID   string
	conn jsonrpc2.Conn
	log  *slog.Logger

	maxKeys int

	mu      sync.Mutex
	session *catdiff.Session
}

// SessionConfig contains configuration for creating a session.
type SessionConfig struct {
	Log *slog.Logger

	// MaxKeys is the key quota for loaded documents. Zero or negative
	// means the catalog default.
	MaxKeys int
}

// NewSession creates a session served over the given stream. TCP
// connections pass a raw stream, stdio a headered one.
func NewSession(id string, stream jsonrpc2.Stream, cfg *SessionConfig) *Session {
	log := cfg.Log
	if log == nil {
		log = slog.Default()
	}
	s := &Session{
		ID:      id,
		log:     log.With("session", id),
		maxKeys: cfg.MaxKeys,
		session: catdiff.NewSession(),
	}
	s.conn = jsonrpc2.NewConn(stream)
	return s
}

// Run starts serving requests and blocks until the connection closes.
// EOF and local close are normal shutdown, not errors.
func (s *Session) Run(ctx context.Context) error {
	s.conn.Go(ctx, s.handle)
	<-s.conn.Done()
	err := s.conn.Err()
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
		return err
	}
	return nil
}

// Close terminates the connection.
func (s *Session) Close() error {
	return s.conn.Close()
}

func (s *Session) handle(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	s.log.Debug("request", "method", req.Method())

	s.mu.Lock()
	defer s.mu.Unlock()

	switch req.Method() {
	case api.MethodDocumentLoad:
		return s.documentLoad(ctx, reply, req)
	case api.MethodDocumentInfo:
		return s.documentInfo(ctx, reply, req)
	case api.MethodCompareRecords:
		return s.compareRecords(ctx, reply, req)
	case api.MethodCompareTree:
		return s.compareTree(ctx, reply)
	case api.MethodComparePatch:
		return s.comparePatch(ctx, reply)
	case api.MethodEditRecord:
		return s.editRecord(ctx, reply, req)
	case api.MethodEditList:
		return s.editList(ctx, reply, req)
	case api.MethodEditClear:
		return s.editClear(ctx, reply, req)
	case api.MethodExport:
		return s.export(ctx, reply, req)
	case api.MethodSessionInfo:
		return s.sessionInfo(ctx, reply)
	default:
		return jsonrpc2.MethodNotFoundHandler(ctx, reply, req)
	}
}

func (s *Session) documentLoad(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params api.DocumentLoadRequest
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return reply(ctx, nil, fmt.Errorf("%w: %v", jsonrpc2.ErrInvalidParams, err))
	}
	side, err := catalog.ParseSide(params.Side)
	if err != nil {
		return reply(ctx, nil, fmt.Errorf("%w: %q", api.ErrInvalidSide, params.Side))
	}

	var opts []catalog.LoadOption
	if params.Name != "" {
		opts = append(opts, catalog.WithName(params.Name))
	}
	if params.Format != "" {
		f, err := format.ParseFormat(params.Format)
		if err != nil {
			return reply(ctx, nil, fmt.Errorf("%w: %v", jsonrpc2.ErrInvalidParams, err))
		}
		opts = append(opts, catalog.WithFormat(f))
	}
	maxKeys := s.maxKeys
	if params.MaxKeys > 0 {
		maxKeys = params.MaxKeys
	}
	if maxKeys > 0 {
		opts = append(opts, catalog.WithMaxKeys(maxKeys))
	}

	doc, err := catalog.LoadBytes(side, []byte(params.Data), opts...)
	if err != nil {
		return reply(ctx, nil, loadError(err))
	}
	if err := s.session.SetDocument(doc); err != nil {
		return reply(ctx, nil, fmt.Errorf("%w: %v", jsonrpc2.ErrInternal, err))
	}

	s.log.Info("document loaded", "side", side, "name", doc.Name, "keys", doc.Keys)
	return reply(ctx, s.docInfo(side), nil)
}

func (s *Session) documentInfo(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params api.DocumentInfoRequest
	if len(req.Params()) > 0 {
		if err := json.Unmarshal(req.Params(), &params); err != nil {
			return reply(ctx, nil, fmt.Errorf("%w: %v", jsonrpc2.ErrInvalidParams, err))
		}
	}
	sides, err := requestSides(params.Side)
	if err != nil {
		return reply(ctx, nil, err)
	}

	resp := &api.DocumentInfoResponse{}
	for _, side := range sides {
		if info := s.docInfo(side); info != nil {
			resp.Documents = append(resp.Documents, info)
		}
	}
	return reply(ctx, resp, nil)
}

func (s *Session) compareRecords(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params api.CompareRecordsRequest
	if len(req.Params()) > 0 {
		if err := json.Unmarshal(req.Params(), &params); err != nil {
			return reply(ctx, nil, fmt.Errorf("%w: %v", jsonrpc2.ErrInvalidParams, err))
		}
	}

	recs := s.session.Compare()
	summary := compare.Summarize(recs)
	if params.Filter != "" {
		filter, err := compare.NewFilter(params.Filter)
		if err != nil {
			return reply(ctx, nil, fmt.Errorf("%w: %v", api.ErrBadFilter, err))
		}
		recs, err = filter.Apply(recs)
		if err != nil {
			return reply(ctx, nil, fmt.Errorf("%w: %v", api.ErrBadFilter, err))
		}
	}
	if recs == nil {
		recs = []compare.Record{}
	}
	return reply(ctx, &api.CompareRecordsResponse{Records: recs, Summary: summary}, nil)
}

func (s *Session) compareTree(ctx context.Context, reply jsonrpc2.Replier) error {
	roots := s.session.Tree()
	if roots == nil {
		roots = []*mergetree.Node{}
	}
	return reply(ctx, &api.CompareTreeResponse{
		Roots:  roots,
		Leaves: mergetree.CountLeaves(roots),
	}, nil)
}

func (s *Session) comparePatch(ctx context.Context, reply jsonrpc2.Replier) error {
	patch := compare.JSONPatch(s.session.Compare())
	return reply(ctx, &api.ComparePatchResponse{Patch: patch}, nil)
}

func (s *Session) editRecord(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params api.EditRecordRequest
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return reply(ctx, nil, fmt.Errorf("%w: %v", jsonrpc2.ErrInvalidParams, err))
	}
	side, err := catalog.ParseSide(params.Side)
	if err != nil {
		return reply(ctx, nil, fmt.Errorf("%w: %q", api.ErrInvalidSide, params.Side))
	}
	if params.Path == "" {
		return reply(ctx, nil, fmt.Errorf("%w: empty path", jsonrpc2.ErrInvalidParams))
	}

	if params.Kind != "" {
		kind, err := edits.ParseKind(params.Kind)
		if err != nil {
			return reply(ctx, nil, fmt.Errorf("%w: %v", jsonrpc2.ErrInvalidParams, err))
		}
		err = s.session.EditWithKind(side, params.Path, params.Value, kind)
		if err != nil {
			return reply(ctx, nil, fmt.Errorf("%w: %v", jsonrpc2.ErrInternal, err))
		}
	} else if err := s.session.Edit(side, params.Path, params.Value); err != nil {
		return reply(ctx, nil, fmt.Errorf("%w: %v", jsonrpc2.ErrInternal, err))
	}

	pending, _ := s.session.Pending(side)
	return reply(ctx, &api.EditRecordResponse{Pending: len(pending)}, nil)
}

func (s *Session) editList(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params api.EditListRequest
	if len(req.Params()) > 0 {
		if err := json.Unmarshal(req.Params(), &params); err != nil {
			return reply(ctx, nil, fmt.Errorf("%w: %v", jsonrpc2.ErrInvalidParams, err))
		}
	}
	sides, err := requestSides(params.Side)
	if err != nil {
		return reply(ctx, nil, err)
	}

	resp := &api.EditListResponse{Edits: []edits.Edit{}}
	for _, side := range sides {
		pending, err := s.session.Pending(side)
		if err != nil {
			return reply(ctx, nil, fmt.Errorf("%w: %v", jsonrpc2.ErrInternal, err))
		}
		resp.Edits = append(resp.Edits, pending...)
	}
	return reply(ctx, resp, nil)
}

func (s *Session) editClear(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params api.EditClearRequest
	if len(req.Params()) > 0 {
		if err := json.Unmarshal(req.Params(), &params); err != nil {
			return reply(ctx, nil, fmt.Errorf("%w: %v", jsonrpc2.ErrInvalidParams, err))
		}
	}
	if params.Side == "" {
		s.session.ClearAllEdits()
		return reply(ctx, nil, nil)
	}
	side, err := catalog.ParseSide(params.Side)
	if err != nil {
		return reply(ctx, nil, fmt.Errorf("%w: %q", api.ErrInvalidSide, params.Side))
	}
	if err := s.session.ClearEdits(side); err != nil {
		return reply(ctx, nil, fmt.Errorf("%w: %v", jsonrpc2.ErrInternal, err))
	}
	return reply(ctx, nil, nil)
}

func (s *Session) export(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params api.ExportRequest
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return reply(ctx, nil, fmt.Errorf("%w: %v", jsonrpc2.ErrInvalidParams, err))
	}
	side, err := catalog.ParseSide(params.Side)
	if err != nil {
		return reply(ctx, nil, fmt.Errorf("%w: %q", api.ErrInvalidSide, params.Side))
	}

	if params.MergePatch {
		patch, err := s.session.MergePatch(side)
		if err != nil {
			return reply(ctx, nil, fmt.Errorf("%w: %v", jsonrpc2.ErrInternal, err))
		}
		return reply(ctx, &api.ExportResponse{Patch: patch}, nil)
	}

	var opts []encode.EncodeOption
	if params.Format != "" {
		f, err := format.ParseFormat(params.Format)
		if err != nil {
			return reply(ctx, nil, fmt.Errorf("%w: %v", jsonrpc2.ErrInvalidParams, err))
		}
		opts = append(opts, encode.EncodeFormat(f))
	}
	if params.Compact {
		opts = append(opts, encode.EncodeCompact(true))
	}

	var buf bytes.Buffer
	if err := s.session.Export(side, &buf, opts...); err != nil {
		if errors.Is(err, catdiff.ErrNoDocument) {
			return reply(ctx, nil, fmt.Errorf("%w: %s", api.ErrNoDocument, side))
		}
		return reply(ctx, nil, fmt.Errorf("%w: %v", jsonrpc2.ErrInternal, err))
	}
	return reply(ctx, &api.ExportResponse{Data: buf.String()}, nil)
}

func (s *Session) sessionInfo(ctx context.Context, reply jsonrpc2.Replier) error {
	resp := &api.SessionInfoResponse{
		ServerID:  ServerID,
		SessionID: s.ID,
		Version:   Version,
		Documents: []*api.DocumentInfo{},
	}
	for _, side := range catalog.Sides() {
		if info := s.docInfo(side); info != nil {
			resp.Documents = append(resp.Documents, info)
		}
	}
	return reply(ctx, resp, nil)
}

// docInfo reports one side's document, nil when none is loaded.
func (s *Session) docInfo(side catalog.Side) *api.DocumentInfo {
	doc, err := s.session.Document(side)
	if err != nil {
		return nil
	}
	pending, _ := s.session.Pending(side)
	return &api.DocumentInfo{
		Side:    string(side),
		Name:    doc.Name,
		Format:  doc.Format.String(),
		Keys:    doc.Keys,
		Pending: len(pending),
	}
}

// requestSides resolves an optional side parameter to the sides to
// operate on, both when empty.
func requestSides(v string) ([]catalog.Side, error) {
	if v == "" {
		return catalog.Sides(), nil
	}
	side, err := catalog.ParseSide(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", api.ErrInvalidSide, v)
	}
	return []catalog.Side{side}, nil
}

// loadError maps catalog load failures onto wire error codes.
func loadError(err error) error {
	switch {
	case errors.Is(err, catalog.ErrTooManyKeys):
		return fmt.Errorf("%w: %v", api.ErrTooManyKeys, err)
	case errors.Is(err, catalog.ErrInvalidSide):
		return fmt.Errorf("%w: %v", api.ErrInvalidSide, err)
	default:
		return fmt.Errorf("%w: %v", api.ErrBadDocument, err)
	}
}
