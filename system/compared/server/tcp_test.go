package server

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"go.lsp.dev/jsonrpc2"

	"github.com/locforge/catdiff/compare"
	"github.com/locforge/catdiff/ir"
	"github.com/locforge/catdiff/keypath"
	"github.com/locforge/catdiff/system/compared/api"
)

const (
	leftDoc  = `{"app":{"title":"My App","subtitle":"Welcome"},"menu":{"open":"Open"}}`
	rightDoc = `{"app":{"title":"Meine App"},"menu":{"open":"Offnen","close":"Schliessen"}}`
)

// dialSession connects a jsonrpc2 client to the server's TCP address.
func dialSession(t *testing.T, ctx context.Context, addr string) jsonrpc2.Conn {
	t.Helper()
	netConn, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	client := jsonrpc2.NewConn(jsonrpc2.NewRawStream(netConn))
	client.Go(ctx, jsonrpc2.MethodNotFoundHandler)
	t.Cleanup(func() { client.Close() })
	return client
}

func loadSide(t *testing.T, ctx context.Context, client jsonrpc2.Conn, side, name, data string) api.DocumentInfo {
	t.Helper()
	var info api.DocumentInfo
	_, err := client.Call(ctx, api.MethodDocumentLoad, &api.DocumentLoadRequest{
		Side: side,
		Name: name,
		Data: data,
	}, &info)
	if err != nil {
		t.Fatalf("failed to load %s: %v", side, err)
	}
	return info
}

func TestTCPListener_CompareRoundtrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	server := New(&Spec{})
	if err := server.StartTCP("127.0.0.1:0"); err != nil {
		t.Fatalf("failed to start TCP: %v", err)
	}
	defer server.StopTCP()

	addr := server.TCPAddr()
	if addr == "" {
		t.Fatal("expected TCP address")
	}
	t.Logf("TCP listener on %s", addr)

	client := dialSession(t, ctx, addr)

	info := loadSide(t, ctx, client, "left", "en.json", leftDoc)
	if info.Keys != 3 {
		t.Errorf("expected 3 left keys, got %d", info.Keys)
	}
	if info.Format != "json" {
		t.Errorf("expected json format, got %q", info.Format)
	}
	loadSide(t, ctx, client, "right", "de.json", rightDoc)

	var recs api.CompareRecordsResponse
	if _, err := client.Call(ctx, api.MethodCompareRecords, nil, &recs); err != nil {
		t.Fatalf("compare/records failed: %v", err)
	}
	want := map[string]compare.Status{
		"app.title":    compare.Different,
		"app.subtitle": compare.MissingRight,
		"menu.open":    compare.Different,
		"menu.close":   compare.MissingLeft,
	}
	if len(recs.Records) != len(want) {
		t.Fatalf("expected %d records, got %d: %+v", len(want), len(recs.Records), recs.Records)
	}
	for _, r := range recs.Records {
		if want[r.Path] != r.Status {
			t.Errorf("record %s: expected %v, got %v", r.Path, want[r.Path], r.Status)
		}
	}
	if recs.Summary.Total != 4 || recs.Summary.Different != 2 {
		t.Errorf("unexpected summary: %+v", recs.Summary)
	}

	// Filtered query narrows records but not the summary.
	filtered := api.CompareRecordsResponse{}
	_, err := client.Call(ctx, api.MethodCompareRecords, &api.CompareRecordsRequest{
		Filter: `status == "missing-right"`,
	}, &filtered)
	if err != nil {
		t.Fatalf("filtered compare failed: %v", err)
	}
	if len(filtered.Records) != 1 || filtered.Records[0].Path != "app.subtitle" {
		t.Errorf("unexpected filtered records: %+v", filtered.Records)
	}
	if filtered.Summary.Total != 4 {
		t.Errorf("filter changed the summary: %+v", filtered.Summary)
	}

	var tree api.CompareTreeResponse
	if _, err := client.Call(ctx, api.MethodCompareTree, nil, &tree); err != nil {
		t.Fatalf("compare/tree failed: %v", err)
	}
	if len(tree.Roots) != 2 {
		t.Fatalf("expected 2 tree roots, got %d", len(tree.Roots))
	}
	if tree.Roots[0].Key != "app" || tree.Roots[1].Key != "menu" {
		t.Errorf("expected sorted roots app, menu; got %q, %q", tree.Roots[0].Key, tree.Roots[1].Key)
	}
	if tree.Leaves != 4 {
		t.Errorf("expected 4 leaves, got %d", tree.Leaves)
	}

	var patch api.ComparePatchResponse
	if _, err := client.Call(ctx, api.MethodComparePatch, nil, &patch); err != nil {
		t.Fatalf("compare/patch failed: %v", err)
	}
	if patch.Patch == nil || patch.Patch.Type != ir.ArrayType {
		t.Fatalf("expected patch array, got %v", patch.Patch)
	}
	if len(patch.Patch.Children) != 4 {
		t.Errorf("expected 4 patch ops, got %d", len(patch.Patch.Children))
	}
}

func TestTCPListener_EditExport(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	server := New(&Spec{})
	if err := server.StartTCP("127.0.0.1:0"); err != nil {
		t.Fatalf("failed to start TCP: %v", err)
	}
	defer server.StopTCP()

	client := dialSession(t, ctx, server.TCPAddr())
	loadSide(t, ctx, client, "left", "en.json", leftDoc)
	loadSide(t, ctx, client, "right", "de.json", rightDoc)

	var ack api.EditRecordResponse
	_, err := client.Call(ctx, api.MethodEditRecord, &api.EditRecordRequest{
		Side:  "right",
		Path:  "app.subtitle",
		Value: ir.FromString("Willkommen"),
	}, &ack)
	if err != nil {
		t.Fatalf("edit/record failed: %v", err)
	}
	if ack.Pending != 1 {
		t.Errorf("expected 1 pending edit, got %d", ack.Pending)
	}

	// The path was absent on the right, so the kind derives to add.
	var list api.EditListResponse
	if _, err := client.Call(ctx, api.MethodEditList, &api.EditListRequest{Side: "right"}, &list); err != nil {
		t.Fatalf("edit/list failed: %v", err)
	}
	if len(list.Edits) != 1 {
		t.Fatalf("expected 1 edit, got %d", len(list.Edits))
	}
	if got := list.Edits[0].Kind.String(); got != "add" {
		t.Errorf("expected derived kind add, got %q", got)
	}

	// The edit flows into subsequent comparisons.
	var recs api.CompareRecordsResponse
	if _, err := client.Call(ctx, api.MethodCompareRecords, nil, &recs); err != nil {
		t.Fatalf("compare/records failed: %v", err)
	}
	if recs.Summary.MissingRight != 0 {
		t.Errorf("expected no missing-right after edit, got %+v", recs.Summary)
	}

	var exported api.ExportResponse
	if _, err := client.Call(ctx, api.MethodExport, &api.ExportRequest{Side: "right"}, &exported); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	root, err := ir.DecodeJSON([]byte(exported.Data))
	if err != nil {
		t.Fatalf("exported data does not parse: %v", err)
	}
	sub := keypath.Read(root, "app.subtitle")
	if sub == nil || sub.String != "Willkommen" {
		t.Errorf("expected edited subtitle in export, got %v", sub)
	}

	var mp api.ExportResponse
	_, err = client.Call(ctx, api.MethodExport, &api.ExportRequest{Side: "right", MergePatch: true}, &mp)
	if err != nil {
		t.Fatalf("merge patch export failed: %v", err)
	}
	if mp.Patch == nil {
		t.Fatal("expected merge patch")
	}
	if got := keypath.Read(mp.Patch, "app.subtitle"); got == nil || got.String != "Willkommen" {
		t.Errorf("unexpected merge patch: %s", ir.EncodeJSON(mp.Patch))
	}

	// Clearing drops the pending edit.
	if _, err := client.Call(ctx, api.MethodEditClear, &api.EditClearRequest{Side: "right"}, nil); err != nil {
		t.Fatalf("edit/clear failed: %v", err)
	}
	var infos api.DocumentInfoResponse
	if _, err := client.Call(ctx, api.MethodDocumentInfo, &api.DocumentInfoRequest{Side: "right"}, &infos); err != nil {
		t.Fatalf("document/info failed: %v", err)
	}
	if len(infos.Documents) != 1 || infos.Documents[0].Pending != 0 {
		t.Errorf("expected 0 pending after clear, got %+v", infos.Documents)
	}
}

func TestTCPListener_ErrorCodes(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	server := New(&Spec{})
	if err := server.StartTCP("127.0.0.1:0"); err != nil {
		t.Fatalf("failed to start TCP: %v", err)
	}
	defer server.StopTCP()

	client := dialSession(t, ctx, server.TCPAddr())

	tests := []struct {
		name   string
		method string
		params any
		code   jsonrpc2.Code
	}{
		{
			name:   "invalid side",
			method: api.MethodDocumentLoad,
			params: &api.DocumentLoadRequest{Side: "middle", Data: "{}"},
			code:   api.CodeInvalidSide,
		},
		{
			name:   "bad document",
			method: api.MethodDocumentLoad,
			params: &api.DocumentLoadRequest{Side: "left", Data: "{oops"},
			code:   api.CodeBadDocument,
		},
		{
			name:   "non-object root",
			method: api.MethodDocumentLoad,
			params: &api.DocumentLoadRequest{Side: "left", Data: `["a"]`},
			code:   api.CodeBadDocument,
		},
		{
			name:   "too many keys",
			method: api.MethodDocumentLoad,
			params: &api.DocumentLoadRequest{Side: "left", Data: `{"a":1,"b":2,"c":3}`, MaxKeys: 2},
			code:   api.CodeTooManyKeys,
		},
		{
			name:   "export without document",
			method: api.MethodExport,
			params: &api.ExportRequest{Side: "right"},
			code:   api.CodeNoDocument,
		},
		{
			name:   "bad filter",
			method: api.MethodCompareRecords,
			params: &api.CompareRecordsRequest{Filter: "status =="},
			code:   api.CodeBadFilter,
		},
		{
			name:   "unknown method",
			method: "compare/unknown",
			params: nil,
			code:   jsonrpc2.MethodNotFound,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := client.Call(ctx, tc.method, tc.params, nil)
			if err == nil {
				t.Fatal("expected error")
			}
			var wireErr *jsonrpc2.Error
			if !errors.As(err, &wireErr) {
				t.Fatalf("expected wire error, got %v", err)
			}
			if wireErr.Code != tc.code {
				t.Errorf("expected code %d, got %d (%s)", tc.code, wireErr.Code, wireErr.Message)
			}
		})
	}
}

func TestTCPListener_SessionIsolation(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	server := New(&Spec{})
	if err := server.StartTCP("127.0.0.1:0"); err != nil {
		t.Fatalf("failed to start TCP: %v", err)
	}
	defer server.StopTCP()

	addr := server.TCPAddr()
	clientA := dialSession(t, ctx, addr)
	clientB := dialSession(t, ctx, addr)

	loadSide(t, ctx, clientA, "left", "en.json", leftDoc)

	var infoA, infoB api.SessionInfoResponse
	if _, err := clientA.Call(ctx, api.MethodSessionInfo, nil, &infoA); err != nil {
		t.Fatalf("session/info A failed: %v", err)
	}
	if _, err := clientB.Call(ctx, api.MethodSessionInfo, nil, &infoB); err != nil {
		t.Fatalf("session/info B failed: %v", err)
	}
	if len(infoA.Documents) != 1 {
		t.Errorf("expected 1 document on session A, got %d", len(infoA.Documents))
	}
	if len(infoB.Documents) != 0 {
		t.Errorf("expected empty session B, got %d documents", len(infoB.Documents))
	}
	if infoA.SessionID == infoB.SessionID {
		t.Errorf("expected distinct session IDs, both %q", infoA.SessionID)
	}
	if infoA.ServerID != ServerID {
		t.Errorf("expected server ID %q, got %q", ServerID, infoA.ServerID)
	}

	if n := server.tcpListener.SessionCount(); n != 2 {
		t.Errorf("expected 2 sessions, got %d", n)
	}

	clientA.Close()
	clientB.Close()

	// Wait for sessions to unregister
	deadline := time.Now().Add(time.Second)
	for server.tcpListener.SessionCount() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("expected 0 sessions after close, got %d", server.tcpListener.SessionCount())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestServerStdio(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	serverEnd, clientEnd := net.Pipe()
	server := New(&Spec{})

	done := make(chan error, 1)
	go func() {
		done <- server.ServeStdio(ctx, serverEnd, serverEnd)
	}()

	client := jsonrpc2.NewConn(jsonrpc2.NewStream(clientEnd))
	client.Go(ctx, jsonrpc2.MethodNotFoundHandler)

	loadSide(t, ctx, client, "left", "en.json", leftDoc)

	var info api.SessionInfoResponse
	if _, err := client.Call(ctx, api.MethodSessionInfo, nil, &info); err != nil {
		t.Fatalf("session/info failed: %v", err)
	}
	if info.SessionID != "stdio" {
		t.Errorf("expected stdio session ID, got %q", info.SessionID)
	}
	if len(info.Documents) != 1 {
		t.Errorf("expected 1 document, got %d", len(info.Documents))
	}

	client.Close()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("stdio serve error: %v", err)
		}
	case <-time.After(time.Second):
		t.Error("stdio session did not end after client close")
	}
}
