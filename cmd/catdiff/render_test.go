package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/locforge/catdiff"
	"github.com/locforge/catdiff/catalog"
	"github.com/locforge/catdiff/compare"
	"github.com/locforge/catdiff/ir"
)

func testSession(t *testing.T) *catdiff.Session {
	t.Helper()
	sess := catdiff.NewSession()
	docs := map[catalog.Side]string{
		catalog.Left:  `{"app":{"title":"My App","subtitle":"Welcome"},"menu":{"open":"Open"}}`,
		catalog.Right: `{"app":{"title":"Meine App"},"menu":{"open":"Offnen","close":"Schliessen"}}`,
	}
	for side, src := range docs {
		doc, err := catalog.LoadBytes(side, []byte(src))
		if err != nil {
			t.Fatal(err)
		}
		if err := sess.SetDocument(doc); err != nil {
			t.Fatal(err)
		}
	}
	return sess
}

func TestRenderRecords(t *testing.T) {
	sess := testSession(t)
	recs := sess.Compare()

	var buf bytes.Buffer
	r := newRenderer(&buf, false, false)
	r.records(recs)
	r.summary(compare.Summarize(recs))

	got := buf.String()
	for _, want := range []string{
		"~ app.title",
		`"My App" -> "Meine App"`,
		"- app.subtitle",
		`"Welcome"`,
		"+ menu.close",
		`"Schliessen"`,
		"4 keys: 0 identical, 2 different, 1 missing-left, 1 missing-right",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q in:\n%s", want, got)
		}
	}
}

func TestRenderRecordsInline(t *testing.T) {
	recs := []compare.Record{{
		Path:   "app.title",
		Status: compare.Different,
		Left:   ir.FromString("My App"),
		Right:  ir.FromString("Meine App"),
	}}

	var buf bytes.Buffer
	r := newRenderer(&buf, false, true)
	r.records(recs)

	got := buf.String()
	if !strings.Contains(got, "[+") && !strings.Contains(got, "[-") {
		t.Errorf("expected delta markers in %q", got)
	}
	if strings.Contains(got, "->") {
		t.Errorf("inline rendering should replace the value pair in %q", got)
	}
}

func TestRenderTree(t *testing.T) {
	sess := testSession(t)

	var buf bytes.Buffer
	r := newRenderer(&buf, false, false)
	r.tree(sess.Tree(), 0)

	want := `app/
  - subtitle: "Welcome"
  ~ title: "My App" -> "Meine App"
menu/
  + close: "Schliessen"
  ~ open: "Open" -> "Offnen"
`
	if got := buf.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestSetOpt(t *testing.T) {
	cfg := &ExportConfig{MainConfig: &MainConfig{}}
	for _, tc := range []struct {
		arg  string
		want *ir.Node
	}{
		{"app.title=hello", ir.FromString("hello")},
		{"app.count=3", ir.FromInt(3)},
		{"app.on=true", ir.FromBool(true)},
		{`app.quoted="3"`, ir.FromString("3")},
	} {
		if _, err := cfg.setOpt(nil, tc.arg); err != nil {
			t.Fatalf("%s: %v", tc.arg, err)
		}
		got := cfg.sets[len(cfg.sets)-1]
		if !ir.Equal(got.value, tc.want) {
			t.Errorf("%s: got %s, want %s", tc.arg, ir.EncodeJSON(got.value), ir.EncodeJSON(tc.want))
		}
	}
	if got := cfg.sets[0].path; got != "app.title" {
		t.Errorf("path: got %q", got)
	}
	if _, err := cfg.setOpt(nil, "no-equals-sign"); err == nil {
		t.Error("expected usage error without '='")
	}
}
