package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/locforge/catdiff/format"
	"github.com/locforge/catdiff/parse"
)

func TestParseSide(t *testing.T) {
	for _, s := range Sides() {
		got, err := ParseSide(string(s))
		if err != nil || got != s {
			t.Errorf("ParseSide(%q) = (%v, %v)", s, got, err)
		}
	}
	for _, bad := range []string{"", "LEFT", "middle"} {
		if _, err := ParseSide(bad); !errors.Is(err, ErrInvalidSide) {
			t.Errorf("ParseSide(%q) err = %v, want ErrInvalidSide", bad, err)
		}
	}
}

func TestSide_Other(t *testing.T) {
	if Left.Other() != Right || Right.Other() != Left {
		t.Error("Other() broken")
	}
}

func TestLoadBytes(t *testing.T) {
	doc, err := LoadBytes(Left, []byte(`{"user":{"profile":{"name":"John"}}}`))
	if err != nil {
		t.Fatal(err)
	}
	if doc.Side != Left {
		t.Errorf("side = %v", doc.Side)
	}
	if doc.Keys != 3 {
		t.Errorf("keys = %d, want 3", doc.Keys)
	}
	if doc.Format != format.JSONFormat {
		t.Errorf("format = %v", doc.Format)
	}
}

func TestLoadBytes_YAML(t *testing.T) {
	doc, err := LoadBytes(Right, []byte("app:\n  title: My App\n"), WithFormat(format.YAMLFormat))
	if err != nil {
		t.Fatal(err)
	}
	if got := doc.Root.Get("app").Get("title").String; got != "My App" {
		t.Errorf("title = %q", got)
	}
}

func TestLoadBytes_Rejections(t *testing.T) {
	tests := []struct {
		name string
		side Side
		data string
		opts []LoadOption
		want error
	}{
		{name: "bad-side", side: Side("top"), data: `{}`, want: ErrInvalidSide},
		{name: "syntax", side: Left, data: `{"a":`, want: parse.ErrParse},
		{name: "array-root", side: Left, data: `[1,2]`, want: ErrNotObject},
		{name: "string-root", side: Left, data: `"hi"`, want: ErrNotObject},
		{name: "null-root", side: Left, data: `null`, want: ErrNotObject},
		{name: "proto-key", side: Left, data: `{"__proto__":{"x":1}}`, want: ErrUnsafeKey},
		{name: "constructor-key", side: Left, data: `{"a":{"constructor":1}}`, want: ErrUnsafeKey},
		{name: "empty-key", side: Left, data: `{"":1}`, want: ErrUnsafeKey},
		{name: "dotted-key", side: Left, data: `{"app.title":"x"}`, want: ErrUnsafeKey},
		{
			name: "over-limit",
			side: Left,
			data: `{"a":{"b":1,"c":2},"d":3}`,
			opts: []LoadOption{WithMaxKeys(3)},
			want: ErrTooManyKeys,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadBytes(tc.side, []byte(tc.data), tc.opts...)
			if !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestLoadBytes_AtLimit(t *testing.T) {
	doc, err := LoadBytes(Left, []byte(`{"a":{"b":1,"c":2},"d":3}`), WithMaxKeys(4))
	if err != nil {
		t.Fatal(err)
	}
	if doc.Keys != 4 {
		t.Errorf("keys = %d, want 4", doc.Keys)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "en-US.json")
	if err := os.WriteFile(path, []byte(`{"app":{"title":"My App"}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, err := LoadFile(Left, path)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Name != "en-US.json" {
		t.Errorf("name = %q", doc.Name)
	}
	if doc.Format != format.JSONFormat {
		t.Errorf("format = %v", doc.Format)
	}
	if doc.Keys != 2 {
		t.Errorf("keys = %d", doc.Keys)
	}
}

func TestLoadFile_YAMLByExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "de.yaml")
	if err := os.WriteFile(path, []byte("app:\n  title: Meine App\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, err := LoadFile(Right, path)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Format != format.YAMLFormat {
		t.Errorf("format = %v", doc.Format)
	}
}

func TestFromNode(t *testing.T) {
	root, err := parse.ParseString(`{"a":1}`)
	if err != nil {
		t.Fatal(err)
	}
	doc, err := FromNode(Left, root)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Root != root {
		t.Error("FromNode copied the tree, want adoption")
	}
}
