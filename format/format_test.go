package format

import (
	"errors"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		err  bool
	}{
		{in: "json", want: JSONFormat},
		{in: "j", want: JSONFormat},
		{in: "JSON", want: JSONFormat},
		{in: "yaml", want: YAMLFormat},
		{in: "yml", want: YAMLFormat},
		{in: "y", want: YAMLFormat},
		{in: "tony", err: true},
		{in: "", err: true},
	}
	for _, tc := range tests {
		got, err := ParseFormat(tc.in)
		if tc.err {
			if !errors.Is(err, ErrBadFormat) {
				t.Errorf("ParseFormat(%q) err = %v, want ErrBadFormat", tc.in, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("ParseFormat(%q) = (%v, %v), want %v", tc.in, got, err, tc.want)
		}
	}
}

func TestFormat_TextRoundTrip(t *testing.T) {
	for _, f := range AllFormats() {
		d, err := f.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%d): %v", f, err)
		}
		var back Format
		if err := back.UnmarshalText(d); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", d, err)
		}
		if back != f {
			t.Errorf("round trip %v -> %q -> %v", f, d, back)
		}
	}
}

func TestDetectPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
		ok   bool
	}{
		{"en-US.json", JSONFormat, true},
		{"de.yaml", YAMLFormat, true},
		{"de.YML", YAMLFormat, true},
		{"notes.txt", 0, false},
		{"noext", 0, false},
	}
	for _, tc := range tests {
		got, ok := DetectPath(tc.path)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("DetectPath(%q) = (%v, %v), want (%v, %v)", tc.path, got, ok, tc.want, tc.ok)
		}
	}
}
