// Package strdelta computes character-level deltas between two leaf
// strings, for inline highlighting of changed values.
package strdelta

import (
	"strings"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type Op int

const (
	Keep Op = iota
	Delete
	Insert
)

func (o Op) String() string {
	switch o {
	case Keep:
		return "keep"
	case Delete:
		return "delete"
	case Insert:
		return "insert"
	default:
		return "<bad op>"
	}
}

// Span is one run of a delta. Concatenating the Keep and Delete spans
// reproduces the from string; Keep and Insert spans, the to string.
type Span struct {
	Op   Op
	Text string
}

// Diff returns the spans rewriting from into to. Runs of the same op
// are merged and a deletion always precedes the insertion replacing
// it.
func Diff(from, to string) []Span {
	diffCfg := diffpatch.New()
	doMultiLine := strings.Contains(from, "\n") && strings.Contains(to, "\n")
	diffs := diffCfg.DiffMain(from, to, doMultiLine)
	spans := make([]Span, 0, len(diffs))
	for i := range diffs {
		d := &diffs[i]
		switch d.Type {
		case diffpatch.DiffDelete:
			spans = append(spans, Span{Op: Delete, Text: d.Text})
		case diffpatch.DiffInsert:
			spans = append(spans, Span{Op: Insert, Text: d.Text})
		case diffpatch.DiffEqual:
			spans = append(spans, Span{Op: Keep, Text: d.Text})
		}
	}
	return spans
}

// Size returns the number of bytes touched by a delta.
func Size(spans []Span) int {
	n := 0
	for _, s := range spans {
		if s.Op != Keep {
			n += len(s.Text)
		}
	}
	return n
}

var (
	deleteColor = color.New(color.FgRed, color.CrossedOut).SprintFunc()
	insertColor = color.New(color.FgGreen).SprintFunc()
)

// Format renders spans inline, deletions struck out red and insertions
// green. Color degrades to plain text on non-terminals.
func Format(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		switch s.Op {
		case Delete:
			b.WriteString(deleteColor(s.Text))
		case Insert:
			b.WriteString(insertColor(s.Text))
		default:
			b.WriteString(s.Text)
		}
	}
	return b.String()
}

// Markers renders spans with [-..] and [+..] markers, for logs and
// plain output.
func Markers(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		switch s.Op {
		case Delete:
			b.WriteString("[-")
			b.WriteString(s.Text)
			b.WriteString("]")
		case Insert:
			b.WriteString("[+")
			b.WriteString(s.Text)
			b.WriteString("]")
		default:
			b.WriteString(s.Text)
		}
	}
	return b.String()
}
