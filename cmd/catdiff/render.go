package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/locforge/catdiff/compare"
	"github.com/locforge/catdiff/ir"
	"github.com/locforge/catdiff/mergetree"
	"github.com/locforge/catdiff/strdelta"
)

// renderer writes comparison records and reconciled trees as
// glyph-prefixed lines, one comparison unit per line.
type renderer struct {
	w       io.Writer
	colored bool
	inline  bool
	sfmt    map[compare.Status]func(a ...any) string
}

func newRenderer(w io.Writer, colored, inline bool) *renderer {
	r := &renderer{w: w, colored: colored, inline: inline}
	if colored {
		r.sfmt = map[compare.Status]func(a ...any) string{
			compare.Identical:    color.New(color.Faint).SprintFunc(),
			compare.Different:    color.New(color.FgYellow).SprintFunc(),
			compare.MissingLeft:  color.New(color.FgGreen).SprintFunc(),
			compare.MissingRight: color.New(color.FgRed).SprintFunc(),
		}
	}
	return r
}

func (r *renderer) paint(s compare.Status, text string) string {
	if f := r.sfmt[s]; f != nil {
		return f(text)
	}
	return text
}

// glyphs read left to right: a key only the right side has is an
// addition, a key only the left side has is a deletion.
func glyph(s compare.Status) string {
	switch s {
	case compare.Identical:
		return "="
	case compare.Different:
		return "~"
	case compare.MissingLeft:
		return "+"
	case compare.MissingRight:
		return "-"
	}
	return "?"
}

func (r *renderer) records(recs []compare.Record) {
	width := 0
	for _, rec := range recs {
		if n := len(rec.Path); n > width {
			width = n
		}
	}
	for _, rec := range recs {
		fmt.Fprintln(r.w, r.recordLine(rec, width))
	}
}

func (r *renderer) recordLine(rec compare.Record, width int) string {
	head := r.paint(rec.Status, fmt.Sprintf("%s %-*s", glyph(rec.Status), width, rec.Path))
	switch rec.Status {
	case compare.MissingLeft:
		return fmt.Sprintf("%s  %s", head, ir.EncodeJSON(rec.Right))
	case compare.Different:
		if r.inline && rec.Left.Type == ir.StringType && rec.Right.Type == ir.StringType {
			return fmt.Sprintf("%s  \"%s\"", head, r.delta(rec.Left.String, rec.Right.String))
		}
		return fmt.Sprintf("%s  %s -> %s", head, ir.EncodeJSON(rec.Left), ir.EncodeJSON(rec.Right))
	}
	return fmt.Sprintf("%s  %s", head, ir.EncodeJSON(rec.Left))
}

func (r *renderer) delta(from, to string) string {
	spans := strdelta.Diff(from, to)
	if r.colored {
		return strdelta.Format(spans)
	}
	return strdelta.Markers(spans)
}

func (r *renderer) summary(s compare.Summary) {
	fmt.Fprintf(r.w, "%d keys: %d identical, %d different, %d missing-left, %d missing-right\n",
		s.Total, s.Identical, s.Different, s.MissingLeft, s.MissingRight)
}

// tree renders one level per indent step. Container rows stay
// unbadged; their status only summarizes the leaves below.
func (r *renderer) tree(nodes []*mergetree.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, n := range nodes {
		if n.IsContainer {
			fmt.Fprintf(r.w, "%s%s/\n", indent, n.Key)
			r.tree(n.Children, depth+1)
			continue
		}
		fmt.Fprintf(r.w, "%s%s\n", indent, r.leafLine(n))
	}
}

func (r *renderer) leafLine(n *mergetree.Node) string {
	head := r.paint(n.Status, fmt.Sprintf("%s %s:", glyph(n.Status), n.Key))
	switch n.Status {
	case compare.MissingLeft:
		return fmt.Sprintf("%s %s", head, ir.EncodeJSON(n.Right))
	case compare.Different:
		return fmt.Sprintf("%s %s -> %s", head, ir.EncodeJSON(n.Left), ir.EncodeJSON(n.Right))
	}
	return fmt.Sprintf("%s %s", head, ir.EncodeJSON(n.Left))
}
