package encode

import "github.com/locforge/catdiff/format"

type EncodeOption func(*EncState)

func EncodeFormat(f format.Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

// FormatFromOpts extracts the format from encode options.
func FormatFromOpts(opts ...EncodeOption) format.Format {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	return es.format
}

func EncodeCompact(v bool) EncodeOption {
	return func(es *EncState) { es.compact = v }
}
func EncodeIndent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}

// EncodeKeepOrder renders object keys in document order instead of
// sorted.
func EncodeKeepOrder(v bool) EncodeOption {
	return func(es *EncState) { es.keepOrder = v }
}
func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}
