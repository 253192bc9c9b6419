package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
)

// DecodeJSON parses one JSON document into a node, preserving object key
// order. Numbers land in three tiers: int64 when the literal is a 64-bit
// integer, float64 when it fits a float, the raw literal otherwise. A key
// repeated within an object keeps its first position and takes its last
// value, as JSON.parse does. Trailing non-whitespace input is an error.
func DecodeJSON(data []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	n, err := decodeValue(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrJSON, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after document", ErrJSON)
	}
	return n, nil
}

func decodeValue(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		}
		return nil, fmt.Errorf("unexpected %q", t.String())
	case string:
		return FromString(t), nil
	case json.Number:
		return numberNode(t), nil
	case bool:
		return FromBool(t), nil
	case nil:
		return Null(), nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

func decodeObject(dec *json.Decoder) (*Node, error) {
	res := &Node{Type: ObjectType}
	index := map[string]int{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key %v is not a string", tok)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		if i, dup := index[key]; dup {
			res.Values[i] = val
			continue
		}
		index[key] = len(res.Keys)
		res.Keys = append(res.Keys, key)
		res.Values = append(res.Values, val)
	}
	// consume '}'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return res, nil
}

func decodeArray(dec *json.Decoder) (*Node, error) {
	res := &Node{Type: ArrayType}
	for dec.More() {
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		res.Values = append(res.Values, val)
	}
	// consume ']'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return res, nil
}

func numberNode(num json.Number) *Node {
	if i, err := strconv.ParseInt(num.String(), 10, 64); err == nil {
		return FromInt(i)
	}
	if f, err := strconv.ParseFloat(num.String(), 64); err == nil {
		return FromFloat(f)
	}
	return &Node{Type: NumberType, Number: num.String()}
}

// EncodeJSON renders the node as compact JSON, object keys in node order.
func EncodeJSON(n *Node) []byte {
	return AppendJSON(nil, n)
}

// AppendJSON appends the compact JSON form of n to dst.
func AppendJSON(dst []byte, n *Node) []byte {
	if n == nil {
		return append(dst, "null"...)
	}
	switch n.Type {
	case NullType:
		return append(dst, "null"...)
	case BoolType:
		if n.Bool {
			return append(dst, "true"...)
		}
		return append(dst, "false"...)
	case NumberType:
		return appendNumber(dst, n)
	case StringType:
		return AppendJSONString(dst, n.String)
	case ArrayType:
		dst = append(dst, '[')
		for i, v := range n.Values {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = AppendJSON(dst, v)
		}
		return append(dst, ']')
	case ObjectType:
		dst = append(dst, '{')
		for i, k := range n.Keys {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = AppendJSONString(dst, k)
			dst = append(dst, ':')
			dst = AppendJSON(dst, n.Values[i])
		}
		return append(dst, '}')
	}
	return dst
}

func appendNumber(dst []byte, n *Node) []byte {
	switch {
	case n.Int64 != nil:
		return strconv.AppendInt(dst, *n.Int64, 10)
	case n.Float64 != nil:
		f := *n.Float64
		if math.IsNaN(f) || math.IsInf(f, 0) {
			// JSON has no such literal; JSON.stringify emits null.
			return append(dst, "null"...)
		}
		return strconv.AppendFloat(dst, f, 'g', -1, 64)
	default:
		return append(dst, n.Number...)
	}
}

const hexDigits = "0123456789abcdef"

// AppendJSONString appends s as a JSON string literal. UTF-8 passes
// through unescaped; only quotes, backslashes and control characters are
// escaped.
func AppendJSONString(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"' || c == '\\':
			dst = append(dst, '\\', c)
		case c == '\n':
			dst = append(dst, '\\', 'n')
		case c == '\r':
			dst = append(dst, '\\', 'r')
		case c == '\t':
			dst = append(dst, '\\', 't')
		case c < 0x20:
			dst = append(dst, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xf])
		default:
			dst = append(dst, c)
		}
	}
	return append(dst, '"')
}

// MarshalJSON renders the document form, not the struct fields, so nodes
// embed directly in wire types.
func (n *Node) MarshalJSON() ([]byte, error) {
	return EncodeJSON(n), nil
}

func (n *Node) UnmarshalJSON(d []byte) error {
	dn, err := DecodeJSON(d)
	if err != nil {
		return err
	}
	*n = *dn
	return nil
}
