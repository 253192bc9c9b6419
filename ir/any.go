package ir

import (
	"fmt"
	"slices"
	"time"
)

// FromAny converts plain Go values to nodes. Maps become objects with
// sorted keys (use FromPairs when order matters), slices become arrays,
// numbers keep integer form when they have one. Unsupported types error.
func FromAny(v any) (*Node, error) {
	switch t := v.(type) {
	case nil:
		return Null(), nil
	case *Node:
		return t, nil
	case bool:
		return FromBool(t), nil
	case string:
		return FromString(t), nil
	case int:
		return FromInt(int64(t)), nil
	case int8:
		return FromInt(int64(t)), nil
	case int16:
		return FromInt(int64(t)), nil
	case int32:
		return FromInt(int64(t)), nil
	case int64:
		return FromInt(t), nil
	case uint:
		return fromUint(uint64(t))
	case uint8:
		return FromInt(int64(t)), nil
	case uint16:
		return FromInt(int64(t)), nil
	case uint32:
		return FromInt(int64(t)), nil
	case uint64:
		return fromUint(t)
	case float32:
		return FromFloat(float64(t)), nil
	case float64:
		return FromFloat(t), nil
	case time.Time:
		return FromString(t.Format(time.RFC3339)), nil
	case []any:
		vs := make([]*Node, len(t))
		for i, e := range t {
			n, err := FromAny(e)
			if err != nil {
				return nil, err
			}
			vs[i] = n
		}
		return FromSlice(vs), nil
	case map[string]any:
		res := &Node{Type: ObjectType}
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			n, err := FromAny(t[k])
			if err != nil {
				return nil, err
			}
			res.Set(k, n)
		}
		return res, nil
	}
	return nil, fmt.Errorf("cannot represent %T", v)
}

func fromUint(u uint64) (*Node, error) {
	if u <= 1<<63-1 {
		return FromInt(int64(u)), nil
	}
	return FromFloat(float64(u)), nil
}

// ToAny converts a node to plain Go values: objects to map[string]any
// (order dropped), arrays to []any, numbers to int64 or float64 or the
// raw literal string.
func ToAny(n *Node) any {
	if n == nil {
		return nil
	}
	switch n.Type {
	case NullType:
		return nil
	case BoolType:
		return n.Bool
	case StringType:
		return n.String
	case NumberType:
		switch {
		case n.Int64 != nil:
			return *n.Int64
		case n.Float64 != nil:
			return *n.Float64
		default:
			return n.Number
		}
	case ArrayType:
		res := make([]any, len(n.Values))
		for i, v := range n.Values {
			res[i] = ToAny(v)
		}
		return res
	case ObjectType:
		res := make(map[string]any, len(n.Keys))
		for i, k := range n.Keys {
			res[k] = ToAny(n.Values[i])
		}
		return res
	}
	return nil
}
