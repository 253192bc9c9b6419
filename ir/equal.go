package ir

// Equal reports canonical deep equality between two nodes: the equality
// used to classify values as identical or different.
//
//   - Primitives compare by value; numbers compare numerically across
//     integer and float representations (2 == 2.0).
//   - Arrays are equal iff they have the same length and elements are
//     pairwise equal, in order.
//   - Objects are equal iff they have the same key set and the values
//     agree per key; key order never matters.
//   - An object is never equal to a non-object.
//
// Nil stands for an absent value and equals only nil.
func Equal(a, b *Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Type == ObjectType || b.Type == ObjectType {
		if a.Type != b.Type {
			return false
		}
		return objectsEqual(a, b)
	}
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case NullType:
		return true
	case BoolType:
		return a.Bool == b.Bool
	case StringType:
		return a.String == b.String
	case NumberType:
		return numbersEqual(a, b)
	case ArrayType:
		if len(a.Values) != len(b.Values) {
			return false
		}
		for i := range a.Values {
			if !Equal(a.Values[i], b.Values[i]) {
				return false
			}
		}
		return true
	}
	return false
}

func numbersEqual(a, b *Node) bool {
	if a.Int64 != nil && b.Int64 != nil {
		return *a.Int64 == *b.Int64
	}
	af, aok := numberFloat(a)
	bf, bok := numberFloat(b)
	if aok && bok {
		return af == bf
	}
	if aok != bok {
		return false
	}
	// Neither value fits a float; fall back to the raw literals.
	return a.Number == b.Number
}

func numberFloat(n *Node) (float64, bool) {
	if n.Int64 != nil {
		return float64(*n.Int64), true
	}
	if n.Float64 != nil {
		return *n.Float64, true
	}
	return 0, false
}

func objectsEqual(a, b *Node) bool {
	if len(a.Keys) != len(b.Keys) {
		return false
	}
	bi := make(map[string]int, len(b.Keys))
	for i, k := range b.Keys {
		bi[k] = i
	}
	for i, k := range a.Keys {
		j, ok := bi[k]
		if !ok {
			return false
		}
		if !Equal(a.Values[i], b.Values[j]) {
			return false
		}
	}
	return true
}
