package ir

// CountKeys returns the number of keys in a document: every object key
// counts once, and object values are counted recursively. Non-objects
// count zero; arrays are opaque and never descended.
func CountKeys(n *Node) int {
	if n == nil || n.Type != ObjectType {
		return 0
	}
	total := len(n.Keys)
	for _, v := range n.Values {
		if v.Type == ObjectType {
			total += CountKeys(v)
		}
	}
	return total
}

// CountKeysWithin counts like CountKeys but gives up as soon as the
// running total exceeds limit, returning (-1, false). Within the limit it
// returns (total, true). Use it to gate large inputs without paying for a
// full count.
func CountKeysWithin(n *Node, limit int) (int, bool) {
	total, ok := countWithin(n, limit, 0)
	if !ok {
		return -1, false
	}
	return total, true
}

func countWithin(n *Node, limit, total int) (int, bool) {
	if n == nil || n.Type != ObjectType {
		return total, true
	}
	total += len(n.Keys)
	if total > limit {
		return total, false
	}
	for _, v := range n.Values {
		if v.Type != ObjectType {
			continue
		}
		var ok bool
		total, ok = countWithin(v, limit, total)
		if !ok {
			return total, false
		}
	}
	return total, true
}
