package ir

import (
	"encoding/binary"
	"hash/maphash"
	"math"
)

// One seed per process so hashes are comparable across calls.
var hashSeed = maphash.MakeSeed()

// Hash returns a 64-bit structural hash of the node, consistent with
// Equal: equal nodes hash equally, regardless of object key order or the
// integer/float representation of a number. Values are only comparable
// within a single process.
// It panics if n is nil.
func Hash(n *Node) uint64 {
	if n == nil {
		panic("ir: Hash called on nil node")
	}

	var h maphash.Hash
	h.SetSeed(hashSeed)

	switch n.Type {
	case NullType:
		h.WriteByte(byte(NullType))
	case BoolType:
		h.WriteByte(byte(BoolType))
		if n.Bool {
			h.WriteByte(1)
		} else {
			h.WriteByte(0)
		}
	case NumberType:
		h.WriteByte(byte(NumberType))
		hashNumber(&h, n)
	case StringType:
		h.WriteByte(byte(StringType))
		h.WriteString(n.String)
	case ArrayType:
		h.WriteByte(byte(ArrayType))
		var b [8]byte
		for _, v := range n.Values {
			binary.LittleEndian.PutUint64(b[:], Hash(v))
			h.Write(b[:])
		}
	case ObjectType:
		h.WriteByte(byte(ObjectType))
		// Combine entries commutatively so key order cannot matter.
		var sum uint64
		for i, k := range n.Keys {
			var eh maphash.Hash
			eh.SetSeed(hashSeed)
			eh.WriteString(k)
			var b [8]byte
			binary.LittleEndian.PutUint64(b[:], Hash(n.Values[i]))
			eh.Write(b[:])
			sum += eh.Sum64()
		}
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], sum)
		h.Write(b[:])
		binary.LittleEndian.PutUint64(b[:], uint64(len(n.Keys)))
		h.Write(b[:])
	}
	return h.Sum64()
}

// hashNumber writes a representation-independent form: any number with a
// float value hashes by that value so 2 and 2.0 agree, matching Equal.
func hashNumber(h *maphash.Hash, n *Node) {
	f, ok := numberFloat(n)
	if !ok {
		h.WriteString(n.Number)
		return
	}
	if f == 0 {
		f = 0 // fold -0 into +0
	}
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], math.Float64bits(f))
	h.Write(b[:])
}
