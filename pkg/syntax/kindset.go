package syntax

import "math/bits"

const kindSetWords = (int(kindCount) + 63) / 64

// KindSet is a bit set over Kind.
type KindSet [kindSetWords]uint64

// KindSetOf returns the set containing kinds.
func KindSetOf(kinds ...Kind) KindSet {
	var s KindSet
	for _, k := range kinds {
		s[k/64] |= 1 << (k % 64)
	}
	return s
}

// Has reports whether k is in the set.
func (s KindSet) Has(k Kind) bool {
	if k >= kindCount {
		return false
	}
	return s[k/64]&(1<<(k%64)) != 0
}

// With returns the set with k added.
func (s KindSet) With(k Kind) KindSet {
	s[k/64] |= 1 << (k % 64)
	return s
}

// Union returns the union of s and other.
func (s KindSet) Union(other KindSet) KindSet {
	for i := range s {
		s[i] |= other[i]
	}
	return s
}

// IsEmpty reports whether the set has no members.
func (s KindSet) IsEmpty() bool {
	for _, w := range s {
		if w != 0 {
			return false
		}
	}
	return true
}

// Len returns the number of kinds in the set.
func (s KindSet) Len() int {
	n := 0
	for _, w := range s {
		n += bits.OnesCount64(w)
	}
	return n
}

// Kinds returns the members in ascending order.
func (s KindSet) Kinds() []Kind {
	var out []Kind
	for i, w := range s {
		for w != 0 {
			bit := bits.TrailingZeros64(w)
			out = append(out, Kind(i*64+bit))
			w &^= 1 << bit
		}
	}
	return out
}
