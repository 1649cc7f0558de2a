package analyzer

import "github.com/bits-and-blooms/bitset"

// universe maps a function's declared variable names to stable bit
// indices, so the must/may set lattices below can represent a set of
// variable names as a compact bitset rather than a Go map (grounded on
// godoctor's reaching-definitions and live-variable builders, which use
// the same bitset-per-block-set shape for a different pair of
// analyses).
type universe struct {
	names []string
	index map[string]uint
}

func newUniverse(names []string) *universe {
	u := &universe{names: names, index: make(map[string]uint, len(names))}
	for i, n := range names {
		u.index[n] = uint(i)
	}
	return u
}

func (u *universe) bit(name string) (uint, bool) {
	i, ok := u.index[name]
	return i, ok
}

func (u *universe) full() *bitset.BitSet {
	b := bitset.New(uint(len(u.names)))
	for i := range u.names {
		b.Set(uint(i))
	}
	return b
}

func (u *universe) empty() *bitset.BitSet {
	return bitset.New(uint(len(u.names)))
}

func (u *universe) setOf(names []string) *bitset.BitSet {
	b := u.empty()
	for _, n := range names {
		if i, ok := u.bit(n); ok {
			b.Set(i)
		}
	}
	return b
}

func (u *universe) toNames(b *bitset.BitSet) []string {
	var out []string
	for i, n := range u.names {
		if b.Test(uint(i)) {
			out = append(out, n)
		}
	}
	return out
}

func (u *universe) contains(b *bitset.BitSet, name string) bool {
	i, ok := u.bit(name)
	if !ok {
		return false
	}
	return b.Test(i)
}
