package wfc

import "math/bits"

// bitset is a fixed-size set of pattern indices.
type bitset []uint64

func newBitset(n int) bitset {
	return make(bitset, (n+63)/64)
}

func fullBitset(n int) bitset {
	b := newBitset(n)
	for i := 0; i < n; i++ {
		b.set(i)
	}
	return b
}

func (b bitset) set(i int) {
	b[i/64] |= 1 << (uint(i) % 64)
}

func (b bitset) has(i int) bool {
	return b[i/64]&(1<<(uint(i)%64)) != 0
}

func (b bitset) count() int {
	n := 0
	for _, w := range b {
		n += bits.OnesCount64(w)
	}
	return n
}

func (b bitset) orWith(o bitset) {
	for i := range b {
		b[i] |= o[i]
	}
}

// intersect stores b&o into b and reports whether b changed.
func (b bitset) intersect(o bitset) bool {
	changed := false
	for i := range b {
		v := b[i] & o[i]
		if v != b[i] {
			b[i] = v
			changed = true
		}
	}
	return changed
}

// members returns the indices in ascending order.
func (b bitset) members() []int {
	var out []int
	for wi, w := range b {
		for w != 0 {
			tz := bits.TrailingZeros64(w)
			out = append(out, wi*64+tz)
			w &= w - 1
		}
	}
	return out
}
