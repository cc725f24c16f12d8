package bignum

import (
	"encoding/binary"
	"math/bits"
)

// Every routine in this file works on little endian two's complement byte
// slices whose length l is a multiple of blockSize.

func word(b []byte, i int) uint32 {
	return binary.LittleEndian.Uint32(b[i*blockSize:])
}

func putWord(b []byte, i int, w uint32) {
	binary.LittleEndian.PutUint32(b[i*blockSize:], w)
}

func addBytes(r, a, b []byte, l int) {
	var c uint32
	for i := 0; i < l/blockSize; i++ {
		var s uint32
		s, c = bits.Add32(word(a, i), word(b, i), c)
		putWord(r, i, s)
	}
}

func subBytes(r, a, b []byte, l int) {
	var c uint32
	for i := 0; i < l/blockSize; i++ {
		var s uint32
		s, c = bits.Sub32(word(a, i), word(b, i), c)
		putWord(r, i, s)
	}
}

func negBytes(r, n []byte, l int) {
	c := uint32(1)
	for i := 0; i < l/blockSize; i++ {
		var s uint32
		s, c = bits.Add32(^word(n, i), 0, c)
		putWord(r, i, s)
	}
}

// halfBytes is an arithmetic shift right by one bit.
func halfBytes(r, n []byte, l int) {
	top := l/blockSize - 1
	w := word(n, top)
	carry := w & 1
	putWord(r, top, uint32(int32(w)>>1))
	for i := top - 1; i >= 0; i-- {
		w = word(n, i)
		putWord(r, i, w>>1|carry<<31)
		carry = w & 1
	}
}

func doubleBytes(r, n []byte, l int) {
	var carry uint32
	for i := 0; i < l/blockSize; i++ {
		w := word(n, i)
		putWord(r, i, w<<1|carry)
		carry = w >> 31
	}
}

func isZeroBytes(n []byte, l int) bool {
	for _, b := range n[:l] {
		if b != 0 {
			return false
		}
	}
	return true
}

// cmpBytes compares a and b as signed values, returning -1, 0 or 1.
func cmpBytes(a, b []byte, l int) int {
	if ta, tb := int8(a[l-1]), int8(b[l-1]); ta != tb {
		if ta > tb {
			return 1
		}
		return -1
	}
	for i := l - 2; i >= 0; i-- {
		if a[i] != b[i] {
			if a[i] > b[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

// diffPos returns the 1-based position of the most significant non-zero
// byte of |a-b|, or 0 if they are equal. The difference is left in scratch,
// which may alias b.
func diffPos(scratch, a, b []byte, l int) int {
	subBytes(scratch, a, b, l)
	if scratch[l-1]&0x80 != 0 {
		negBytes(scratch, scratch, l)
	}
	for i := l - 1; i >= 0; i-- {
		if scratch[i] != 0 {
			return i + 1
		}
	}
	return 0
}

// mulIntBytes multiplies n by u modulo 2^(8*l). The result is the correct
// two's complement product whenever it fits.
func mulIntBytes(r, n []byte, l int, u uint32) {
	var c uint32
	for i := 0; i < l/blockSize; i++ {
		hi, lo := bits.Mul32(word(n, i), u)
		var cc uint32
		lo, cc = bits.Add32(lo, c, 0)
		putWord(r, i, lo)
		c = hi + cc
	}
}

// divIntBytes divides the non-negative n by u, truncating.
func divIntBytes(r, n []byte, l int, u uint32) {
	var rem uint32
	for i := l/blockSize - 1; i >= 0; i-- {
		var q uint32
		q, rem = bits.Div32(rem, word(n, i), u)
		putWord(r, i, q)
	}
}

// mulBytes writes the top rl bytes of the 2l byte product of the
// non-negative x and y into z, which must not overlap either operand. rl
// must be a multiple of blockSize between l and 2l; with rl == 2l the
// product is exact.
//
// Columns below the kept window are skipped, so the result may be short by
// a few units in the lowest blocks. The carries they would have produced
// can only reach the kept bytes through the padding below the normal width
// value.
func mulBytes(z, x, y []byte, l, rl int) {
	nw, rw := l/blockSize, rl/blockSize
	off := 2*nw - rw
	clear(z[:rl])

	for i := 0; i < nw; i++ {
		xi := word(x, i)
		var c uint32
		j := off - i
		if j < 0 {
			j = 0
		}
		for ; j < nw; j++ {
			pos := i + j - off
			hi, lo := bits.Mul32(xi, word(y, j))
			var c1, c2 uint32
			lo, c1 = bits.Add32(lo, word(z, pos), 0)
			lo, c2 = bits.Add32(lo, c, 0)
			putWord(z, pos, lo)
			c = hi + c1 + c2
		}
		if pos := i + nw - off; pos >= 0 {
			putWord(z, pos, c)
		}
	}
}

// squareBytes writes the exact 2l byte square of the non-negative x into z,
// which must not overlap x. Each cross product is computed once and the
// sum doubled before the squares on the diagonal are added.
func squareBytes(z, x []byte, l int) {
	nw := l / blockSize
	clear(z[:2*l])

	for i := 0; i < nw; i++ {
		xi := word(x, i)
		var c uint32
		for j := i + 1; j < nw; j++ {
			hi, lo := bits.Mul32(xi, word(x, j))
			var c1, c2 uint32
			lo, c1 = bits.Add32(lo, word(z, i+j), 0)
			lo, c2 = bits.Add32(lo, c, 0)
			putWord(z, i+j, lo)
			c = hi + c1 + c2
		}
		putWord(z, i+nw, c)
	}

	doubleBytes(z, z, 2*l)

	var c uint32
	for i := 0; i < nw; i++ {
		xi := word(x, i)
		hi, lo := bits.Mul32(xi, xi)
		var s uint32
		s, c = bits.Add32(word(z, 2*i), lo, c)
		putWord(z, 2*i, s)
		s, c = bits.Add32(word(z, 2*i+1), hi, c)
		putWord(z, 2*i+1, s)
	}
}
