package bignum

type RandSource interface {
	Uint64() uint64
}

// Rand sets r to a random value in [0, 1).
func (c *Context) Rand(r BigNum, source RandSource) BigNum {
	fracLen := c.bnLength - c.intLength
	var v uint64
	for i := 0; i < fracLen; i++ {
		if i%8 == 0 {
			v = source.Uint64()
		}
		r[i] = byte(v)
		v >>= 8
	}
	clear(r[fracLen:c.bnLength])
	return r
}

// DifferencePos returns the 1-based position of the most significant
// non-zero byte of |a-b|, or 0 if a == b. The Newton solvers stop once two
// successive iterates are within 3 bytes of each other.
func (c *Context) DifferencePos(a, b BigNum) int {
	return diffPos(c.reg.prod, a, b, c.bnLength)
}
