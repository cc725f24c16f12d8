package bignum

import "math"

// Sqrt sets r to the square root of n. A negative n gives zero and raises
// DomainError. r may alias n.
func (c *Context) Sqrt(r, n BigNum) BigNum {
	return c.unsafeSqrt(r, c.Copy(c.reg.cpy1, n))
}

// unsafeSqrt leaves n unchanged but r must not alias it.
func (c *Context) unsafeSqrt(r, n BigNum) BigNum {
	if c.IsNeg(n) {
		c.cond |= DomainError
		return c.Clear(r)
	}
	if c.IsZero(n) {
		return c.Clear(r)
	}

	// Values below 1/4 are scaled up by an even power of two into [1/4, 1)
	// so the seed survives the short lengths of the first iterations; the
	// root is scaled back by half as much.
	l := c.bnLength
	m := c.Copy(c.reg.sqrtN, n)
	shift := 8*(l-c.intLength) - 1 - topBit(m, l)
	if shift > 1 {
		shift &^= 1
		shiftBits(m, l, shift)
	} else {
		shift = 0
	}

	c.Clear(r)
	c.sqrtNewton(r, m, math.Sqrt(c.Float64(m)))
	shiftBits(r, l, -shift/2)
	return r
}

// sqrtNewton iterates r = (r + n/r)/2.
func (c *Context) sqrtNewton(r, n BigNum, seed float64) {
	reg := &c.reg
	e := c.escalate()
	defer e.restore()

	c.SetFloat64(e.win(r), seed)
	for e.next() {
		rr, nn := e.win(r), e.win(n)
		c.Copy(reg.sqrtPrev, rr)

		c.unsafeDiv(reg.sqrtQ, c.Copy(reg.sqrtA, nn), c.Copy(reg.sqrtB, rr))
		c.Add(rr, rr, reg.sqrtQ)
		c.Half(rr, rr)

		if e.done(rr, reg.sqrtPrev) {
			break
		}
	}
}
