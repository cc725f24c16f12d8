package bignum

import (
	"math"
	"math/bits"
)

// Inverse sets r to 1/n. Zero gives the largest positive value and raises
// DivisionByZero; a reciprocal too large for the integer part saturates.
// r may alias n.
func (c *Context) Inverse(r, n BigNum) BigNum {
	return c.unsafeInverse(r, c.Copy(c.reg.cpy1, n))
}

// Div sets r to n1/n2. r may alias either operand.
func (c *Context) Div(r, n1, n2 BigNum) BigNum {
	return c.unsafeDiv(r, c.Copy(c.reg.cpy1, n1), c.Copy(c.reg.cpy2, n2))
}

// unsafeInverse leaves |n| in n. r must not alias n.
func (c *Context) unsafeInverse(r, n BigNum) BigNum {
	neg := c.IsNeg(n)
	if neg {
		c.Neg(n, n)
	}
	if c.IsZero(n) {
		c.cond |= DivisionByZero
		return c.Max(r)
	}
	frac, exp, _ := c.frexp(n)
	f := math.Ldexp(1/frac, -exp)
	if f >= c.maxFloat()+1 {
		return c.saturate(r, neg)
	}

	c.Clear(r)
	c.inverseNewton(r, n, f)
	if neg {
		c.Neg(r, r)
	}
	return r
}

// inverseNewton iterates r = r(2 - rn) for a positive n.
func (c *Context) inverseNewton(r, n BigNum, seed float64) {
	reg := &c.reg
	e := c.escalate()
	defer e.restore()

	c.SetFloat64(e.win(r), seed)
	for e.next() {
		rr, nn := e.win(r), e.win(n)
		c.Copy(reg.invPrev, rr)

		p := c.unsafeMult(reg.invProd, rr, nn)
		c.SetInt64(reg.invTwo, 2)
		c.Sub(reg.invTwo, reg.invTwo, p)
		p = c.unsafeMult(reg.invProd, rr, reg.invTwo)
		c.Copy(rr, p)

		if e.done(rr, reg.invPrev) {
			break
		}
	}
}

// unsafeDiv leaves both operands as garbage. r must not alias either.
//
// Both operands are scaled by the same power of two so that the divisor
// lies in [1/2, 1); its reciprocal is then in (1, 2] and the product of the
// scaled dividend with it is the quotient itself.
func (c *Context) unsafeDiv(r, n1, n2 BigNum) BigNum {
	if c.IsZero(n1) {
		return c.Clear(r)
	}
	s1, s2 := c.IsNeg(n1), c.IsNeg(n2)
	neg := s1 != s2
	if c.IsZero(n2) {
		c.cond |= DivisionByZero
		c.Max(r)
		if s1 {
			c.Neg(r, r)
		}
		return r
	}
	f1, e1, _ := c.frexp(n1)
	f2, e2, _ := c.frexp(n2)
	if f := math.Ldexp(f1/f2, e1-e2); f >= c.maxFloat()+1 {
		return c.saturate(r, neg)
	}

	l := c.bnLength
	if s1 {
		c.Neg(n1, n1)
	}
	if s2 {
		c.Neg(n2, n2)
	}

	shift := 8*(l-c.intLength) - 1 - topBit(n2, l)
	shiftBits(n1, l, shift)
	shiftBits(n2, l, shift)

	c.unsafeInverse(r, n2)
	c.Copy(r, c.unsafeMult(c.reg.divProd, r, n1))
	if neg {
		c.Neg(r, r)
	}
	return r
}

// topBit returns the index of the most significant set bit of the
// non-negative n, or -1 if n is zero.
func topBit(n []byte, l int) int {
	for i := l - 1; i >= 0; i-- {
		if n[i] != 0 {
			return 8*i + bits.Len8(n[i]) - 1
		}
	}
	return -1
}

// shiftBits shifts the non-negative n left by s bits, or right by -s bits.
func shiftBits(n []byte, l, s int) {
	switch {
	case s > 0:
		if k := s / 8; k > 0 {
			copy(n[k:l], n[:l-k])
			clear(n[:k])
		}
		for i := 0; i < s%8; i++ {
			doubleBytes(n, n, l)
		}
	case s < 0:
		s = -s
		if k := s / 8; k > 0 {
			copy(n[:l-k], n[k:l])
			clear(n[l-k : l])
		}
		for i := 0; i < s%8; i++ {
			halfBytes(n, n, l)
		}
	}
}
