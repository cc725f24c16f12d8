package bignum

// mulSigned leaves the magnitudes of n1 and n2 in place of the operands and
// writes the top rl bytes of their signed product into r.
func (c *Context) mulSigned(r, n1, n2 BigNum, rl int) BigNum {
	l := c.bnLength
	same := sameBigNum(n1, n2)

	s1 := c.IsNeg(n1)
	if s1 {
		negBytes(n1, n1, l)
	}
	s2 := s1
	if !same {
		if s2 = c.IsNeg(n2); s2 {
			negBytes(n2, n2, l)
		}
	}

	if same && rl == 2*l {
		squareBytes(r, n1, l)
	} else {
		mulBytes(r, n1, n2, l, rl)
	}
	if s1 != s2 {
		negBytes(r, r, rl)
	}
	return r
}

// unsafeMult writes the truncated product into r (at least WideLen bytes,
// not overlapping either operand) and returns the normal width view of it.
// The operands are left as their magnitudes.
func (c *Context) unsafeMult(r, n1, n2 BigNum) BigNum {
	return c.mulSigned(r, n1, n2, c.rLength)[c.shiftFactor:]
}

func (c *Context) unsafeSquare(r, n BigNum) BigNum {
	return c.mulSigned(r, n, n, c.rLength)[c.shiftFactor:]
}

func (c *Context) unsafeFullMult(r, n1, n2 BigNum) BigNum {
	return c.mulSigned(r, n1, n2, 2*c.bnLength)
}

func (c *Context) unsafeFullSquare(r, n BigNum) BigNum {
	return c.mulSigned(r, n, n, 2*c.bnLength)
}

// restoreSigns undoes the in-place negation done by mulSigned.
func (c *Context) restoreSigns(n1, n2 BigNum, s1, s2 bool) {
	if s1 {
		c.Neg(n1, n1)
	}
	if s2 && !sameBigNum(n1, n2) {
		c.Neg(n2, n2)
	}
}

// Mult sets r to n1*n2. The product is computed to more bytes than Len and
// truncated, so the last byte or so may be short of the exact product. r may
// alias either operand.
func (c *Context) Mult(r, n1, n2 BigNum) BigNum {
	s1, s2 := c.IsNeg(n1), c.IsNeg(n2)
	p := c.unsafeMult(c.reg.prod, n1, n2)
	c.restoreSigns(n1, n2, s1, s2)
	return c.Copy(r, p)
}

// Square sets r to n*n. r may alias n.
func (c *Context) Square(r, n BigNum) BigNum {
	s := c.IsNeg(n)
	p := c.unsafeSquare(c.reg.prod, n)
	c.restoreSigns(n, n, s, false)
	return c.Copy(r, p)
}

// FullMult sets the WideLen bytes of r to the exact product of n1 and n2.
// The result has twice the integer bytes of a normal BigNum; Narrow
// extracts the normal width value.
func (c *Context) FullMult(r, n1, n2 BigNum) BigNum {
	s1, s2 := c.IsNeg(n1), c.IsNeg(n2)
	p := c.unsafeFullMult(c.reg.prod, n1, n2)
	c.restoreSigns(n1, n2, s1, s2)
	copy(r[:2*c.bnLength], p[:2*c.bnLength])
	return r
}

// FullSquare sets the WideLen bytes of r to the exact square of n.
func (c *Context) FullSquare(r, n BigNum) BigNum {
	s := c.IsNeg(n)
	p := c.unsafeFullSquare(c.reg.prod, n)
	c.restoreSigns(n, n, s, false)
	copy(r[:2*c.bnLength], p[:2*c.bnLength])
	return r
}

// Narrow sets r to the normal width value held in the result of FullMult
// or FullSquare. Integer bytes above IntLen are dropped.
func (c *Context) Narrow(r, wide BigNum) BigNum {
	off := c.bnLength - c.intLength
	copy(r[:c.bnLength], wide[off:off+c.bnLength])
	return r
}

// MulInt sets r to n*u. Overflow of the integer part wraps.
func (c *Context) MulInt(r, n BigNum, u uint32) BigNum {
	mulIntBytes(r, n, c.bnLength, u)
	return r
}

// DivInt sets r to n/u, truncated towards zero. Dividing by zero saturates
// with the sign of n and raises DivisionByZero.
func (c *Context) DivInt(r, n BigNum, u uint32) BigNum {
	neg := c.IsNeg(n)
	if u == 0 {
		c.cond |= DivisionByZero
		return c.saturate(r, neg)
	}
	if neg {
		c.Neg(r, n)
		divIntBytes(r, r, c.bnLength, u)
		return c.Neg(r, r)
	}
	divIntBytes(r, n, c.bnLength, u)
	return r
}
