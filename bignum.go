package bignum

// BigNum is a signed fixed-point number stored little endian in two's
// complement. For a Context c, the top c.IntLen() bytes of the first c.Len()
// bytes hold the integer part, the rest hold the fraction, and the top bit
// of byte c.Len()-1 is the sign. A BigNum may be longer than c.Len(); the
// extra bytes are ignored.
type BigNum []byte

func sameBigNum(a, b BigNum) bool {
	return len(a) > 0 && len(b) > 0 && &a[0] == &b[0]
}

// Clear sets r to zero.
func (c *Context) Clear(r BigNum) BigNum {
	clear(r[:c.bnLength])
	return r
}

// Max sets r to the largest positive value.
func (c *Context) Max(r BigNum) BigNum {
	l := c.bnLength
	for i := 0; i < l-1; i++ {
		r[i] = 0xFF
	}
	r[l-1] = 0x7F
	return r
}

// saturate sets r to the largest value with the given sign and raises
// Saturated.
func (c *Context) saturate(r BigNum, neg bool) BigNum {
	c.cond |= Saturated
	c.Max(r)
	if neg {
		c.Neg(r, r)
	}
	return r
}

func (c *Context) Copy(r, n BigNum) BigNum {
	copy(r[:c.bnLength], n[:c.bnLength])
	return r
}

func (c *Context) Neg(r, n BigNum) BigNum {
	negBytes(r, n, c.bnLength)
	return r
}

func (c *Context) Abs(r, n BigNum) BigNum {
	if c.IsNeg(n) {
		return c.Neg(r, n)
	}
	return c.Copy(r, n)
}

func (c *Context) IsNeg(n BigNum) bool { return n[c.bnLength-1]&0x80 != 0 }

func (c *Context) IsZero(n BigNum) bool { return isZeroBytes(n, c.bnLength) }

// Sign returns -1, 0 or 1 as n is negative, zero or positive.
func (c *Context) Sign(n BigNum) int {
	switch {
	case c.IsNeg(n):
		return -1
	case c.IsZero(n):
		return 0
	}
	return 1
}

// Cmp returns -1, 0 or 1 as a is less than, equal to or greater than b.
func (c *Context) Cmp(a, b BigNum) int {
	return cmpBytes(a, b, c.bnLength)
}

// Double sets r to 2n.
func (c *Context) Double(r, n BigNum) BigNum {
	doubleBytes(r, n, c.bnLength)
	return r
}

// Half sets r to n/2, rounding towards negative infinity.
func (c *Context) Half(r, n BigNum) BigNum {
	halfBytes(r, n, c.bnLength)
	return r
}

// Add sets r to a+b. Overflow of the integer part wraps. r may alias either
// operand.
func (c *Context) Add(r, a, b BigNum) BigNum {
	addBytes(r, a, b, c.bnLength)
	return r
}

// Sub sets r to a-b. Overflow of the integer part wraps. r may alias either
// operand.
func (c *Context) Sub(r, a, b BigNum) BigNum {
	subBytes(r, a, b, c.bnLength)
	return r
}

// Convert sets r, a BigNum for c, to n, a BigNum for from. The integer part
// keeps as many low bytes as both contexts have room for; the fraction is
// truncated or zero extended.
func (c *Context) Convert(r BigNum, from *Context, n BigNum) BigNum {
	newFrac, oldFrac := c.bnLength-c.intLength, from.bnLength-from.intLength
	ints := c.intLength
	if from.intLength < ints {
		ints = from.intLength
	}

	neg := from.IsNeg(n)
	clear(r[:c.bnLength])
	if newFrac > oldFrac {
		copy(r[newFrac-oldFrac:newFrac+ints], n[:oldFrac+ints])
	} else {
		copy(r[:newFrac+ints], n[oldFrac-newFrac:oldFrac+ints])
	}
	if neg {
		for i := newFrac + ints; i < c.bnLength; i++ {
			r[i] = 0xFF
		}
	}
	return r
}
