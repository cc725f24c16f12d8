package bignum

import "math"

// Exp sets r to e**n. Results too large for the integer part saturate.
// r may alias n.
func (c *Context) Exp(r, n BigNum) BigNum {
	return c.exp(r, c.Copy(c.reg.cpy1, n))
}

// Ln sets r to the natural logarithm of n. n <= 0 gives the most negative
// value and raises DomainError. r may alias n.
func (c *Context) Ln(r, n BigNum) BigNum {
	return c.unsafeLn(r, c.Copy(c.reg.cpy1, n))
}

// exp leaves n unchanged. r must not alias n.
func (c *Context) exp(r, n BigNum) BigNum {
	if c.IsZero(n) {
		return c.SetInt64(r, 1)
	}

	f := c.Float64(n)
	limit := math.Log(c.maxFloat() + 1)
	if f >= limit {
		return c.saturate(r, false)
	}

	if f >= 0 {
		return c.expSeries(r, n)
	}

	// e**-x = 1/e**x. Arguments whose positive series would overflow are
	// halved first and the result squared back.
	reg := &c.reg
	c.Neg(reg.expArg, n)
	k := 0
	for ; -f >= limit; k++ {
		c.Half(reg.expArg, reg.expArg)
		f /= 2
	}
	c.expSeries(reg.expPos, reg.expArg)
	c.unsafeInverse(r, reg.expPos)
	for ; k > 0; k-- {
		c.Copy(r, c.unsafeSquare(reg.expProd, r))
	}
	return r
}

// expSeries sums the Taylor series of e**n until a term vanishes at the
// current length.
func (c *Context) expSeries(r, n BigNum) BigNum {
	reg := &c.reg
	c.SetInt64(r, 1)
	c.SetInt64(reg.expTerm, 1)

	nf := c.Float64(n)
	for fact := uint32(1); ; fact++ {
		c.Copy(reg.expN, n)
		if c.Float64(reg.expTerm)*nf < c.maxFloat()/2 {
			p := c.unsafeMult(reg.expProd, reg.expTerm, reg.expN)
			c.DivInt(reg.expTerm, p, fact)
		} else {
			// term*n would overflow the integer part.
			c.DivInt(reg.expTerm, reg.expTerm, fact)
			c.Copy(reg.expTerm, c.unsafeMult(reg.expProd, reg.expTerm, reg.expN))
		}
		if c.IsZero(reg.expTerm) {
			break
		}
		c.Add(r, r, reg.expTerm)
		if c.IsNeg(r) {
			return c.saturate(r, false)
		}
	}
	return r
}

// unsafeLn leaves n as garbage. r must not alias n.
//
// n is scaled by a power of two into [1/2, 1) so the exponentials in the
// Newton step stay small whatever the integer length; the scale is added
// back as a multiple of ln 2.
func (c *Context) unsafeLn(r, n BigNum) BigNum {
	if c.IsNeg(n) || c.IsZero(n) {
		c.cond |= DomainError
		c.Max(r)
		return c.Neg(r, r)
	}
	frac, exp, _ := c.frexp(n)
	f := math.Log(frac) + float64(exp)*math.Ln2
	if math.Abs(f) >= c.maxFloat()+1 {
		return c.saturate(r, f < 0)
	}

	l := c.bnLength
	shift := 8*(l-c.intLength) - 1 - topBit(n, l)
	shiftBits(n, l, shift)
	c.Clear(r)
	c.lnNewton(r, n, -math.Log(c.Float64(n)))
	if shift == 0 {
		return c.Neg(r, r)
	}

	// r holds -ln(m) for the scaled m; ln(n) = ln(m) - shift*ln(2).
	reg := &c.reg
	c.SetInt64(reg.lnHalf, 1)
	c.Half(reg.lnHalf, reg.lnHalf)
	c.Clear(reg.lnTwo)
	c.lnNewton(reg.lnTwo, reg.lnHalf, -math.Log(c.Float64(reg.lnHalf)))
	if shift > 0 {
		c.Add(r, r, c.MulInt(reg.lnTwo, reg.lnTwo, uint32(shift)))
	} else {
		c.Sub(r, r, c.MulInt(reg.lnTwo, reg.lnTwo, uint32(-shift)))
	}
	return c.Neg(r, r)
}

// lnNewton solves n*exp(r) = 1 for r, giving -ln(n), by iterating
// r = r - (n*exp(r) - 1).
func (c *Context) lnNewton(r, n BigNum, seed float64) {
	reg := &c.reg
	e := c.escalate()
	defer e.restore()

	c.SetFloat64(e.win(r), seed)
	for e.next() {
		rr, nn := e.win(r), e.win(n)
		c.Copy(reg.lnPrev, rr)

		c.exp(reg.lnExp, rr)
		p := c.unsafeMult(reg.lnProd, reg.lnExp, nn)
		c.SetInt64(reg.lnOne, 1)
		c.Sub(p, p, reg.lnOne)
		c.Sub(rr, rr, p)

		if e.done(rr, reg.lnPrev) {
			break
		}
	}
}
