package bignum

import "math"

// Pi sets r to π at the precision of c.
func (c *Context) Pi(r BigNum) BigNum {
	return c.Copy(r, c.piView())
}

// piView returns π at the current length. While a solver escalates this is
// the top bytes of the full precision value.
func (c *Context) piView() BigNum {
	return c.pi[len(c.pi)-c.bnLength:]
}

// computePi evaluates π = 16·atan(1/5) - 4·atan(1/239) with two guard
// blocks below the precision of c.
func (c *Context) computePi() BigNum {
	saved := c.lengths()
	defer c.setLengths(saved)

	target := c.bnLength
	c.bnLength += 2 * blockSize
	c.calcLengths()

	pi, a := c.New(), c.New()
	c.MulInt(pi, c.arctanInv(a, 5), 16)
	c.MulInt(a, c.arctanInv(a, 239), 4)
	c.Sub(pi, pi, a)

	out := make(BigNum, target)
	copy(out, pi[c.bnLength-target:])
	return out
}

// arctanInv sets r to atan(1/m) by its alternating series in 1/m.
func (c *Context) arctanInv(r BigNum, m uint32) BigNum {
	p, t := c.New(), c.New()
	c.DivInt(p, c.SetInt64(p, 1), m)
	c.Copy(r, p)

	m2 := m * m
	for k := uint32(1); ; k++ {
		c.DivInt(p, p, m2)
		if c.IsZero(p) {
			break
		}
		c.DivInt(t, p, 2*k+1)
		if k&1 == 1 {
			c.Sub(r, r, t)
		} else {
			c.Add(r, r, t)
		}
	}
	return r
}

// SinCos sets s to sin(n) and cs to cos(n). s and cs must be distinct; either
// may alias n.
func (c *Context) SinCos(s, cs, n BigNum) {
	c.unsafeSinCos(s, cs, c.Copy(c.reg.cpy1, n))
}

// unsafeSinCos leaves n as garbage. Neither result may alias n.
func (c *Context) unsafeSinCos(s, cs, n BigNum) {
	reg := &c.reg
	pi := c.piView()
	var sinNeg, cosNeg, swap bool

	if c.IsNeg(n) {
		sinNeg = true
		c.Neg(n, n)
	}

	twoPi := c.Double(reg.scTmp, pi)
	if c.Cmp(n, twoPi) >= 0 {
		if k := math.Floor(c.Float64(n) / (2 * math.Pi)); k >= 1 {
			c.Sub(n, n, c.MulInt(reg.scTerm, twoPi, uint32(k)))
		}
		for c.IsNeg(n) {
			c.Add(n, n, twoPi)
		}
		for c.Cmp(n, twoPi) >= 0 {
			c.Sub(n, n, twoPi)
		}
	}

	if c.Cmp(n, pi) >= 0 {
		c.Sub(n, n, pi)
		sinNeg, cosNeg = !sinNeg, !cosNeg
	}
	halfPi := c.Half(reg.scTmp, pi)
	if c.Cmp(n, halfPi) > 0 {
		c.Sub(n, pi, n)
		cosNeg = !cosNeg
	}
	if c.Cmp(n, c.Half(reg.scTerm, halfPi)) > 0 {
		c.Sub(n, halfPi, n)
		swap = true
	}

	if c.IsZero(n) {
		c.Clear(s)
		c.SetInt64(cs, 1)
	} else {
		for i := 0; i < sinCosHalves; i++ {
			c.Half(n, n)
		}
		c.sinCosSeries(s, cs, n)
		for i := 0; i < sinCosHalves; i++ {
			c.Double(s, c.unsafeMult(reg.scProd, s, cs))
			c.Double(cs, c.unsafeSquare(reg.scProd, cs))
			c.Sub(cs, cs, c.SetInt64(reg.scTmp, 1))
		}
	}

	if swap {
		c.Copy(reg.scTmp, s)
		c.Copy(s, cs)
		c.Copy(cs, reg.scTmp)
	}
	if sinNeg {
		c.Neg(s, s)
	}
	if cosNeg {
		c.Neg(cs, cs)
	}
}

// sinCosSeries sums the Taylor series of both functions for a small
// non-negative n, sharing the running term n**k/k!.
func (c *Context) sinCosSeries(s, cs, n BigNum) {
	reg := &c.reg
	c.Copy(s, n)
	c.SetInt64(cs, 1)
	c.Copy(reg.scTerm, n)

	add := false
	for fact := uint32(2); ; add = !add {
		c.DivInt(reg.scTerm, c.unsafeMult(reg.scProd, reg.scTerm, n), fact)
		fact++
		if c.IsZero(reg.scTerm) {
			break
		}
		if add {
			c.Add(cs, cs, reg.scTerm)
		} else {
			c.Sub(cs, cs, reg.scTerm)
		}

		c.DivInt(reg.scTerm, c.unsafeMult(reg.scProd, reg.scTerm, n), fact)
		fact++
		if c.IsZero(reg.scTerm) {
			break
		}
		if add {
			c.Add(s, s, reg.scTerm)
		} else {
			c.Sub(s, s, reg.scTerm)
		}
	}
}

// Atan sets r to the arctangent of n, in (-π/2, π/2). r may alias n.
func (c *Context) Atan(r, n BigNum) BigNum {
	return c.unsafeAtan(r, c.Copy(c.reg.cpy1, n))
}

// unsafeAtan leaves n as garbage. r must not alias n.
func (c *Context) unsafeAtan(r, n BigNum) BigNum {
	reg := &c.reg
	neg := c.IsNeg(n)
	if neg {
		c.Neg(n, n)
	}
	if c.IsZero(n) {
		return c.Clear(r)
	}

	// atan(n) = π/2 - atan(1/n) keeps the Newton iteration on [0, π/4].
	large := c.Cmp(n, c.SetInt64(reg.atanTmp, 1)) > 0
	if large {
		c.Copy(n, c.unsafeInverse(reg.atanTmp, n))
	}

	c.Clear(r)
	c.atanNewton(r, n, math.Atan(c.Float64(n)))

	if large {
		c.Sub(r, c.Half(reg.atanTmp, c.piView()), r)
	}
	if neg {
		c.Neg(r, r)
	}
	return r
}

// atanNewton solves sin(r) - n·cos(r) = 0, iterating
// r = r - cos(r)·(sin(r) - n·cos(r)).
func (c *Context) atanNewton(r, n BigNum, seed float64) {
	reg := &c.reg
	e := c.escalate()
	defer e.restore()

	c.SetFloat64(e.win(r), seed)
	for e.next() {
		rr, nn := e.win(r), e.win(n)
		c.Copy(reg.atanPrev, rr)

		c.unsafeSinCos(reg.atanS, reg.atanC, c.Copy(reg.atanArg, rr))
		c.Copy(reg.atanTmp, reg.atanC)
		c.Sub(reg.atanS, reg.atanS, c.unsafeMult(reg.atanProd, nn, reg.atanTmp))
		c.Sub(rr, rr, c.unsafeMult(reg.atanProd, reg.atanC, reg.atanS))

		if e.done(rr, reg.atanPrev) {
			break
		}
	}
}

// Atan2 sets r to the angle of the point (x, y), in [-π, π]. r may alias
// either operand.
func (c *Context) Atan2(r, y, x BigNum) BigNum {
	return c.unsafeAtan2(r, c.Copy(c.reg.cpy1, y), c.Copy(c.reg.cpy2, x))
}

// unsafeAtan2 leaves both operands as garbage. r must not alias either.
func (c *Context) unsafeAtan2(r, y, x BigNum) BigNum {
	ys, xs := c.Sign(y), c.Sign(x)
	switch {
	case ys == 0:
		if xs < 0 {
			return c.Copy(r, c.piView())
		}
		return c.Clear(r)
	case xs == 0:
		c.Half(r, c.piView())
		if ys < 0 {
			c.Neg(r, r)
		}
		return r
	}

	// The quotient is kept at most 1 in magnitude so it cannot overflow the
	// integer part; atan(y/x) = π/2 - atan(x/y).
	c.Abs(y, y)
	c.Abs(x, x)
	if c.Cmp(y, x) > 0 {
		c.unsafeAtan(r, c.unsafeDiv(c.reg.atan2Q, x, y))
		c.Sub(r, c.Half(c.reg.atan2Q, c.piView()), r)
	} else {
		c.unsafeAtan(r, c.unsafeDiv(c.reg.atan2Q, y, x))
	}
	if xs < 0 {
		c.Sub(r, c.piView(), r)
	}
	if ys < 0 {
		c.Neg(r, r)
	}
	return r
}
