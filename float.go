package bignum

import "math"

// Float64 returns the nearest float64 to n, computed from its most
// significant bytes.
func (c *Context) Float64(n BigNum) float64 {
	frac, exp, neg := c.frexp(n)
	f := math.Ldexp(frac, exp)
	if neg {
		f = -f
	}
	return f
}

// frexp breaks |n| into a fraction in [1/2, 1) and a power of two, so
// magnitudes outside the float64 range keep their exponent. Zero gives
// (0, 0).
func (c *Context) frexp(n BigNum) (frac float64, exp int, neg bool) {
	l := c.bnLength
	m := n
	neg = c.IsNeg(n)
	if neg {
		m = c.Neg(c.reg.flt, n)
	}

	top := l - 1
	for top >= 0 && m[top] == 0 {
		top--
	}
	if top < 0 {
		return 0, 0, neg
	}

	// Up to eight bytes from the top are gathered exactly, so the only
	// rounding is the final conversion.
	var u uint64
	k := 0
	for ; k <= floatBytes && top-k >= 0; k++ {
		u = u<<8 | uint64(m[top-k])
	}
	frac, exp = math.Frexp(float64(u))
	return frac, exp + 8*(top-k+1-(l-c.intLength)), neg
}

// SetFloat64 sets r to f, truncated to the precision of c. NaN becomes zero;
// values too large for the integer part saturate.
func (c *Context) SetFloat64(r BigNum, f float64) BigNum {
	c.Clear(r)
	if math.IsNaN(f) {
		c.cond |= DomainError
		return r
	}
	neg := f < 0
	if neg {
		f = -f
	}
	if f >= c.maxFloat()+1 {
		return c.saturate(r, neg)
	}

	l, fracLen := c.bnLength, c.bnLength-c.intLength
	ip := math.Floor(f)
	u := uint32(ip)
	for i := fracLen; i < l; i++ {
		r[i] = byte(u)
		u >>= 8
	}

	f -= ip
	for i := fracLen - 1; i >= 0 && f != 0; i-- {
		f *= 256
		b := math.Floor(f)
		r[i] = byte(b)
		f -= b
	}

	if neg {
		c.Neg(r, r)
	}
	return r
}
