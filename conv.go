package bignum

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// SetInt64 sets r to v. Values outside the integer part saturate.
func (c *Context) SetInt64(r BigNum, v int64) BigNum {
	max := int64(1)<<(8*uint(c.intLength)-1) - 1
	if v > max || v < -max-1 {
		return c.saturate(r, v < 0)
	}
	c.Clear(r)
	for i := c.bnLength - c.intLength; i < c.bnLength; i++ {
		r[i] = byte(v)
		v >>= 8
	}
	return r
}

// Int64 returns the integer part of n, rounded towards negative infinity.
func (c *Context) Int64(n BigNum) int64 {
	var v int64
	for i := c.bnLength - 1; i >= c.bnLength-c.intLength; i-- {
		v = v<<8 | int64(n[i])
	}
	shift := 64 - 8*uint(c.intLength)
	return v << shift >> shift
}

// SetString sets r to the value of s, which must have the form
// [+-]digits[.digits] or [+-].digits. Fraction digits beyond the precision
// of c are truncated.
func (c *Context) SetString(r BigNum, s string) error {
	in := s
	neg := false
	if len(s) > 0 && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}

	ip, fp := s, ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		ip, fp = s[:dot], s[dot+1:]
	}
	if ip == "" && fp == "" || !allDigits(ip) || !allDigits(fp) {
		return errors.Wrapf(ErrSyntax, "%q", in)
	}

	var iv uint64
	if ip != "" {
		var err error
		if iv, err = strconv.ParseUint(ip, 10, 64); err != nil {
			return errors.Wrapf(ErrRange, "%q", in)
		}
	}
	max := uint64(1)<<(8*uint(c.intLength)-1) - 1
	if iv > max+1 || iv == max+1 && !neg {
		return errors.Wrapf(ErrRange, "%q", in)
	}

	// Digits are shifted in from the least significant: put each one in
	// the ones byte and divide the lot by ten.
	c.Clear(r)
	ones := c.bnLength - c.intLength
	for i := len(fp) - 1; i >= 0; i-- {
		r[ones] = fp[i] - '0'
		divIntBytes(r, r, c.bnLength, 10)
	}
	if iv == max+1 && !isZeroBytes(r, ones) {
		return errors.Wrapf(ErrRange, "%q", in)
	}
	for i := ones; i < c.bnLength; i++ {
		r[i] = byte(iv)
		iv >>= 8
	}
	if neg {
		c.Neg(r, r)
	}
	return nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// String formats n in fixed notation with up to digits decimal digits after
// the point (Decimals() if digits <= 0). The fraction is truncated, and the
// expansion stops early once the remaining fraction is zero.
func (c *Context) String(n BigNum, digits int) string {
	return string(c.AppendText(nil, n, digits))
}

// AppendText is String appending to b.
func (c *Context) AppendText(b []byte, n BigNum, digits int) []byte {
	if digits <= 0 {
		digits = c.decimals
	}
	m := c.Copy(c.reg.str, n)
	if c.IsNeg(m) {
		b = append(b, '-')
		c.Neg(m, m)
	}
	return c.appendUnsafe(b, m, digits)
}

// appendUnsafe formats the non-negative m, destroying it.
func (c *Context) appendUnsafe(b []byte, m BigNum, digits int) []byte {
	l, ones := c.bnLength, c.bnLength-c.intLength

	var iv uint64
	for i := l - 1; i >= ones; i-- {
		iv = iv<<8 | uint64(m[i])
	}
	b = strconv.AppendUint(b, iv, 10)

	dot := false
	for d := 0; d < digits; d++ {
		clear(m[ones:l])
		if isZeroBytes(m, l) {
			break
		}
		mulIntBytes(m, m, l, 10)
		if !dot {
			b = append(b, '.')
			dot = true
		}
		b = append(b, '0'+m[ones])
	}
	return b
}
