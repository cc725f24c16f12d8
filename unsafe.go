package bignum

// Unsafe exposes the operations of a Context without the copies and sign
// restoration done by its methods. Each method documents what it leaves in
// its operands. Results must never alias an operand.
type Unsafe struct {
	c *Context
}

func (c *Context) Unsafe() Unsafe { return Unsafe{c} }

// Mult writes the truncated product of n1 and n2 into r, which must have at
// least WideLen bytes, and returns the normal width view of it. Both
// operands are left as their magnitudes.
func (u Unsafe) Mult(r, n1, n2 BigNum) BigNum { return u.c.unsafeMult(r, n1, n2) }

// Square is Mult of n by itself.
func (u Unsafe) Square(r, n BigNum) BigNum { return u.c.unsafeSquare(r, n) }

// FullMult writes the exact WideLen byte product of n1 and n2 into r.
// Both operands are left as their magnitudes.
func (u Unsafe) FullMult(r, n1, n2 BigNum) BigNum { return u.c.unsafeFullMult(r, n1, n2) }

func (u Unsafe) FullSquare(r, n BigNum) BigNum { return u.c.unsafeFullSquare(r, n) }

// Inverse leaves |n| in n.
func (u Unsafe) Inverse(r, n BigNum) BigNum { return u.c.unsafeInverse(r, n) }

// Div leaves both operands as garbage.
func (u Unsafe) Div(r, n1, n2 BigNum) BigNum { return u.c.unsafeDiv(r, n1, n2) }

// Sqrt does not modify n.
func (u Unsafe) Sqrt(r, n BigNum) BigNum { return u.c.unsafeSqrt(r, n) }

// Exp does not modify n.
func (u Unsafe) Exp(r, n BigNum) BigNum { return u.c.exp(r, n) }

// Ln leaves n as garbage.
func (u Unsafe) Ln(r, n BigNum) BigNum { return u.c.unsafeLn(r, n) }

// SinCos leaves n as garbage.
func (u Unsafe) SinCos(s, cs, n BigNum) { u.c.unsafeSinCos(s, cs, n) }

// Atan leaves n as garbage.
func (u Unsafe) Atan(r, n BigNum) BigNum { return u.c.unsafeAtan(r, n) }

// Atan2 leaves both operands as garbage.
func (u Unsafe) Atan2(r, y, x BigNum) BigNum { return u.c.unsafeAtan2(r, y, x) }

// AppendText formats n like Context.String, leaving n as garbage.
func (u Unsafe) AppendText(b []byte, n BigNum, digits int) []byte {
	c := u.c
	if digits <= 0 {
		digits = c.decimals
	}
	if c.IsNeg(n) {
		b = append(b, '-')
		c.Neg(n, n)
	}
	return c.appendUnsafe(b, n, digits)
}
