package bignum

import (
	"math"

	"github.com/pkg/errors"
)

// Context holds the precision every BigNum operation works at, along with the
// scratch registers the solvers use and π at that precision.
//
// A Context is not safe for concurrent use. Use Clone to give each goroutine
// its own.
type Context struct {
	bnLength    int // total bytes
	intLength   int // integer bytes, the top ones
	padding     int // extra bytes kept below a truncated product
	rLength     int // bytes in a truncated product
	shiftFactor int // offset of the normal width value in a truncated product
	decimals    int

	noEscalation bool
	cond         Condition

	pi  BigNum
	reg registers
}

// registers are owned by exactly one routine each so that solvers may call
// each other without clobbering a caller's state.
type registers struct {
	prod BigNum // safe tier products
	flt  BigNum // Float64
	str  BigNum // String
	cpy1 BigNum // safe tier operand copies
	cpy2 BigNum

	invProd, invTwo, invPrev BigNum
	divProd                  BigNum
	sqrtA, sqrtB             BigNum
	sqrtQ, sqrtPrev, sqrtN   BigNum

	expTerm, expProd, expN, expArg, expPos BigNum
	lnExp, lnProd, lnOne, lnPrev           BigNum
	lnTwo, lnHalf                          BigNum

	scTerm, scProd, scTmp BigNum

	atanS, atanC, atanArg  BigNum
	atanProd, atanTmp      BigNum
	atanPrev, atan2Q       BigNum
}

func (r *registers) all() []*BigNum {
	return []*BigNum{
		&r.prod, &r.flt, &r.str, &r.cpy1, &r.cpy2,
		&r.invProd, &r.invTwo, &r.invPrev, &r.divProd,
		&r.sqrtA, &r.sqrtB, &r.sqrtQ, &r.sqrtPrev, &r.sqrtN,
		&r.expTerm, &r.expProd, &r.expN, &r.expArg, &r.expPos,
		&r.lnExp, &r.lnProd, &r.lnOne, &r.lnPrev, &r.lnTwo, &r.lnHalf,
		&r.scTerm, &r.scProd, &r.scTmp,
		&r.atanS, &r.atanC, &r.atanArg, &r.atanProd, &r.atanTmp,
		&r.atanPrev, &r.atan2Q,
	}
}

// NewContext creates a Context with intLength bytes of integer part and at
// least fracBytes bytes of fraction.
func NewContext(intLength, fracBytes int) (*Context, error) {
	c := &Context{}
	if err := c.SetPrecision(intLength, fracBytes); err != nil {
		return nil, err
	}
	return c, nil
}

// NewContextDecimals creates a Context holding at least decimals decimal
// digits after the point.
func NewContextDecimals(intLength, decimals int) (*Context, error) {
	c := &Context{}
	if err := c.SetDecimals(intLength, decimals); err != nil {
		return nil, err
	}
	return c, nil
}

// SetPrecision changes the precision of c. All BigNums previously created
// for c must be recreated (or converted with Convert). Conditions are
// cleared.
func (c *Context) SetPrecision(intLength, fracBytes int) error {
	if !validIntLength(intLength) {
		return errors.Wrapf(ErrIntLength, "got %d", intLength)
	}
	if fracBytes < 1 {
		return errors.Wrapf(ErrPrecision, "got %d", fracBytes)
	}

	c.intLength = intLength
	c.bnLength = intLength + fracBytes
	c.calcLengths()
	c.decimals = int(float64(c.bnLength-c.intLength) * log10of256)
	c.cond = 0

	for _, r := range c.reg.all() {
		*r = make(BigNum, 2*c.rLength)
	}
	c.pi = c.computePi()
	return nil
}

// SetDecimals is SetPrecision expressed in decimal digits.
func (c *Context) SetDecimals(intLength, decimals int) error {
	if decimals < 1 {
		return errors.Wrapf(ErrPrecision, "got %d decimals", decimals)
	}
	return c.SetPrecision(intLength, int(float64(decimals)/log10of256)+1)
}

// calcLengths derives every length from bnLength and intLength.
func (c *Context) calcLengths() {
	if rem := c.bnLength % blockSize; rem != 0 {
		c.bnLength += blockSize - rem
	}
	if c.bnLength == blockSize {
		c.padding = c.bnLength
	} else {
		c.padding = 2 * blockSize
	}
	c.rLength = c.bnLength + c.padding
	c.shiftFactor = c.padding - c.intLength
}

// lengths is the part of a Context that changes while a solver escalates.
type lengths struct {
	bnLength, padding, rLength, shiftFactor int
}

func (c *Context) lengths() lengths {
	return lengths{c.bnLength, c.padding, c.rLength, c.shiftFactor}
}

func (c *Context) setLengths(l lengths) {
	c.bnLength, c.padding, c.rLength, c.shiftFactor = l.bnLength, l.padding, l.rLength, l.shiftFactor
}

// Clone returns an independent Context at the same precision. Conditions are
// not copied.
func (c *Context) Clone() *Context {
	n := &Context{noEscalation: c.noEscalation}
	if err := n.SetPrecision(c.intLength, c.bnLength-c.intLength); err != nil {
		panic(err)
	}
	return n
}

// SetEscalation turns precision escalation in the Newton solvers on or off.
// With escalation off every iteration runs at full precision; results are
// the same, only slower.
func (c *Context) SetEscalation(on bool) { c.noEscalation = !on }

func (c *Context) Precision() (intLength, fracBytes int) {
	return c.intLength, c.bnLength - c.intLength
}

// Len is the number of bytes in a BigNum for c.
func (c *Context) Len() int { return c.bnLength }

func (c *Context) IntLen() int { return c.intLength }

// WideLen is the number of bytes needed for the result of FullMult.
func (c *Context) WideLen() int { return 2 * c.bnLength }

// Decimals is the number of decimal digits represented after the point.
func (c *Context) Decimals() int { return c.decimals }

// New allocates a zeroed BigNum of Len bytes.
func (c *Context) New() BigNum { return make(BigNum, c.bnLength) }

// NewWide allocates a zeroed BigNum of WideLen bytes.
func (c *Context) NewWide() BigNum { return make(BigNum, 2*c.bnLength) }

// Conditions returns the conditions raised since they were last cleared.
func (c *Context) Conditions() Condition { return c.cond }

// Err returns a *ConditionError (wrapped with a stack) describing every
// condition raised since the last call, then clears them. It returns nil if
// nothing was raised.
func (c *Context) Err() error {
	if c.cond == 0 {
		return nil
	}
	err := &ConditionError{Conditions: c.cond}
	c.cond = 0
	return errors.WithStack(err)
}

// maxFloat is the largest integer part as a float64.
func (c *Context) maxFloat() float64 {
	return math.Ldexp(1, 8*c.intLength-1) - 1
}
