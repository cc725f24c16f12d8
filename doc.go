/*
Package bignum provides BigNum, a signed fixed-point number of configurable
precision, along with the arithmetic and transcendental functions needed to
compute with it.

A BigNum is a byte slice in little endian two's complement. The top 1, 2 or
4 bytes hold the integer part; everything below holds the fraction. All
BigNums used together share a Context, which fixes their length and owns the
scratch space every operation works in:

	c, err := bignum.NewContextDecimals(4, 100)
	x := c.New()
	c.SetString(x, "2")
	fmt.Println(c.String(c.Sqrt(x, x), 50))
	// Output: 1.41421356237309504880168872420969807856967187537694

Contexts can be created from a number of bytes or a number of decimal digits:

	NewContext(intLength, fracBytes int) (*Context, error)
	NewContextDecimals(intLength, decimals int) (*Context, error)

BigNums can be set from a variety of sources:

	SetString(r BigNum, s string) error
	SetInt64(r BigNum, v int64) BigNum
	SetFloat64(r BigNum, f float64) BigNum
	Restore(r BigNum, s Saved) error
	Convert(r BigNum, from *Context, n BigNum) BigNum

Operations never fail. Results that do not fit saturate, arguments outside a
function's domain give a defined value, and the reason is recorded as a
Condition on the Context, to be checked with Err once a calculation is done.

The solvers (Inverse, Div, Sqrt, Ln, Atan) are Newton iterations seeded from
float64 that start at float64 precision and double the working precision on
each iteration, so most of the work happens at a fraction of the full length.

A Context is not safe for concurrent use. The methods of Unsafe skip the
copies the Context methods make to protect their operands.
*/
package bignum
