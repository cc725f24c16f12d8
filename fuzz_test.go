package bignum

import (
	"fmt"
	"math"
	"math/big"
	"math/rand"
	"strings"
	"testing"
)

type fuzzOp string

// This is the equivalent of passing -bignum.fuzziter=2000 to 'go test':
const fuzzDefaultIterations = 2000

// These ops are all enabled by default. You can instead pass them explicitly
// on the command line like so: '-bignum.fuzzop=add -bignum.fuzzop=sub', or
// you can use the short form '-bignum.fuzzop=add,sub,mul'.
//
// If you add a new op, search for the string 'NEWOP' in this file for all the
// places you need to update.
const (
	fuzzAdd     fuzzOp = "add"
	fuzzCmp     fuzzOp = "cmp"
	fuzzDiv     fuzzOp = "div"
	fuzzDivInt  fuzzOp = "divint"
	fuzzFloat64 fuzzOp = "float64"
	fuzzMul     fuzzOp = "mul"
	fuzzMulInt  fuzzOp = "mulint"
	fuzzNeg     fuzzOp = "neg"
	fuzzSqrt    fuzzOp = "sqrt"
	fuzzSquare  fuzzOp = "square"
	fuzzString  fuzzOp = "string"
	fuzzSub     fuzzOp = "sub"
)

// allFuzzOps are active by default.
//
// NEWOP: Update this list if a NEW op is added otherwise it won't be
// enabled by default.
//
// Please keep this list alphabetised.
var allFuzzOps = []fuzzOp{
	fuzzAdd,
	fuzzCmp,
	fuzzDiv,
	fuzzDivInt,
	fuzzFloat64,
	fuzzMul,
	fuzzMulInt,
	fuzzNeg,
	fuzzSqrt,
	fuzzSquare,
	fuzzString,
	fuzzSub,
}

// Every op is fuzzed at each of these precisions, as {intLength, fracBytes}.
var fuzzPrecisions = [][2]int{
	{1, 3},
	{1, 11},
	{2, 6},
	{4, 8},
	{4, 28},
}

// NEWOP: update this interface if a new op is added.
type fuzzOps interface {
	Name() string // Not an op

	Add() error
	Cmp() error
	Div() error
	DivInt() error
	Float64() error
	Mul() error
	MulInt() error
	Neg() error
	Sqrt() error
	Square() error
	String() error
	Sub() error
}

// classic rando!
type rando struct {
	operands []*big.Rat
	rng      *rand.Rand
}

func (r *rando) Operands() []*big.Rat { return r.operands }

func (r *rando) Clear() {
	for i := range r.operands {
		r.operands[i] = nil
	}
	r.operands = r.operands[:0]
}

func (r *rando) Uint32n(n int) uint32 {
	v := uint32(r.rng.Intn(n))
	r.operands = append(r.operands, new(big.Rat).SetInt64(int64(v)))
	return v
}

// samesies returns the number of arguments up to n - 1 that should be the same
// for this request. Only used for randos that are 'x2', 'x3', etc.
func (r *rando) samesies(n int) int {
	const samesiesChance = 0.03
	if r.rng.Float64() < samesiesChance {
		return r.rng.Intn(n)
	}
	return 0
}

// BigNum returns a random value for c together with its raw scaled integer.
// Bit lengths are evenly distributed and the most negative value is never
// produced, so every operand can be negated.
func (r *rando) BigNum(c *Context) (BigNum, *big.Int) {
	maxBits := 8*c.Len() - 1
	bits := r.rng.Intn(maxBits+1) - 1
	v := new(big.Int)
	if bits >= 0 {
		v.Rand(r.rng, new(big.Int).Lsh(big1, uint(bits)))
		v.SetBit(v, bits, 1)
		if r.rng.Intn(2) == 1 {
			v.Neg(v)
		}
	}
	n := bnOfInt(c, c.New(), v)
	r.operands = append(r.operands, ratOf(c, n))
	return n, v
}

func (r *rando) BigNumx2(c *Context) (n1, n2 BigNum, v1, v2 *big.Int) {
	n1, v1 = r.BigNum(c)
	if r.samesies(2) > 0 {
		n2, v2 = c.Copy(c.New(), n1), new(big.Int).Set(v1)
		r.operands = append(r.operands, ratOf(c, n2))
	} else {
		n2, v2 = r.BigNum(c)
	}
	return n1, n2, v1, v2
}

var big1 = big.NewInt(1)

// wrapSigned reduces v into the signed range of an l byte BigNum.
func wrapSigned(v *big.Int, l int) *big.Int {
	m := new(big.Int).Lsh(big1, uint(8*l))
	w := new(big.Int).Mod(v, m)
	if w.Bit(8*l-1) == 1 {
		w.Sub(w, m)
	}
	return w
}

// fitsSigned reports whether the raw scaled v fits an l byte BigNum.
func fitsSigned(v *big.Int, l int) bool {
	return v.BitLen() < 8*l
}

func checkEqualRaw(c *Context, n BigNum, exp *big.Int) error {
	if found := bigIntOf(c, n); found.Cmp(exp) != 0 {
		return fmt.Errorf("bignum(%s) != big(%s)", found, exp)
	}
	return nil
}

// checkWithin fails if n is more than tol units of the last place from exp.
func checkWithin(c *Context, n BigNum, exp *big.Rat, tol *big.Int) error {
	e := bnOfRat(c, c.New(), exp)
	if d := ulps(c, n, e); d.Cmp(tol) > 0 {
		return fmt.Errorf("bignum(%s) != big(%s), %s ulps apart, limit %s",
			c.String(n, 0), exp.FloatString(c.Decimals()), d, tol)
	}
	return nil
}

// mulTol is the error allowed in a truncated product: the skipped columns
// can cost about one unit in the last place per block, plus the truncation
// of the kept bytes and of the expected value.
func mulTol(c *Context) *big.Int {
	return big.NewInt(int64(c.Len()/blockSize + 2))
}

// ulpsTol returns base*(|x|+1) as a tolerance in units of the last place.
func ulpsTol(base int64, x *big.Rat) *big.Int {
	a := new(big.Rat).Abs(x)
	i := new(big.Int).Quo(a.Num(), a.Denom())
	i.Add(i, big1)
	return i.Mul(i, big.NewInt(base))
}

func checkConditions(c *Context, exp Condition) error {
	if found := c.Conditions(); found != exp {
		return fmt.Errorf("conditions %q, expected %q", found, exp)
	}
	return nil
}

func TestFuzz(t *testing.T) {
	// fuzzOpsActive comes from the -bignum.fuzzop flag, in TestMain:
	var runFuzzOps = fuzzOpsActive

	var source = &rando{rng: globalRNG} // Classic rando!
	var totalFailures int

	var fuzzImpls []fuzzOps
	for _, p := range fuzzPrecisions {
		fuzzImpls = append(fuzzImpls, &fuzzBigNum{source: source, c: mustContext(p[0], p[1])})
	}

	for _, fuzzImpl := range fuzzImpls {
		var failures = make([]int, len(runFuzzOps))

		for opIdx, op := range runFuzzOps {
			for i := 0; i < fuzzIterations; i++ {
				source.Clear()

				var err error

				// NEWOP: add a new branch here in alphabetical order if a new
				// op is added.
				switch op {
				case fuzzAdd:
					err = fuzzImpl.Add()
				case fuzzCmp:
					err = fuzzImpl.Cmp()
				case fuzzDiv:
					err = fuzzImpl.Div()
				case fuzzDivInt:
					err = fuzzImpl.DivInt()
				case fuzzFloat64:
					err = fuzzImpl.Float64()
				case fuzzMul:
					err = fuzzImpl.Mul()
				case fuzzMulInt:
					err = fuzzImpl.MulInt()
				case fuzzNeg:
					err = fuzzImpl.Neg()
				case fuzzSqrt:
					err = fuzzImpl.Sqrt()
				case fuzzSquare:
					err = fuzzImpl.Square()
				case fuzzString:
					err = fuzzImpl.String()
				case fuzzSub:
					err = fuzzImpl.Sub()
				default:
					panic(fmt.Errorf("unsupported op %q", op))
				}

				if err != nil {
					failures[opIdx]++
					t.Logf("%s %s: %s\n", fuzzImpl.Name(), op.Print(source.Operands()...), err)
				}
			}
		}

		for opIdx, cnt := range failures {
			if cnt > 0 {
				totalFailures += cnt
				t.Logf("impl %s, op %s: %d/%d failed", fuzzImpl.Name(), string(runFuzzOps[opIdx]), cnt, fuzzIterations)
			}
		}
	}

	if totalFailures > 0 {
		t.Fail()
	}
}

func (op fuzzOp) Print(operands ...*big.Rat) string {
	// NEWOP: please add a human-readale format for your op here; this is used
	// for reporting errors and should show the operation, i.e. "2 + 2".
	//
	// It should be safe to assume the appropriate number of operands are set
	// in 'operands'; if not, it's a bug to be fixed elsewhere.
	strs := make([]string, len(operands))
	for i, o := range operands {
		strs[i] = strings.TrimRight(strings.TrimRight(o.FloatString(20), "0"), ".")
	}

	switch op {
	case fuzzFloat64, fuzzSqrt, fuzzString:
		s := strings.TrimRight(op.String(), "()")
		return fmt.Sprintf("%s(%s)", s, strs[0])

	case fuzzSquare:
		return fmt.Sprintf("%s**2", strs[0])

	case fuzzNeg:
		return fmt.Sprintf("%s%s", op.String(), strs[0])

	case fuzzAdd,
		fuzzCmp,
		fuzzDiv,
		fuzzDivInt,
		fuzzMul,
		fuzzMulInt,
		fuzzSub:

		// simple binary case:
		return fmt.Sprintf("%s %s %s", strs[0], op.String(), strs[1])

	default:
		return string(op)
	}
}

func (op fuzzOp) String() string {
	// NEWOP: please add a short string representation of this op, as if
	// the operands were in a sum (if that's possible)
	switch op {
	case fuzzAdd:
		return "+"
	case fuzzCmp:
		return "<=>"
	case fuzzDiv, fuzzDivInt:
		return "/"
	case fuzzFloat64:
		return "float64()"
	case fuzzMul, fuzzMulInt:
		return "*"
	case fuzzNeg:
		return "-"
	case fuzzSqrt:
		return "sqrt()"
	case fuzzSquare:
		return "**2"
	case fuzzString:
		return "string()"
	case fuzzSub:
		return "-"
	default:
		return string(op)
	}
}

type fuzzBigNum struct {
	source *rando
	c      *Context
}

func (f fuzzBigNum) Name() string {
	il, frac := f.c.Precision()
	return fmt.Sprintf("bignum(%d,%d)", il, frac)
}

func (f fuzzBigNum) Add() error {
	c := f.c
	n1, n2, b1, b2 := f.source.BigNumx2(c)
	r := c.Add(c.New(), n1, n2)
	return checkEqualRaw(c, r, wrapSigned(new(big.Int).Add(b1, b2), c.Len()))
}

func (f fuzzBigNum) Sub() error {
	c := f.c
	n1, n2, b1, b2 := f.source.BigNumx2(c)
	r := c.Sub(c.New(), n1, n2)
	return checkEqualRaw(c, r, wrapSigned(new(big.Int).Sub(b1, b2), c.Len()))
}

func (f fuzzBigNum) Neg() error {
	c := f.c
	n, b := f.source.BigNum(c)
	return checkEqualRaw(c, c.Neg(c.New(), n), new(big.Int).Neg(b))
}

func (f fuzzBigNum) Cmp() error {
	c := f.c
	n1, n2, b1, b2 := f.source.BigNumx2(c)
	if found, exp := c.Cmp(n1, n2), b1.Cmp(b2); found != exp {
		return fmt.Errorf("bignum(%d) != big(%d)", found, exp)
	}
	return nil
}

func (f fuzzBigNum) Mul() error {
	c := f.c
	defer c.Err()
	n1, n2, _, _ := f.source.BigNumx2(c)
	exp := new(big.Rat).Mul(ratOf(c, n1), ratOf(c, n2))
	if !fitsSigned(new(big.Int).Quo(exp.Num(), exp.Denom()), c.IntLen()) {
		return nil
	}
	r := c.Mult(c.New(), n1, n2)
	if err := checkConditions(c, 0); err != nil {
		return err
	}
	return checkWithin(c, r, exp, mulTol(c))
}

func (f fuzzBigNum) Square() error {
	c := f.c
	defer c.Err()
	n, _ := f.source.BigNum(c)
	x := ratOf(c, n)
	exp := new(big.Rat).Mul(x, x)
	if !fitsSigned(new(big.Int).Quo(exp.Num(), exp.Denom()), c.IntLen()) {
		return nil
	}
	r := c.Square(c.New(), n)
	if err := checkConditions(c, 0); err != nil {
		return err
	}
	return checkWithin(c, r, exp, mulTol(c))
}

func (f fuzzBigNum) MulInt() error {
	c := f.c
	n, b := f.source.BigNum(c)
	u := f.source.Uint32n(1 << 16)
	exp := new(big.Int).Mul(b, big.NewInt(int64(u)))
	if !fitsSigned(exp, c.Len()) {
		return nil
	}
	return checkEqualRaw(c, c.MulInt(c.New(), n, u), exp)
}

func (f fuzzBigNum) DivInt() error {
	c := f.c
	defer c.Err()
	n, b := f.source.BigNum(c)
	u := f.source.Uint32n(1 << 16)
	r := c.DivInt(c.New(), n, u)
	if u == 0 {
		if err := checkConditions(c, DivisionByZero); err != nil {
			return err
		}
		exp := c.Max(c.New())
		if b.Sign() < 0 {
			c.Neg(exp, exp)
		}
		return checkEqualRaw(c, r, bigIntOf(c, exp))
	}
	return checkEqualRaw(c, r, new(big.Int).Quo(b, big.NewInt(int64(u))))
}

func (f fuzzBigNum) Div() error {
	c := f.c
	defer c.Err()
	n1, n2, b1, b2 := f.source.BigNumx2(c)
	r := c.Div(c.New(), n1, n2)

	switch {
	case b1.Sign() == 0:
		if !c.IsZero(r) {
			return fmt.Errorf("bignum(%s) != 0", c.String(r, 0))
		}
		return checkConditions(c, 0)

	case b2.Sign() == 0:
		return checkConditions(c, DivisionByZero)
	}

	exp := new(big.Rat).SetFrac(b1, b2)
	q, _ := exp.Float64()
	if limit := c.maxFloat() + 1; math.Abs(q) >= limit-1 {
		if math.Abs(q) >= limit+1 {
			return checkConditions(c, Saturated)
		}
		return nil
	}
	if err := checkConditions(c, 0); err != nil {
		return err
	}
	return checkWithin(c, r, exp, ulpsTol(64, exp))
}

func (f fuzzBigNum) Sqrt() error {
	c := f.c
	defer c.Err()
	n, b := f.source.BigNum(c)
	c.Abs(n, n)
	b = new(big.Int).Abs(b)
	f.source.operands[0] = ratOf(c, n)

	r := c.Sqrt(c.New(), n)
	if err := checkConditions(c, 0); err != nil {
		return err
	}
	if b.Sign() == 0 {
		return checkEqualRaw(c, r, b)
	}

	exp := new(big.Float).Sqrt(bigFloatOf(c, n))
	er := bigIntOf(c, bnOfFloat(c, c.New(), exp))
	expRat := ratOf(c, bnOfInt(c, c.New(), er))
	return checkWithin(c, r, expRat, ulpsTol(64, expRat))
}

func (f fuzzBigNum) Float64() error {
	c := f.c
	n, _ := f.source.BigNum(c)
	found := c.Float64(n)
	exp, _ := bigFloatOf(c, n).Float64()
	if exp == 0 {
		if found != 0 {
			return fmt.Errorf("bignum(%g) != big(0)", found)
		}
		return nil
	}
	if diff := math.Abs((found - exp) / exp); diff > 0x1p-50 {
		return fmt.Errorf("bignum(%g) != big(%g), relative difference %g", found, exp, diff)
	}
	return nil
}

func (f fuzzBigNum) String() error {
	c := f.c
	n, _ := f.source.BigNum(c)
	s := c.String(n, 0)
	parsed, ok := new(big.Rat).SetString(s)
	if !ok {
		return fmt.Errorf("bignum string %q did not parse", s)
	}

	// The string is truncated, so it can only be closer to zero.
	exact := ratOf(c, n)
	diff := new(big.Rat).Sub(new(big.Rat).Abs(exact), new(big.Rat).Abs(parsed))
	limit := new(big.Rat).SetFrac(big1, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(c.Decimals())), nil))
	if diff.Sign() < 0 || diff.Cmp(limit) >= 0 {
		return fmt.Errorf("bignum string %q != big(%s)", s, exact.FloatString(c.Decimals()+2))
	}
	if exact.Sign() != 0 && parsed.Sign() != 0 && exact.Sign() != parsed.Sign() {
		return fmt.Errorf("bignum string %q has the wrong sign", s)
	}
	return nil
}
