package bignum

// escalation drives a Newton solver from float64 precision up to the
// precision of its Context, doubling the working length each iteration.
//
// While it runs, the Context works at a reduced length. Operands sized for
// the target length are viewed through win, which yields their top Len()
// bytes; the low bytes are simply ignored until the working length grows to
// cover them.
type escalation struct {
	c      *Context
	target int
	saved  lengths

	iter      int
	almost    bool
	converged bool
}

func (c *Context) escalate() *escalation {
	e := &escalation{c: c, target: c.bnLength, saved: c.lengths()}
	if !c.noEscalation {
		start := c.intLength + floatBytes
		if start < c.bnLength {
			c.bnLength = start
			c.calcLengths()
		}
	}
	return e
}

// next moves to the next iteration. It returns false once the iteration
// ceiling is reached.
func (e *escalation) next() bool {
	if e.converged || e.iter >= maxIterations {
		return false
	}
	e.iter++
	bn := 2 * e.c.bnLength
	if bn > e.target {
		bn = e.target
	}
	e.c.bnLength = bn
	e.c.calcLengths()
	return true
}

// win returns the top Len() bytes of b, a BigNum sized for the target.
func (e *escalation) win(b BigNum) BigNum {
	return b[e.target-e.c.bnLength:]
}

// done reports whether cur and prev, two successive iterates, agree to
// within the convergence tolerance at the target length. prev is
// overwritten.
func (e *escalation) done(cur, prev BigNum) bool {
	if e.c.bnLength < e.target {
		return false
	}
	p := diffPos(prev, cur, prev, e.c.bnLength)
	if p < closeEnough || (p < almostClose && e.almost) {
		e.converged = true
		return true
	}
	e.almost = p < almostClose
	return false
}

// restore puts the Context back to the target length and raises
// NonConvergence if the solver gave up.
func (e *escalation) restore() {
	e.c.setLengths(e.saved)
	if !e.converged {
		e.c.cond |= NonConvergence
	}
}
