package bignum

import (
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrIntLength = errors.New("bignum: int length must be 1, 2 or 4")
	ErrPrecision = errors.New("bignum: fraction bytes must be positive")
	ErrSyntax    = errors.New("bignum: invalid syntax")
	ErrRange     = errors.New("bignum: value out of range")
	ErrSaved     = errors.New("bignum: invalid saved value")
)

// Condition is a set of flags recording the exceptional results produced by
// a Context since the flags were last cleared. No operation fails outright;
// each one saturates or returns its best result and records why.
type Condition uint32

const (
	// Saturated means a result did not fit the integer part and was clamped
	// to the largest magnitude of the correct sign.
	Saturated Condition = 1 << iota

	// DomainError means an argument was outside the domain of a function,
	// like the square root of a negative number.
	DomainError

	// DivisionByZero means a divisor (or the argument of Inverse) was zero.
	DivisionByZero

	// NonConvergence means a Newton solver hit its iteration ceiling and
	// returned its last iterate.
	NonConvergence
)

var conditionNames = []struct {
	c    Condition
	name string
}{
	{Saturated, "saturated"},
	{DomainError, "domain error"},
	{DivisionByZero, "division by zero"},
	{NonConvergence, "non-convergence"},
}

func (c Condition) Any() bool { return c != 0 }

func (c Condition) String() string {
	if c == 0 {
		return "none"
	}
	var names []string
	for _, n := range conditionNames {
		if c&n.c != 0 {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, ", ")
}

// ConditionError is returned by Context.Err when conditions were raised.
type ConditionError struct {
	Conditions Condition
}

func (e *ConditionError) Error() string {
	return "bignum: " + e.Conditions.String()
}
