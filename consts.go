package bignum

const (
	// blockSize is the number of bytes processed by each carry primitive.
	blockSize = 4

	// log10of256 converts fraction bytes into decimal digits.
	log10of256 = 2.4082399653118

	// floatBytes is the number of bytes needed to hold a float64 mantissa.
	floatBytes = (53 + 7) / 8

	// maxIterations bounds every Newton solver.
	maxIterations = 25

	// closeEnough is the byte position below which two successive Newton
	// iterates are considered converged. almostClose is accepted when it
	// repeats on two consecutive iterations.
	closeEnough = 4
	almostClose = 8

	// sinCosHalves is the number of argument halvings done by SinCos after
	// range reduction.
	sinCosHalves = 1
)

// validIntLength reports whether n bytes may be used for the integer part.
func validIntLength(n int) bool {
	return n == 1 || n == 2 || n == 4
}
