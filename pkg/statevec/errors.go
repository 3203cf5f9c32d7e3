package statevec

import (
	"fmt"
	"strconv"
)

// ParseError reports a token that is not a complex-number literal.
type ParseError struct {
	Token string
	Index int
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("amplitude %d: %s is not a complex number", e.Index, strconv.Quote(e.Token))
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// LengthMismatchError reports a vector whose length is not 2^N.
type LengthMismatchError struct {
	Got  int
	Want int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("initial state must have length %d, got %d", e.Want, e.Got)
}

// NormalizationError reports a vector whose squared magnitudes do not sum to 1.
type NormalizationError struct {
	Norm float64 // sum of squared magnitudes
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("initial state must be normalized (total probability 1), got %.6g", e.Norm)
}
