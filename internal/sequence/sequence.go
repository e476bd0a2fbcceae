// Package sequence loads and validates the coding sequence to be scanned.
package sequence

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingInput is returned when the sequence source cannot be located.
	ErrMissingInput = errors.New("missing input")
	// ErrInvalidSequence is returned for sequences that cannot be scanned.
	ErrInvalidSequence = errors.New("invalid sequence")
)

// Bases lists the nucleotides in enumeration order.
var Bases = [4]byte{'A', 'T', 'C', 'G'}

// IsBase reports whether b is one of A, T, C, G.
func IsBase(b byte) bool {
	switch b {
	case 'A', 'T', 'C', 'G':
		return true
	}
	return false
}

// Validate checks that seq is non-empty, a whole number of codons and
// contains only A, T, C and G.
func Validate(seq string) error {
	if len(seq) == 0 {
		return fmt.Errorf("%w: empty sequence", ErrInvalidSequence)
	}
	if len(seq)%3 != 0 {
		return fmt.Errorf("%w: length %d is not a multiple of 3", ErrInvalidSequence, len(seq))
	}
	for i := 0; i < len(seq); i++ {
		if !IsBase(seq[i]) {
			return fmt.Errorf("%w: unexpected symbol %q at position %d", ErrInvalidSequence, seq[i], i+1)
		}
	}
	return nil
}
