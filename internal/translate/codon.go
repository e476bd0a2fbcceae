// Package translate converts coding DNA into protein using the standard genetic code.
package translate

import (
	"errors"
	"fmt"
	"strings"
)

// StopSymbol is the amino acid symbol emitted for stop codons.
const StopSymbol = '*'

var (
	// ErrInvalidCodon is returned when a triplet has no entry in the codon table.
	ErrInvalidCodon = errors.New("invalid codon")
	// ErrLengthNotMultipleOfThree is returned when a sequence has a trailing partial codon.
	ErrLengthNotMultipleOfThree = errors.New("sequence length is not a multiple of 3")
)

// Standard genetic code: DNA codon to amino acid (single letter).
var codonTable = map[string]byte{
	"TTT": 'F', "TTC": 'F', "TTA": 'L', "TTG": 'L',
	"TCT": 'S', "TCC": 'S', "TCA": 'S', "TCG": 'S',
	"TAT": 'Y', "TAC": 'Y', "TAA": '*', "TAG": '*',
	"TGT": 'C', "TGC": 'C', "TGA": '*', "TGG": 'W',

	"CTT": 'L', "CTC": 'L', "CTA": 'L', "CTG": 'L',
	"CCT": 'P', "CCC": 'P', "CCA": 'P', "CCG": 'P',
	"CAT": 'H', "CAC": 'H', "CAA": 'Q', "CAG": 'Q',
	"CGT": 'R', "CGC": 'R', "CGA": 'R', "CGG": 'R',

	"ATT": 'I', "ATC": 'I', "ATA": 'I', "ATG": 'M',
	"ACT": 'T', "ACC": 'T', "ACA": 'T', "ACG": 'T',
	"AAT": 'N', "AAC": 'N', "AAA": 'K', "AAG": 'K',
	"AGT": 'S', "AGC": 'S', "AGA": 'R', "AGG": 'R',

	"GTT": 'V', "GTC": 'V', "GTA": 'V', "GTG": 'V',
	"GCT": 'A', "GCC": 'A', "GCA": 'A', "GCG": 'A',
	"GAT": 'D', "GAC": 'D', "GAA": 'E', "GAG": 'E',
	"GGT": 'G', "GGC": 'G', "GGA": 'G', "GGG": 'G',
}

// InvalidCodonError reports the codon that could not be translated.
type InvalidCodonError struct {
	Codon  string
	Number int // 1-based codon number, 0 if unknown
}

func (e *InvalidCodonError) Error() string {
	if e.Number > 0 {
		return fmt.Sprintf("invalid codon %q at codon %d", e.Codon, e.Number)
	}
	return fmt.Sprintf("invalid codon %q", e.Codon)
}

// Unwrap lets errors.Is match ErrInvalidCodon.
func (e *InvalidCodonError) Unwrap() error {
	return ErrInvalidCodon
}

// TranslateCodon translates a DNA codon to its amino acid.
// Input must be uppercase; lowercase and ambiguous bases are rejected.
func TranslateCodon(codon string) (byte, error) {
	if aa, ok := codonTable[codon]; ok {
		return aa, nil
	}
	return 0, &InvalidCodonError{Codon: codon}
}

// IsStop reports whether aa is the stop symbol.
func IsStop(aa byte) bool {
	return aa == StopSymbol
}

// Translate translates a DNA sequence to amino acids, one symbol per codon.
// Stop codons are kept in place as '*'; translation does not stop at them.
func Translate(seq string) (string, error) {
	n := len(seq)
	if n%3 != 0 {
		return "", fmt.Errorf("%w: length %d", ErrLengthNotMultipleOfThree, n)
	}

	var result strings.Builder
	result.Grow(n / 3)

	for i := 0; i < n; i += 3 {
		codon := seq[i : i+3]
		aa, ok := codonTable[codon]
		if !ok {
			return "", &InvalidCodonError{Codon: codon, Number: i/3 + 1}
		}
		result.WriteByte(aa)
	}

	return result.String(), nil
}

// TranslateBytes is Translate for a mutable buffer. It avoids converting
// the whole sequence to a string before translation.
func TranslateBytes(seq []byte) (string, error) {
	n := len(seq)
	if n%3 != 0 {
		return "", fmt.Errorf("%w: length %d", ErrLengthNotMultipleOfThree, n)
	}

	out := make([]byte, n/3)
	for i := 0; i < n; i += 3 {
		// The compiler does not allocate for map lookups keyed by string(b).
		aa, ok := codonTable[string(seq[i:i+3])]
		if !ok {
			return "", &InvalidCodonError{Codon: string(seq[i : i+3]), Number: i/3 + 1}
		}
		out[i/3] = aa
	}
	return string(out), nil
}

// GetCodon extracts a codon from a CDS sequence at a given codon number.
// Codon numbers are 1-based (codon 1 is positions 1-3).
func GetCodon(cdsSequence string, codonNumber int) string {
	if codonNumber < 1 {
		return ""
	}
	startIdx := (codonNumber - 1) * 3
	endIdx := startIdx + 3
	if endIdx > len(cdsSequence) {
		return ""
	}
	return cdsSequence[startIdx:endIdx]
}

// MutateCodon applies a mutation to a codon at a specific position.
// positionInCodon is 0, 1, or 2 (first, second, or third base).
func MutateCodon(codon string, positionInCodon int, newBase byte) string {
	if len(codon) != 3 || positionInCodon < 0 || positionInCodon > 2 {
		return codon
	}
	var buf [3]byte
	copy(buf[:], codon)
	buf[positionInCodon] = newBase
	return string(buf[:])
}
