package translate

import (
	"fmt"
	"strconv"
	"strings"
)

// AminoAcidSingleToThree converts single letter amino acid to three letter code.
var AminoAcidSingleToThree = map[byte]string{
	'A': "Ala", 'C': "Cys", 'D': "Asp", 'E': "Glu",
	'F': "Phe", 'G': "Gly", 'H': "His", 'I': "Ile",
	'K': "Lys", 'L': "Leu", 'M': "Met", 'N': "Asn",
	'P': "Pro", 'Q': "Gln", 'R': "Arg", 'S': "Ser",
	'T': "Thr", 'V': "Val", 'W': "Trp", 'Y': "Tyr",
	'*': "Ter", 'X': "Xaa",
}

// aaThree converts a single-letter amino acid code to its three-letter code.
// Returns "Xaa" for unknown amino acids.
func aaThree(aa byte) string {
	if three, ok := AminoAcidSingleToThree[aa]; ok {
		return three
	}
	return "Xaa"
}

// AminoAcidChange is a single residue difference between two proteins.
type AminoAcidChange struct {
	Position int // 1-based amino acid position
	Ref      byte
	Alt      byte
}

// String returns the short form, e.g. "G12C".
func (c AminoAcidChange) String() string {
	return string(c.Ref) + strconv.Itoa(c.Position) + string(c.Alt)
}

// HGVSp returns the HGVS protein notation (3-letter), e.g. "p.Gly12Cys".
func (c AminoAcidChange) HGVSp() string {
	if c.Ref == c.Alt {
		return fmt.Sprintf("p.%s%d=", aaThree(c.Ref), c.Position)
	}
	return fmt.Sprintf("p.%s%d%s", aaThree(c.Ref), c.Position, aaThree(c.Alt))
}

// Diff returns the residue changes from original to mutated.
// Both proteins must have the same length.
func Diff(original, mutated string) []AminoAcidChange {
	if len(original) != len(mutated) {
		panic(fmt.Sprintf("translate: protein length mismatch: %d vs %d", len(original), len(mutated)))
	}
	var changes []AminoAcidChange
	for i := 0; i < len(original); i++ {
		if original[i] != mutated[i] {
			changes = append(changes, AminoAcidChange{Position: i + 1, Ref: original[i], Alt: mutated[i]})
		}
	}
	return changes
}

// JoinChanges formats each change with f and joins them with commas.
func JoinChanges(changes []AminoAcidChange, f func(AminoAcidChange) string) string {
	parts := make([]string, len(changes))
	for i, c := range changes {
		parts[i] = f(c)
	}
	return strings.Join(parts, ",")
}
