// Package scan enumerates single-nucleotide substitutions of a coding
// sequence and classifies their effect on the translated protein.
package scan

import (
	"fmt"
	"strings"

	"github.com/inodb/mutscan/internal/translate"
)

// Variant is a retained point mutation together with the protein it produces.
type Variant struct {
	Position     int    // 1-based nucleotide position
	OriginalBase byte   // base in the input sequence
	NewBase      byte   // substituted base
	Protein      string // translated mutated sequence
}

// CodonNumber returns the 1-based codon containing the mutated base.
func (v Variant) CodonNumber() int {
	return (v.Position-1)/3 + 1
}

// Changes returns the amino acid differences from the original protein.
func (v Variant) Changes(original string) []translate.AminoAcidChange {
	return translate.Diff(original, v.Protein)
}

// Consequence returns the most severe SO consequence term of the variant
// relative to the original protein.
func (v Variant) Consequence(original string) string {
	return translate.ChangesConsequence(v.Changes(original))
}

// CodonChange formats the codon change VEP-style, e.g. "gCt/gTt", with the
// mutated base uppercase. seq is the original coding sequence.
func (v Variant) CodonChange(seq string) string {
	codon := translate.GetCodon(seq, v.CodonNumber())
	if codon == "" {
		return ""
	}
	posInCodon := (v.Position - 1) % 3
	alt := translate.MutateCodon(codon, posInCodon, v.NewBase)
	return highlightBase(codon, posInCodon) + "/" + highlightBase(alt, posInCodon)
}

func highlightBase(codon string, pos int) string {
	lower := []byte(strings.ToLower(codon))
	lower[pos] = codon[pos]
	return string(lower)
}

// String returns a compact label, e.g. "35C>T".
func (v Variant) String() string {
	return fmt.Sprintf("%d%c>%c", v.Position, v.OriginalBase, v.NewBase)
}

// Outcome is the classification of a single candidate mutation.
type Outcome int

// Candidate outcomes, in filter order.
const (
	OutcomeRetained Outcome = iota
	OutcomeStop
	OutcomeSynonymous
	OutcomeDuplicate
	OutcomeSkipped
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRetained:
		return "retained"
	case OutcomeStop:
		return "stop"
	case OutcomeSynonymous:
		return "synonymous"
	case OutcomeDuplicate:
		return "duplicate"
	case OutcomeSkipped:
		return "skipped"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Result holds the output of one enumeration run.
type Result struct {
	OriginalProtein string
	Variants        []Variant // enumeration order

	StopCount       int // premature stop introduced
	SynonymousCount int // protein unchanged
	DuplicateCount  int // protein already retained by an earlier candidate
	SkippedCount    int // candidate could not be translated
	Candidates      int // 3 x sequence length
}
