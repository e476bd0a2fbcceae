package output

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/inodb/mutscan/internal/scan"
	"github.com/inodb/mutscan/internal/translate"
)

// TabWriter writes retained variants in tab-delimited format.
type TabWriter struct {
	w        *bufio.Writer
	seq      string
	original string
	n        int
	columns  []string
}

// NewTabWriter creates a new tab-delimited writer. seq is the original
// coding sequence and original its translation.
func NewTabWriter(w io.Writer, seq, original string) *TabWriter {
	return &TabWriter{
		w:        bufio.NewWriter(w),
		seq:      seq,
		original: original,
		columns: []string{
			"#Variant",
			"Nt_position",
			"Ref",
			"Alt",
			"Codon_position",
			"Codons",
			"Amino_acids",
			"HGVSp",
			"Protein",
			"Consequence",
			"IMPACT",
		},
	}
}

// WriteHeader writes the header line.
func (tw *TabWriter) WriteHeader() error {
	_, err := tw.w.WriteString(strings.Join(tw.columns, "\t") + "\n")
	return err
}

// Write writes a single variant.
func (tw *TabWriter) Write(v scan.Variant) error {
	tw.n++
	changes := v.Changes(tw.original)
	consequence := translate.ChangesConsequence(changes)
	return tw.writeRow(
		strconv.Itoa(tw.n),
		strconv.Itoa(v.Position),
		string(v.OriginalBase),
		string(v.NewBase),
		strconv.Itoa(v.CodonNumber()),
		dash(v.CodonChange(tw.seq)),
		dash(translate.JoinChanges(changes, translate.AminoAcidChange.String)),
		dash(translate.JoinChanges(changes, translate.AminoAcidChange.HGVSp)),
		v.Protein,
		consequence,
		translate.GetImpact(consequence),
	)
}

// Row is a pre-formatted variant row, used when reading variants back from
// a store where the coding sequence is no longer at hand.
type Row struct {
	Position        int
	Ref, Alt        byte
	CodonPosition   int
	CodonChange     string
	AminoAcidChange string
	HGVSp           string
	Protein         string
	Consequence     string
}

// WriteRow writes a pre-formatted row.
func (tw *TabWriter) WriteRow(r Row) error {
	tw.n++
	return tw.writeRow(
		strconv.Itoa(tw.n),
		strconv.Itoa(r.Position),
		string(r.Ref),
		string(r.Alt),
		strconv.Itoa(r.CodonPosition),
		dash(r.CodonChange),
		dash(r.AminoAcidChange),
		dash(r.HGVSp),
		r.Protein,
		dash(r.Consequence),
		translate.GetImpact(r.Consequence),
	)
}

func (tw *TabWriter) writeRow(values ...string) error {
	_, err := tw.w.WriteString(strings.Join(values, "\t") + "\n")
	return err
}

// Flush flushes any buffered data to the underlying writer.
func (tw *TabWriter) Flush() error {
	return tw.w.Flush()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
