// Package output provides scan result formatters.
package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/inodb/mutscan/internal/scan"
)

const reportRule = "--------------------------------------------------"

// ReportWriter writes the human-readable comparison report: the original
// protein, the number of retained variants, and one block per variant with
// changed residues wrapped in brackets.
type ReportWriter struct {
	w        *bufio.Writer
	original string
	n        int
}

// NewReportWriter creates a report writer comparing against original.
func NewReportWriter(w io.Writer, original string) *ReportWriter {
	return &ReportWriter{
		w:        bufio.NewWriter(w),
		original: original,
	}
}

// WriteHeader writes the original protein and the retained variant count.
func (rw *ReportWriter) WriteHeader(total int) error {
	_, err := fmt.Fprintf(rw.w, "Original Sequence:\n%s\n\n%s\nTotal Unique Variants Found: %d\n%s\n\n",
		rw.original, reportRule, total, reportRule)
	return err
}

// Write writes a single variant block. Variants are numbered in call order.
func (rw *ReportWriter) Write(v scan.Variant) error {
	rw.n++
	_, err := fmt.Fprintf(rw.w, "Variant %d (Nt Position: %d | %c->%c):\n%s\n\n",
		rw.n, v.Position, v.OriginalBase, v.NewBase, MarkChanges(rw.original, v.Protein))
	return err
}

// Flush flushes any buffered data to the underlying writer.
func (rw *ReportWriter) Flush() error {
	return rw.w.Flush()
}

// MarkChanges renders mutated with every residue that differs from
// original wrapped as "[X]". Both proteins must have the same length.
func MarkChanges(original, mutated string) string {
	if len(original) != len(mutated) {
		panic(fmt.Sprintf("output: protein length mismatch: original %d, variant %d", len(original), len(mutated)))
	}

	var b strings.Builder
	b.Grow(len(mutated) + 2)
	for i := 0; i < len(mutated); i++ {
		if mutated[i] == original[i] {
			b.WriteByte(mutated[i])
			continue
		}
		b.WriteByte('[')
		b.WriteByte(mutated[i])
		b.WriteByte(']')
	}
	return b.String()
}

// WriteReport writes the full report for variants to w.
func WriteReport(w io.Writer, original string, variants []scan.Variant) error {
	rw := NewReportWriter(w, original)
	if err := rw.WriteHeader(len(variants)); err != nil {
		return err
	}
	for _, v := range variants {
		if err := rw.Write(v); err != nil {
			return err
		}
	}
	return rw.Flush()
}

// FormatReport returns the full report as a string.
func FormatReport(original string, variants []scan.Variant) string {
	var sb strings.Builder
	// strings.Builder never returns a write error.
	_ = WriteReport(&sb, original, variants)
	return sb.String()
}
