package output

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/inodb/mutscan/internal/scan"
	"github.com/inodb/mutscan/internal/translate"
)

// CSQ sub-field names in VEP convention order.
var csqFields = []string{
	"Allele",
	"Consequence",
	"IMPACT",
	"CDS_position",
	"Protein_position",
	"Amino_acids",
	"Codons",
	"HGVSp",
}

// VCFWriter writes retained variants as VCF records with a CSQ INFO field.
// Coordinates are positions in the coding sequence, which is used as the
// contig.
type VCFWriter struct {
	w        *bufio.Writer
	chrom    string
	seq      string
	original string
}

// NewVCFWriter creates a new VCF output writer. chrom names the contig
// (typically the FASTA record ID); "seq" is used if it is empty.
func NewVCFWriter(w io.Writer, chrom, seq, original string) *VCFWriter {
	if chrom == "" {
		chrom = "seq"
	}
	return &VCFWriter{
		w:        bufio.NewWriter(w),
		chrom:    chrom,
		seq:      seq,
		original: original,
	}
}

// WriteHeader writes the meta-information lines and the #CHROM line.
func (vw *VCFWriter) WriteHeader() error {
	lines := []string{
		"##fileformat=VCFv4.2",
		"##source=mutscan",
		fmt.Sprintf("##contig=<ID=%s,length=%d>", vw.chrom, len(vw.seq)),
		fmt.Sprintf("##INFO=<ID=CSQ,Number=.,Type=String,Description=\"Consequence annotations from mutscan. Format: %s\">",
			strings.Join(csqFields, "|")),
		"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO",
	}
	for _, line := range lines {
		if _, err := vw.w.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return nil
}

// Write writes a single variant as a VCF line.
func (vw *VCFWriter) Write(v scan.Variant) error {
	changes := v.Changes(vw.original)

	var lb strings.Builder
	lb.Grow(128)

	lb.WriteString(vw.chrom)
	lb.WriteByte('\t')
	lb.WriteString(strconv.Itoa(v.Position))
	lb.WriteString("\t.\t")
	lb.WriteByte(v.OriginalBase)
	lb.WriteByte('\t')
	lb.WriteByte(v.NewBase)
	lb.WriteString("\t.\tPASS\tCSQ=")
	vw.writeCSQEntry(&lb, v, changes)
	lb.WriteByte('\n')

	_, err := vw.w.WriteString(lb.String())
	return err
}

// Flush flushes any buffered data to the underlying writer.
func (vw *VCFWriter) Flush() error {
	return vw.w.Flush()
}

// writeCSQEntry writes a variant as a pipe-delimited CSQ entry to a builder.
// Multiple values within a sub-field are joined with '&'.
func (vw *VCFWriter) writeCSQEntry(b *strings.Builder, v scan.Variant, changes []translate.AminoAcidChange) {
	consequence := translate.ChangesConsequence(changes)

	b.WriteByte(v.NewBase)
	b.WriteByte('|')
	b.WriteString(consequence)
	b.WriteByte('|')
	b.WriteString(translate.GetImpact(consequence))
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(v.Position))
	b.WriteByte('|')
	for i, c := range changes {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(strconv.Itoa(c.Position))
	}
	b.WriteByte('|')
	for i, c := range changes {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteByte(c.Ref)
		b.WriteByte('/')
		b.WriteByte(c.Alt)
	}
	b.WriteByte('|')
	b.WriteString(v.CodonChange(vw.seq))
	b.WriteByte('|')
	for i, c := range changes {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(c.HGVSp())
	}
}
