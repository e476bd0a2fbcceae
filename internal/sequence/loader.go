package sequence

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// LoadOptions controls how an input file is read.
type LoadOptions struct {
	// RecordID selects a FASTA record by ID. Empty means the first record.
	RecordID string
}

// Record is a sequence read from an input file.
type Record struct {
	ID       string // FASTA record ID, empty for plain text input
	Sequence string
}

// Load reads a coding sequence from path ("-" for stdin).
// Plain text and FASTA are both accepted; FASTA is detected by a leading '>'.
// Files ending in .gz are decompressed. The result is uppercased with all
// whitespace removed but is not validated.
func Load(path string, opts LoadOptions) (*Record, error) {
	var f *os.File
	if path == "-" {
		f = os.Stdin
	} else {
		var err error
		f, err = os.Open(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrMissingInput, path)
			}
			return nil, fmt.Errorf("open sequence file: %w", err)
		}
		defer f.Close()
	}

	var reader io.Reader = f

	// Handle gzipped files
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	return Read(reader, opts)
}

// Read parses plain text or FASTA content from r.
func Read(r io.Reader, opts LoadOptions) (*Record, error) {
	br := bufio.NewReader(r)
	if isFASTA(br) {
		return parseFASTA(br, opts.RecordID)
	}
	if opts.RecordID != "" {
		return nil, fmt.Errorf("record %q requested but input is not FASTA", opts.RecordID)
	}

	data, err := io.ReadAll(br)
	if err != nil {
		return nil, fmt.Errorf("read sequence: %w", err)
	}
	return &Record{Sequence: normalize(data)}, nil
}

// isFASTA peeks past leading whitespace for a '>' header.
func isFASTA(br *bufio.Reader) bool {
	for n := 1; ; n++ {
		buf, _ := br.Peek(n)
		if len(buf) < n {
			return false
		}
		c := buf[n-1]
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			continue
		}
		return c == '>'
	}
}

// parseFASTA returns the first record, or the record whose ID matches want.
func parseFASTA(r io.Reader, want string) (*Record, error) {
	scanner := bufio.NewScanner(r)
	// Increase buffer size for long sequences
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024) // 10MB max line

	var currentID string
	var currentSeq bytes.Buffer
	inRecord := false

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if strings.HasPrefix(line, ">") {
			if inRecord {
				return &Record{ID: currentID, Sequence: normalize(currentSeq.Bytes())}, nil
			}
			currentID = parseHeader(line)
			inRecord = want == "" || currentID == want
			continue
		}
		if inRecord {
			currentSeq.WriteString(line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan FASTA: %w", err)
	}
	if !inRecord {
		if want != "" {
			return nil, fmt.Errorf("%w: FASTA record %q not found", ErrMissingInput, want)
		}
		return nil, fmt.Errorf("%w: FASTA file has no records", ErrMissingInput)
	}
	return &Record{ID: currentID, Sequence: normalize(currentSeq.Bytes())}, nil
}

// parseHeader extracts the record ID from a FASTA header.
// Handles pipe-delimited GENCODE style and space-delimited descriptions.
func parseHeader(header string) string {
	header = strings.TrimPrefix(header, ">")
	if idx := strings.IndexAny(header, "| \t"); idx != -1 {
		return header[:idx]
	}
	return strings.TrimSpace(header)
}

// normalize strips all whitespace and uppercases the sequence.
func normalize(data []byte) string {
	out := make([]byte, 0, len(data))
	for _, c := range data {
		switch c {
		case ' ', '\t', '\r', '\n', '\v', '\f':
			continue
		}
		if 'a' <= c && c <= 'z' {
			c -= 'a' - 'A'
		}
		out = append(out, c)
	}
	return string(out)
}
