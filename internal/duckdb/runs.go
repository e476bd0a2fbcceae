package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/inodb/mutscan/internal/scan"
	"github.com/inodb/mutscan/internal/translate"
)

// Run describes one stored enumeration.
type Run struct {
	ID              int64
	Source          FileFingerprint
	RecordID        string
	SequenceLength  int
	OriginalProtein string
	StopPolicy      string
	StopCount       int
	SynonymousCount int
	DuplicateCount  int
	SkippedCount    int
	CreatedAt       time.Time
}

// StoredVariant is a retained variant read back from the store.
type StoredVariant struct {
	RunID           int64
	Variant         scan.Variant
	CodonPosition   int
	CodonChange     string
	AminoAcidChange string
	HGVSp           string
	Consequence     string
	Impact          string
}

// WriteRun stores a scan result and its variants, returning the new run ID.
// seq is the scanned coding sequence, used to derive codon changes.
func (s *Store) WriteRun(run Run, seq string, res *scan.Result) (int64, error) {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	var id int64
	err := s.db.QueryRow(`INSERT INTO scan_runs (
		source_path, source_size, source_mtime, record_id,
		sequence_length, original_protein, stop_policy,
		stop_count, synonymous_count, duplicate_count, skipped_count,
		created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING run_id`,
		run.Source.Path, run.Source.Size, run.Source.ModTime, run.RecordID,
		int64(len(seq)), res.OriginalProtein, run.StopPolicy,
		int64(res.StopCount), int64(res.SynonymousCount), int64(res.DuplicateCount), int64(res.SkippedCount),
		run.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}

	if err := s.writeVariants(id, seq, res); err != nil {
		return 0, err
	}
	return id, nil
}

// writeVariants batch-inserts variants using the Appender API.
func (s *Store) writeVariants(runID int64, seq string, res *scan.Result) error {
	if len(res.Variants) == 0 {
		return nil
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "scan_variants")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	for _, v := range res.Variants {
		changes := v.Changes(res.OriginalProtein)
		consequence := translate.ChangesConsequence(changes)
		if err := appender.AppendRow(
			runID, int64(v.Position), string(v.OriginalBase), string(v.NewBase),
			int64(v.CodonNumber()), v.CodonChange(seq),
			translate.JoinChanges(changes, translate.AminoAcidChange.String),
			translate.JoinChanges(changes, translate.AminoAcidChange.HGVSp),
			consequence, translate.GetImpact(consequence),
			v.Protein,
		); err != nil {
			return fmt.Errorf("append variant: %w", err)
		}
	}

	return appender.Flush()
}

// LatestRun returns the most recently stored run, or nil if there is none.
func (s *Store) LatestRun() (*Run, error) {
	row := s.db.QueryRow(`SELECT ` + runColumns + ` FROM scan_runs ORDER BY run_id DESC LIMIT 1`)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return run, err
}

// GetRun returns the run with the given ID, or nil if it does not exist.
func (s *Store) GetRun(id int64) (*Run, error) {
	row := s.db.QueryRow(`SELECT `+runColumns+` FROM scan_runs WHERE run_id=?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return run, err
}

// LookupPosition returns the retained variants of a run at a 1-based
// nucleotide position.
func (s *Store) LookupPosition(runID int64, ntPosition int) ([]StoredVariant, error) {
	rows, err := s.db.Query(`SELECT `+variantColumns+`
		FROM scan_variants
		WHERE run_id=? AND nt_position=?`, runID, int64(ntPosition))
	if err != nil {
		return nil, fmt.Errorf("query position: %w", err)
	}
	defer rows.Close()

	vs, err := scanVariants(rows)
	if err != nil {
		return nil, err
	}
	sortEnumerationOrder(vs)
	return vs, nil
}

// Variants returns all retained variants of a run in enumeration order.
func (s *Store) Variants(runID int64) ([]StoredVariant, error) {
	rows, err := s.db.Query(`SELECT `+variantColumns+`
		FROM scan_variants
		WHERE run_id=?`, runID)
	if err != nil {
		return nil, fmt.Errorf("query variants: %w", err)
	}
	defer rows.Close()

	vs, err := scanVariants(rows)
	if err != nil {
		return nil, err
	}
	sortEnumerationOrder(vs)
	return vs, nil
}

// SearchByConsequence returns the retained variants of a run with the given
// SO consequence term, in enumeration order.
func (s *Store) SearchByConsequence(runID int64, consequence string) ([]StoredVariant, error) {
	rows, err := s.db.Query(`SELECT `+variantColumns+`
		FROM scan_variants
		WHERE run_id=? AND consequence=?`, runID, consequence)
	if err != nil {
		return nil, fmt.Errorf("query by consequence: %w", err)
	}
	defer rows.Close()

	vs, err := scanVariants(rows)
	if err != nil {
		return nil, err
	}
	sortEnumerationOrder(vs)
	return vs, nil
}

// SearchByAminoAcidChange returns stored variants across all runs with the
// given amino acid change (e.g. "A2V").
func (s *Store) SearchByAminoAcidChange(change string) ([]StoredVariant, error) {
	rows, err := s.db.Query(`SELECT `+variantColumns+`
		FROM scan_variants
		WHERE amino_acid_change=?
		ORDER BY run_id, nt_position`, change)
	if err != nil {
		return nil, fmt.Errorf("query by amino acid change: %w", err)
	}
	defer rows.Close()

	return scanVariants(rows)
}

// ClearRuns removes all stored runs and variants.
func (s *Store) ClearRuns() error {
	if _, err := s.db.Exec("DELETE FROM scan_variants"); err != nil {
		return err
	}
	_, err := s.db.Exec("DELETE FROM scan_runs")
	return err
}

const runColumns = `run_id, source_path, source_size, source_mtime, record_id,
	sequence_length, original_protein, stop_policy,
	stop_count, synonymous_count, duplicate_count, skipped_count, created_at`

const variantColumns = `run_id, nt_position, ref, alt, codon_position,
	codon_change, amino_acid_change, hgvsp, consequence, impact, protein`

func scanRun(row *sql.Row) (*Run, error) {
	var r Run
	if err := row.Scan(
		&r.ID, &r.Source.Path, &r.Source.Size, &r.Source.ModTime, &r.RecordID,
		&r.SequenceLength, &r.OriginalProtein, &r.StopPolicy,
		&r.StopCount, &r.SynonymousCount, &r.DuplicateCount, &r.SkippedCount, &r.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan run: %w", err)
	}
	return &r, nil
}

// scanVariants scans rows into StoredVariant slices.
func scanVariants(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]StoredVariant, error) {
	var results []StoredVariant
	for rows.Next() {
		var sv StoredVariant
		var ref, alt string
		if err := rows.Scan(
			&sv.RunID, &sv.Variant.Position, &ref, &alt, &sv.CodonPosition,
			&sv.CodonChange, &sv.AminoAcidChange, &sv.HGVSp, &sv.Consequence, &sv.Impact,
			&sv.Variant.Protein,
		); err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		if len(ref) != 1 || len(alt) != 1 {
			return nil, fmt.Errorf("scan variant: malformed bases %q>%q at %d", ref, alt, sv.Variant.Position)
		}
		sv.Variant.OriginalBase = ref[0]
		sv.Variant.NewBase = alt[0]
		results = append(results, sv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate variants: %w", err)
	}
	return results, nil
}
