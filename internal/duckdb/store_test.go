package duckdb

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/mutscan/internal/scan"
)

func openInMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func writeScan(t *testing.T, s *Store, seq string) (int64, *scan.Result) {
	t.Helper()
	res, err := scan.Enumerate(seq)
	require.NoError(t, err)

	id, err := s.WriteRun(Run{
		Source:     FileFingerprint{Path: "input_sequence.txt", Size: int64(len(seq)), ModTime: time.Unix(1700000000, 0)},
		StopPolicy: "final",
	}, seq, res)
	require.NoError(t, err)
	return id, res
}

func TestOpenClose(t *testing.T) {
	s := openInMemory(t)
	assert.NotNil(t, s.DB())
	assert.Empty(t, s.Path())
}

func TestWriteRunAndReadBack(t *testing.T) {
	s := openInMemory(t)
	id, res := writeScan(t, s, "ATGGCT")

	run, err := s.GetRun(id)
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, id, run.ID)
	assert.Equal(t, "input_sequence.txt", run.Source.Path)
	assert.Equal(t, 6, run.SequenceLength)
	assert.Equal(t, "MA", run.OriginalProtein)
	assert.Equal(t, "final", run.StopPolicy)
	assert.Equal(t, res.SynonymousCount, run.SynonymousCount)
	assert.Equal(t, res.DuplicateCount, run.DuplicateCount)
	assert.False(t, run.CreatedAt.IsZero())

	vs, err := s.Variants(id)
	require.NoError(t, err)
	require.Len(t, vs, len(res.Variants))
	for i, sv := range vs {
		assert.Equal(t, res.Variants[i], sv.Variant, "variant %d", i)
	}
}

func TestLookupPosition(t *testing.T) {
	s := openInMemory(t)
	id, _ := writeScan(t, s, "ATGGCT")

	vs, err := s.LookupPosition(id, 5)
	require.NoError(t, err)
	require.Len(t, vs, 3)

	// Enumeration order at position 5 (C): A, T, G.
	assert.Equal(t, byte('A'), vs[0].Variant.NewBase)
	assert.Equal(t, byte('T'), vs[1].Variant.NewBase)
	assert.Equal(t, byte('G'), vs[2].Variant.NewBase)

	assert.Equal(t, 2, vs[1].CodonPosition)
	assert.Equal(t, "gCt/gTt", vs[1].CodonChange)
	assert.Equal(t, "A2V", vs[1].AminoAcidChange)
	assert.Equal(t, "p.Ala2Val", vs[1].HGVSp)
	assert.Equal(t, "missense_variant", vs[1].Consequence)
	assert.Equal(t, "MODERATE", vs[1].Impact)
	assert.Equal(t, "MV", vs[1].Variant.Protein)

	// Position 6 only has synonymous substitutions.
	vs, err = s.LookupPosition(id, 6)
	require.NoError(t, err)
	assert.Empty(t, vs)
}

func TestSearchByAminoAcidChange(t *testing.T) {
	s := openInMemory(t)
	first, _ := writeScan(t, s, "ATGGCT")
	second, _ := writeScan(t, s, "ATGGCTTAA")
	assert.Greater(t, second, first)

	found, err := s.SearchByAminoAcidChange("A2V")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, first, found[0].RunID)
	assert.Equal(t, second, found[1].RunID)
	assert.Equal(t, 5, found[0].Variant.Position)

	found, err = s.SearchByAminoAcidChange("W9C")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestSearchByConsequence(t *testing.T) {
	s := openInMemory(t)
	id, _ := writeScan(t, s, "ATGGCTTAA")

	lost, err := s.SearchByConsequence(id, "stop_lost")
	require.NoError(t, err)
	require.Len(t, lost, 6)
	assert.Equal(t, "MAK", lost[0].Variant.Protein)
	assert.Equal(t, "HIGH", lost[0].Impact)

	start, err := s.SearchByConsequence(id, "start_lost")
	require.NoError(t, err)
	assert.Len(t, start, 6)
}

func TestLatestRunAndClear(t *testing.T) {
	s := openInMemory(t)

	run, err := s.LatestRun()
	require.NoError(t, err)
	assert.Nil(t, run)

	writeScan(t, s, "ATGGCT")
	id, _ := writeScan(t, s, "ATGTGG")

	run, err = s.LatestRun()
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, id, run.ID)
	assert.Equal(t, "MW", run.OriginalProtein)

	require.NoError(t, s.ClearRuns())

	run, err = s.LatestRun()
	require.NoError(t, err)
	assert.Nil(t, run)

	missing, err := s.GetRun(id)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestOpenFile_Persists(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "scan.duckdb")

	s, err := Open(dbPath)
	require.NoError(t, err)
	id, _ := writeScan(t, s, "ATGGCT")
	require.NoError(t, s.Close())

	s, err = Open(dbPath)
	require.NoError(t, err)
	defer s.Close()

	run, err := s.GetRun(id)
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, "MA", run.OriginalProtein)
}

func TestStatFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seq.txt")
	require.NoError(t, os.WriteFile(path, []byte("ATGGCT\n"), 0644))

	fp, err := StatFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, fp.Path)
	assert.Equal(t, int64(7), fp.Size)
	assert.False(t, fp.ModTime.IsZero())

	fp, err = StatFile("-")
	require.NoError(t, err)
	assert.Equal(t, "-", fp.Path)

	_, err = StatFile(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
