package translate

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateCodon(t *testing.T) {
	tests := []struct {
		name  string
		codon string
		want  byte
	}{
		// Standard amino acids
		{"ATG -> Met (start)", "ATG", 'M'},
		{"GGT -> Gly", "GGT", 'G'},
		{"TGT -> Cys", "TGT", 'C'},
		{"TTT -> Phe", "TTT", 'F'},
		{"AAA -> Lys", "AAA", 'K'},
		{"GCT -> Ala", "GCT", 'A'},

		// Stop codons
		{"TAA -> Stop", "TAA", '*'},
		{"TAG -> Stop", "TAG", '*'},
		{"TGA -> Stop", "TGA", '*'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TranslateCodon(tt.codon)
			require.NoError(t, err)
			assert.Equal(t, string(tt.want), string(got))
		})
	}
}

func TestTranslateCodon_Invalid(t *testing.T) {
	for _, codon := range []string{"", "AT", "ATGG", "XYZ", "ANG", "atg"} {
		t.Run(codon, func(t *testing.T) {
			_, err := TranslateCodon(codon)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidCodon)
		})
	}
}

func TestCodonTableComplete(t *testing.T) {
	bases := "ATCG"
	stops := 0
	for _, a := range bases {
		for _, b := range bases {
			for _, c := range bases {
				aa, err := TranslateCodon(string([]rune{a, b, c}))
				require.NoError(t, err)
				if IsStop(aa) {
					stops++
				}
			}
		}
	}
	assert.Equal(t, 3, stops)
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		seq  string
		want string
	}{
		{"simple protein", "ATGGGTCGA", "MGR"},
		{"with stop", "ATGGGTCGATAA", "MGR*"},
		{"internal stop kept", "ATGTAAGGT", "M*G"},
		{"empty", "", ""},
		{"single codon", "ATG", "M"},
		{"met-ala", "ATGGCT", "MA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Translate(tt.seq)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			gotBytes, err := TranslateBytes([]byte(tt.seq))
			require.NoError(t, err)
			assert.Equal(t, tt.want, gotBytes)
		})
	}
}

func TestTranslate_Length(t *testing.T) {
	seq := strings.Repeat("GCT", 40) + "ATGTGA"
	got, err := Translate(seq)
	require.NoError(t, err)
	assert.Len(t, got, len(seq)/3)
}

func TestTranslate_PartialCodon(t *testing.T) {
	_, err := Translate("ATGGGTCGAT")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLengthNotMultipleOfThree)

	_, err = TranslateBytes([]byte("ATGG"))
	assert.ErrorIs(t, err, ErrLengthNotMultipleOfThree)
}

func TestTranslate_InvalidCodon(t *testing.T) {
	_, err := Translate("ATGNNNGCT")
	require.Error(t, err)

	var codonErr *InvalidCodonError
	require.True(t, errors.As(err, &codonErr))
	assert.Equal(t, "NNN", codonErr.Codon)
	assert.Equal(t, 2, codonErr.Number)
	assert.ErrorIs(t, err, ErrInvalidCodon)
}

func TestTranslate_SynonymousThirdPosition(t *testing.T) {
	// Ala is four-fold degenerate at the third codon position.
	orig, err := Translate("ATGGCT")
	require.NoError(t, err)
	for _, b := range []byte("ACG") {
		mutated := "ATGGC" + string(b)
		got, err := Translate(mutated)
		require.NoError(t, err)
		assert.Equal(t, orig, got, mutated)
	}
}

func TestGetCodon(t *testing.T) {
	cds := "ATGGGTCGATAA" // ATG GGT CGA TAA (Met Gly Arg Stop)

	tests := []struct {
		name        string
		codonNumber int
		want        string
	}{
		{"codon 1", 1, "ATG"},
		{"codon 2", 2, "GGT"},
		{"codon 3", 3, "CGA"},
		{"codon 4 (stop)", 4, "TAA"},
		{"codon 0 (invalid)", 0, ""},
		{"codon 5 (beyond)", 5, ""},
		{"negative codon", -1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetCodon(cds, tt.codonNumber))
		})
	}
}

func TestMutateCodon(t *testing.T) {
	tests := []struct {
		name            string
		codon           string
		positionInCodon int
		newBase         byte
		want            string
	}{
		{"first position", "GGT", 0, 'T', "TGT"}, // G12C: GGT -> TGT
		{"second position", "GGT", 1, 'A', "GAT"},
		{"third position", "GGT", 2, 'A', "GGA"},
		{"invalid position", "GGT", 3, 'A', "GGT"},
		{"negative position", "GGT", -1, 'A', "GGT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MutateCodon(tt.codon, tt.positionInCodon, tt.newBase))
		})
	}
}
