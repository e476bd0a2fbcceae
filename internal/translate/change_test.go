package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAminoAcidChange(t *testing.T) {
	tests := []struct {
		name      string
		change    AminoAcidChange
		wantShort string
		wantHGVSp string
	}{
		{"missense", AminoAcidChange{Position: 12, Ref: 'G', Alt: 'C'}, "G12C", "p.Gly12Cys"},
		{"to stop", AminoAcidChange{Position: 3, Ref: 'R', Alt: '*'}, "R3*", "p.Arg3Ter"},
		{"stop lost", AminoAcidChange{Position: 4, Ref: '*', Alt: 'W'}, "*4W", "p.Ter4Trp"},
		{"synonymous", AminoAcidChange{Position: 2, Ref: 'A', Alt: 'A'}, "A2A", "p.Ala2="},
		{"unknown", AminoAcidChange{Position: 1, Ref: 'B', Alt: 'M'}, "B1M", "p.Xaa1Met"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantShort, tt.change.String())
			assert.Equal(t, tt.wantHGVSp, tt.change.HGVSp())
		})
	}
}

func TestDiff(t *testing.T) {
	assert.Empty(t, Diff("MA", "MA"))
	assert.Equal(t, []AminoAcidChange{{Position: 2, Ref: 'A', Alt: 'V'}}, Diff("MA", "MV"))
	assert.Equal(t, []AminoAcidChange{
		{Position: 1, Ref: 'M', Alt: 'K'},
		{Position: 3, Ref: '*', Alt: 'W'},
	}, Diff("MA*", "KAW"))
}

func TestDiff_LengthMismatchPanics(t *testing.T) {
	assert.Panics(t, func() { Diff("MA", "M") })
}
