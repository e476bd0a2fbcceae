package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsequence(t *testing.T) {
	tests := []struct {
		name   string
		change AminoAcidChange
		want   string
		impact string
	}{
		{"missense", AminoAcidChange{Position: 2, Ref: 'A', Alt: 'V'}, ConsequenceMissenseVariant, ImpactModerate},
		{"stop gained", AminoAcidChange{Position: 2, Ref: 'W', Alt: '*'}, ConsequenceStopGained, ImpactHigh},
		{"stop lost", AminoAcidChange{Position: 3, Ref: '*', Alt: 'K'}, ConsequenceStopLost, ImpactHigh},
		{"start lost", AminoAcidChange{Position: 1, Ref: 'M', Alt: 'L'}, ConsequenceStartLost, ImpactHigh},
		{"met not at start", AminoAcidChange{Position: 4, Ref: 'M', Alt: 'L'}, ConsequenceMissenseVariant, ImpactModerate},
		{"synonymous", AminoAcidChange{Position: 2, Ref: 'A', Alt: 'A'}, ConsequenceSynonymousVariant, ImpactLow},
		{"stop retained", AminoAcidChange{Position: 3, Ref: '*', Alt: '*'}, ConsequenceStopRetained, ImpactLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Consequence(tt.change)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.impact, GetImpact(got))
		})
	}
}

func TestChangesConsequence(t *testing.T) {
	assert.Equal(t, ConsequenceSynonymousVariant, ChangesConsequence(nil))
	assert.Equal(t, ConsequenceMissenseVariant, ChangesConsequence(Diff("MA", "MV")))
	assert.Equal(t, ConsequenceStopGained, ChangesConsequence([]AminoAcidChange{
		{Position: 2, Ref: 'A', Alt: 'V'},
		{Position: 3, Ref: 'W', Alt: '*'},
	}))
}

func TestImpactRank(t *testing.T) {
	assert.Greater(t, ImpactRank(ImpactHigh), ImpactRank(ImpactModerate))
	assert.Greater(t, ImpactRank(ImpactModerate), ImpactRank(ImpactLow))
	assert.Greater(t, ImpactRank(ImpactLow), ImpactRank(ImpactModifier))
	assert.Equal(t, ImpactModifier, GetImpact("intergenic_variant"))
}
