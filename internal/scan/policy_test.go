package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasPrematureStop(t *testing.T) {
	tests := []struct {
		name      string
		original  string
		mutated   string
		wantFinal bool
		wantMatch bool
	}{
		{"no stop", "MA", "MV", false, false},
		{"internal stop", "MWA", "M*A", true, true},
		{"first codon stop", "MA", "*A", true, true},
		{"new stop at last codon", "MW", "M*", false, true},
		{"kept natural stop", "MA*", "MA*", false, false},
		{"lost natural stop", "MA*", "MAK", false, false},
		{"empty", "", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantFinal, StopPolicyFinal.HasPrematureStop(tt.original, tt.mutated))
			assert.Equal(t, tt.wantMatch, StopPolicyMatchOriginal.HasPrematureStop(tt.original, tt.mutated))
		})
	}
}

func TestParseStopPolicy(t *testing.T) {
	tests := []struct {
		in   string
		want StopPolicy
	}{
		{"", StopPolicyFinal},
		{"final", StopPolicyFinal},
		{"FINAL", StopPolicyFinal},
		{"match", StopPolicyMatchOriginal},
		{"match-original", StopPolicyMatchOriginal},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStopPolicy(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NotEmpty(t, got.String())
		})
	}

	_, err := ParseStopPolicy("sometimes")
	assert.Error(t, err)
}
