package sequence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		seq     string
		wantErr string
	}{
		{"valid", "ATGGCT", ""},
		{"single codon", "TAA", ""},
		{"empty", "", "empty sequence"},
		{"partial codon", "ATGGC", "length 5 is not a multiple of 3"},
		{"ambiguous base", "ATGNCT", `unexpected symbol 'N' at position 4`},
		{"lowercase", "atggct", `unexpected symbol 'a' at position 1`},
		{"RNA", "AUGGCU", `unexpected symbol 'U' at position 2`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.seq)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidSequence)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestIsBase(t *testing.T) {
	for _, b := range Bases {
		assert.True(t, IsBase(b), string(b))
	}
	for _, b := range []byte("NUatcg-*") {
		assert.False(t, IsBase(b), string(b))
	}
}
