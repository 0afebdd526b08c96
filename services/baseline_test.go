package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeBaseline(t *testing.T) {
	tests := []struct {
		name      string
		location  string
		household int
		want      float64
	}{
		{name: "urban", location: "urban", household: 3, want: 37.5},
		{name: "rural", location: "rural", household: 2, want: 37.6},
		{name: "suburban single", location: "suburban", household: 1, want: 16.2},
		{name: "unknown uses default multiplier", location: "unknown", household: 4, want: 60.0},
		{name: "empty uses default multiplier", location: "", household: 1, want: 15.0},
		{name: "case insensitive", location: "URBAN", household: 2, want: 25.0},
		{name: "mixed case with spaces", location: "  SubUrban ", household: 2, want: 32.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeBaseline(tt.location, tt.household)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestComputeBaselineRejectsNonPositiveHousehold(t *testing.T) {
	for _, size := range []int{0, -1} {
		_, err := ComputeBaseline("urban", size)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidation)
	}
}
