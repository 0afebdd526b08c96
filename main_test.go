package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaselineCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{"urban", []string{"baseline", "urban", "2"}, "25.00\n", false},
		{"unknown location falls back", []string{"baseline", "island", "1"}, "15.00\n", false},
		{"zero household", []string{"baseline", "urban", "0"}, "", true},
		{"non-integer household", []string{"baseline", "urban", "two"}, "", true},
		{"missing args", []string{"baseline", "urban"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			cmd := newRootCmd()
			cmd.SetOut(&out)
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.String())
		})
	}
}
