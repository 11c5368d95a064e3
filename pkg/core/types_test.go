package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSide(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Side
		wantErr bool
	}{
		{"left", "left", SideLeft, false},
		{"right", "right", SideRight, false},
		{"both", "both", SideBoth, false},
		{"empty", "", "", true},
		{"unknown", "middle", "", true},
		{"wrong case", "Left", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSide(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
