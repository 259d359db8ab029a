package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinates_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Coordinates
		wantErr bool
	}{
		{"pair", `[53.9, 27.5]`, NewCoordinates(53.9, 27.5), false},
		{"sentinel", `"Not info"`, UnknownCoordinates(), false},
		{"other string", `"unknown"`, Coordinates{}, true},
		{"three values", `[1, 2, 3]`, Coordinates{}, true},
		{"one value", `[1]`, Coordinates{}, true},
		{"text values", `["53.9", "27.5"]`, Coordinates{}, true},
		{"object", `{"lat": 1}`, Coordinates{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Coordinates

			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidCoordinates)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoordinates_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(NewCoordinates(53.9, 27.5))
	require.NoError(t, err)
	assert.JSONEq(t, `[53.9, 27.5]`, string(data))

	data, err = json.Marshal(UnknownCoordinates())
	require.NoError(t, err)
	assert.Equal(t, `"Not info"`, string(data))
}
