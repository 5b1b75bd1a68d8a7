package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLap_JSONRoundTrip(t *testing.T) {
	lap := Lap{ID: "l1", Name: "Lap 1", Time: 12.34, LapNumber: 1}

	data, err := json.Marshal(lap)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"l1","name":"Lap 1","time":12.34,"lapNumber":1}`, string(data))

	var got Lap
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, lap, got)
}

func TestLaps_Next(t *testing.T) {
	var laps Laps

	first := laps.Next("l1", "Lap 1", 10)
	assert.Equal(t, Lap{ID: "l1", Name: "Lap 1", Time: 10, LapNumber: 1}, first)

	laps = append(laps, first)
	second := laps.Next("l2", "Lap 2", 21.5)
	assert.Equal(t, 2, second.LapNumber)
	assert.Len(t, laps, 1)
}

func TestLaps_Validate(t *testing.T) {
	tests := []struct {
		name    string
		laps    Laps
		wantErr bool
	}{
		{name: "empty", laps: nil},
		{name: "single", laps: Laps{{ID: "a", LapNumber: 5}}},
		{name: "increasing with gaps", laps: Laps{{ID: "a", LapNumber: 1}, {ID: "b", LapNumber: 3}}},
		{name: "repeated number", laps: Laps{{ID: "a", LapNumber: 1}, {ID: "b", LapNumber: 1}}, wantErr: true},
		{name: "decreasing", laps: Laps{{ID: "a", LapNumber: 2}, {ID: "b", LapNumber: 1}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.laps.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrLapOrder)
				return
			}
			assert.NoError(t, err)
		})
	}
}
