package handler

import (
	"encoding/json"
	"testing"
)

func TestMinutesValue(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{name: "number", raw: `30`, want: 30},
		{name: "numeric string", raw: `" 45 "`, want: 45},
		{name: "word", raw: `"abc"`, want: 0},
		{name: "fraction", raw: `12.5`, want: 0},
		{name: "null", raw: `null`, want: 0},
		{name: "bool", raw: `true`, want: 0},
		{name: "missing", raw: ``, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := minutesValue(json.RawMessage(tt.raw)); got != tt.want {
				t.Fatalf("minutesValue(%s) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}
