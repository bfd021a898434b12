package result_parser

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeProgress(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected float64
	}{
		{"plain number", `42`, 42},
		{"numeric string", `"42"`, 42},
		{"numeric string with spaces", `" 55.5 "`, 55.5},
		{"above the scale is clamped", `150`, 100},
		{"below the scale is clamped", `-5`, 0},
		{"unparseable string", `"almost done"`, 0},
		{"NaN string does not escape the clamp", `"NaN"`, 0},
		{"infinite string is clamped", `"Inf"`, 100},
		{"object", `{"done": 12}`, 0},
		{"null", `null`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected,
				NormalizeProgress(context.Background(), json.RawMessage(tt.raw)))
		})
	}
}

func TestNormalizeProgress_emptyPayload(t *testing.T) {
	assert.Equal(t, 0.0, NormalizeProgress(context.Background(), nil))
}
