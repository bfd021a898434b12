package result_parser

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePercentileTable_structured(t *testing.T) {
	raw := json.RawMessage(`{"p5":[80,85],"p50":[100,110],"p95":[130,150],"confidence":0.9}`)

	table := ParsePercentileTable(context.Background(), raw)

	assert.NotNil(t, table)
	assert.Equal(t, []float64{100, 110}, table.Series["p50"])
	assert.Equal(t, []float64{80, 85}, table.Series["p5"])
	assert.NotContains(t, table.Series, "confidence")
	assert.JSONEq(t, string(raw), string(table.Raw))
}

func TestParsePercentileTable_doubleEncoded(t *testing.T) {
	raw := json.RawMessage(`"{\"p50\":[100,110]}"`)

	table := ParsePercentileTable(context.Background(), raw)

	assert.NotNil(t, table)
	assert.Equal(t, []float64{100, 110}, table.Series["p50"])
}

func TestParsePercentileTable_malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  json.RawMessage
	}{
		{"empty payload", nil},
		{"scalar payload", json.RawMessage(`42`)},
		{"array payload", json.RawMessage(`[1,2,3]`)},
		{"string that is not json", json.RawMessage(`"not json at all"`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, ParsePercentileTable(context.Background(), tt.raw))
		})
	}
}

func TestParsePercentileTable_mixedArrayStaysRawOnly(t *testing.T) {
	raw := json.RawMessage(`{"p50":[100,"boom"],"p95":[130]}`)

	table := ParsePercentileTable(context.Background(), raw)

	assert.NotNil(t, table)
	assert.NotContains(t, table.Series, "p50")
	assert.Equal(t, []float64{130}, table.Series["p95"])
}

func TestSurvivalProbability(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			"current spelling",
			`{"p50":[1],"survival_probability":{"p50":0.92,"p5":0.71}}`,
			`{"p50":0.92,"p5":0.71}`,
		},
		{
			"legacy camel case spelling",
			`{"survivalProbability":{"p50":0.88}}`,
			`{"p50":0.88}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := ParsePercentileTable(context.Background(), json.RawMessage(tt.raw))
			assert.JSONEq(t, tt.expected, string(SurvivalProbability(table)))
		})
	}
}

func TestSurvivalProbability_absent(t *testing.T) {
	table := ParsePercentileTable(context.Background(), json.RawMessage(`{"p50":[1]}`))
	assert.Nil(t, SurvivalProbability(table))
	assert.Nil(t, SurvivalProbability(nil))
}
