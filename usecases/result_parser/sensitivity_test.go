package result_parser

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/getforesight/foresight-backend/models"
	"github.com/getforesight/foresight-backend/pure_utils"
)

func TestParseSensitivity_dedicatedArrayPassesThrough(t *testing.T) {
	dedicated := json.RawMessage(
		`[{"driver":"churn","correlation":-0.7,"significance":0.01}]`)

	entries := ParseSensitivity(context.Background(), dedicated, nil)

	assert.Len(t, entries, 1)
	assert.Equal(t, "churn", entries[0].Driver)
	assert.Equal(t, -0.7, *entries[0].Correlation)
	// absolute correlation is computed when the engine did not report it
	assert.Equal(t, 0.7, *entries[0].AbsoluteCorrelation)
	assert.Equal(t, 0.01, *entries[0].Significance)
}

func TestParseSensitivity_dedicatedMapping(t *testing.T) {
	dedicated := json.RawMessage(`{
		"churn": {"pearson_correlation": -0.4, "spearman_correlation": -0.38},
		"growth": {"pearson_correlation": 0.8, "significance": 0.001}
	}`)

	entries := ParseSensitivity(context.Background(), dedicated, nil)

	assert.Len(t, entries, 2)
	// ranked by descending absolute correlation
	assert.Equal(t, "growth", entries[0].Driver)
	assert.Equal(t, 0.8, *entries[0].Correlation)
	assert.Equal(t, 0.8, *entries[0].AbsoluteCorrelation)
	assert.Equal(t, "churn", entries[1].Driver)
	assert.Equal(t, 0.4, *entries[1].AbsoluteCorrelation)
	assert.Equal(t, -0.38, *entries[1].SecondaryCorrelation)
}

func TestParseSensitivity_tornadoFallback(t *testing.T) {
	percentiles := ParsePercentileTable(context.Background(), json.RawMessage(`{
		"p50": [100, 110],
		"tornado_sensitivity": {"driverA": {"pearson_correlation": 0.8}}
	}`))

	entries := ParseSensitivity(context.Background(), nil, percentiles)

	assert.Len(t, entries, 1)
	assert.Equal(t, "driverA", entries[0].Driver)
	assert.Equal(t, 0.8, *entries[0].Correlation)
	assert.Equal(t, 0.8, *entries[0].AbsoluteCorrelation)
}

func TestParseSensitivity_doubleEncodedDedicatedField(t *testing.T) {
	dedicated := json.RawMessage(`"[{\"driver\":\"spend\",\"correlation\":0.2}]"`)

	entries := ParseSensitivity(context.Background(), dedicated, nil)

	assert.Len(t, entries, 1)
	assert.Equal(t, "spend", entries[0].Driver)
}

func TestParseSensitivity_dedicatedWinsOverTornado(t *testing.T) {
	dedicated := json.RawMessage(`[{"driver":"spend","correlation":0.2}]`)
	percentiles := ParsePercentileTable(context.Background(), json.RawMessage(
		`{"tornado_sensitivity":{"churn":{"pearson_correlation":0.9}}}`))

	entries := ParseSensitivity(context.Background(), dedicated, percentiles)

	assert.Len(t, entries, 1)
	assert.Equal(t, "spend", entries[0].Driver)
}

func TestParseSensitivity_nothingUsable(t *testing.T) {
	tests := []struct {
		name        string
		dedicated   json.RawMessage
		percentiles *models.PercentileTable
	}{
		{"no payloads at all", nil, nil},
		{"scalar dedicated field, no percentiles", json.RawMessage(`12`), nil},
		{
			"percentiles without a tornado section",
			nil,
			ParsePercentileTable(context.Background(), json.RawMessage(`{"p50":[1]}`)),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, ParseSensitivity(context.Background(), tt.dedicated, tt.percentiles))
		})
	}
}

func TestFillAbsoluteCorrelations_keepsReportedValue(t *testing.T) {
	entries := fillAbsoluteCorrelations([]models.SensitivityEntry{
		{
			Driver:              "churn",
			Correlation:         pure_utils.Ptr(-0.5),
			AbsoluteCorrelation: pure_utils.Ptr(0.51),
		},
	})
	assert.Equal(t, 0.51, *entries[0].AbsoluteCorrelation)
}
