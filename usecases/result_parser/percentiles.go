// Package result_parser normalizes the payloads the simulation engines write
// on a result row. Several engine generations are in production: payloads may
// be structured jsonb, double-encoded JSON strings, or missing entirely, and
// a handful of keys have two historical spellings. Every parser here degrades
// to a safe zero value with a warning instead of failing the caller.
package result_parser

import (
	"context"
	"encoding/json"

	"github.com/tidwall/gjson"

	"github.com/getforesight/foresight-backend/models"
	"github.com/getforesight/foresight-backend/utils"
)

// ParsePercentileTable decodes the percentile payload of a simulation result.
// It accepts the payload already structured or double-encoded (a jsonb string
// containing JSON, as written by pre-2024 engines). A malformed payload is
// logged and dropped, never propagated.
func ParsePercentileTable(ctx context.Context, raw json.RawMessage) *models.PercentileTable {
	if len(raw) == 0 {
		return nil
	}

	parsed := gjson.ParseBytes(raw)
	if parsed.Type == gjson.String {
		// double-encoded variant
		parsed = gjson.Parse(parsed.String())
	}
	if !parsed.IsObject() {
		utils.LoggerFromContext(ctx).WarnContext(ctx,
			"percentile payload is neither an object nor an encoded object, dropping it")
		return nil
	}

	table := models.PercentileTable{
		Series: map[string][]float64{},
		Raw:    json.RawMessage(parsed.Raw),
	}
	parsed.ForEach(func(key, value gjson.Result) bool {
		if !value.IsArray() {
			return true
		}
		items := value.Array()
		series := make([]float64, 0, len(items))
		for _, item := range items {
			if item.Type != gjson.Number {
				// not a numeric trajectory, keep it in Raw only
				return true
			}
			series = append(series, item.Float())
		}
		table.Series[key.String()] = series
		return true
	})
	return &table
}

// Two spellings are in the wild for the survival block, depending on the
// engine generation that wrote the row.
var survivalProbabilityKeys = []string{"survival_probability", "survivalProbability"}

// SurvivalProbability extracts the survival block from a percentile payload,
// or nil when the payload has none.
func SurvivalProbability(table *models.PercentileTable) json.RawMessage {
	if table == nil {
		return nil
	}
	for _, key := range survivalProbabilityKeys {
		if value := gjson.GetBytes(table.Raw, key); value.Exists() {
			return json.RawMessage(value.Raw)
		}
	}
	return nil
}
