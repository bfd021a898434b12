package result_parser

import (
	"context"
	"encoding/json"
	"math"
	"sort"

	"github.com/tidwall/gjson"

	"github.com/getforesight/foresight-backend/models"
	"github.com/getforesight/foresight-backend/utils"
)

const tornadoSensitivityKey = "tornado_sensitivity"

// ParseSensitivity resolves the driver sensitivity ranking of a simulation
// result. Variants are tried in a fixed priority order:
//  1. the dedicated sensitivity field, already array-shaped (passed through)
//  2. the dedicated sensitivity field as a driver->statistics mapping
//  3. the tornado section embedded in the percentile payload
//
// The output shape is always the same array of entries whatever the source
// was; nil means no variant matched.
func ParseSensitivity(
	ctx context.Context,
	dedicated json.RawMessage,
	percentiles *models.PercentileTable,
) []models.SensitivityEntry {
	logger := utils.LoggerFromContext(ctx)

	if len(dedicated) > 0 {
		parsed := gjson.ParseBytes(dedicated)
		if parsed.Type == gjson.String {
			parsed = gjson.Parse(parsed.String())
		}
		switch {
		case parsed.IsArray():
			var entries []models.SensitivityEntry
			if err := json.Unmarshal([]byte(parsed.Raw), &entries); err == nil {
				return fillAbsoluteCorrelations(entries)
			}
			logger.WarnContext(ctx,
				"array-shaped sensitivity payload does not decode, trying the tornado fallback")
		case parsed.IsObject():
			return entriesFromDriverMapping(parsed)
		default:
			logger.WarnContext(ctx,
				"sensitivity payload is neither an array nor a mapping, trying the tornado fallback")
		}
	}

	if percentiles == nil {
		return nil
	}
	tornado := gjson.GetBytes(percentiles.Raw, tornadoSensitivityKey)
	switch {
	case tornado.IsObject():
		return entriesFromDriverMapping(tornado)
	case tornado.IsArray():
		var entries []models.SensitivityEntry
		if err := json.Unmarshal([]byte(tornado.Raw), &entries); err == nil {
			return fillAbsoluteCorrelations(entries)
		}
	}
	return nil
}

// entriesFromDriverMapping converts the driver->statistics mapping shape into
// the canonical entry array, ranked by descending absolute correlation so the
// strongest driver comes first.
func entriesFromDriverMapping(mapping gjson.Result) []models.SensitivityEntry {
	entries := make([]models.SensitivityEntry, 0)
	mapping.ForEach(func(key, stats gjson.Result) bool {
		entry := models.SensitivityEntry{
			Driver:               key.String(),
			Correlation:          floatOrNil(stats.Get("pearson_correlation")),
			SecondaryCorrelation: floatOrNil(stats.Get("spearman_correlation")),
			AbsoluteCorrelation:  floatOrNil(stats.Get("abs_correlation")),
			Significance:         floatOrNil(stats.Get("significance")),
		}
		entries = append(entries, entry)
		return true
	})
	entries = fillAbsoluteCorrelations(entries)

	sort.SliceStable(entries, func(i, j int) bool {
		left, right := entries[i].AbsoluteCorrelation, entries[j].AbsoluteCorrelation
		switch {
		case left == nil:
			return false
		case right == nil:
			return true
		case *left != *right:
			return *left > *right
		}
		return entries[i].Driver < entries[j].Driver
	})
	return entries
}

// fillAbsoluteCorrelations computes the absolute correlation from the primary
// one for entries where the engine did not report it separately.
func fillAbsoluteCorrelations(entries []models.SensitivityEntry) []models.SensitivityEntry {
	for i, entry := range entries {
		if entry.AbsoluteCorrelation == nil && entry.Correlation != nil {
			abs := math.Abs(*entry.Correlation)
			entries[i].AbsoluteCorrelation = &abs
		}
	}
	return entries
}

func floatOrNil(value gjson.Result) *float64 {
	if value.Type != gjson.Number {
		return nil
	}
	f := value.Float()
	return &f
}
