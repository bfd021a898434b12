package result_parser

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/getforesight/foresight-backend/utils"
)

// NormalizeProgress coerces whatever the engine wrote in the progress column
// into a number clamped to [0, 100]. Engines have written plain numbers and
// numeric strings; anything unparseable counts as no progress.
func NormalizeProgress(ctx context.Context, raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}

	parsed := gjson.ParseBytes(raw)

	var progress float64
	switch parsed.Type {
	case gjson.Number:
		progress = parsed.Float()
	case gjson.String:
		value, err := strconv.ParseFloat(strings.TrimSpace(parsed.String()), 64)
		// ParseFloat accepts "NaN", which would poison the clamp below
		if err != nil || math.IsNaN(value) {
			utils.LoggerFromContext(ctx).WarnContext(ctx,
				"progress value is a non-numeric string, reporting 0",
				"progress", parsed.String())
			return 0
		}
		progress = value
	default:
		utils.LoggerFromContext(ctx).WarnContext(ctx,
			"progress value has an unexpected type, reporting 0",
			"progress", parsed.Raw)
		return 0
	}

	return min(max(progress, 0), 100)
}
