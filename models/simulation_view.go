package models

import (
	"encoding/json"
	"time"
)

// PercentileTable is the parsed percentile payload of a finished run. Series
// indexes the numeric trajectories by percentile label ("p5", "p50", ...);
// Raw keeps the full decoded object so sections that are not plain series
// (tornado block, survival block) survive round trips to API callers.
type PercentileTable struct {
	Series map[string][]float64
	Raw    json.RawMessage
}

func (t PercentileTable) MarshalJSON() ([]byte, error) {
	if len(t.Raw) == 0 {
		return []byte("null"), nil
	}
	return t.Raw, nil
}

// SensitivityEntry is one row of the driver sensitivity ranking. Correlation
// fields are pointers because engine versions differ in what they report.
type SensitivityEntry struct {
	Driver               string   `json:"driver"`
	Correlation          *float64 `json:"correlation"`
	SecondaryCorrelation *float64 `json:"secondary_correlation"`
	AbsoluteCorrelation  *float64 `json:"absolute_correlation"`
	Significance         *float64 `json:"significance"`
}

// SimulationView merges a simulation result with its queue entry (real or
// synthesized) into the single shape the API serves, regardless of which of
// the two ids the caller held.
type SimulationView struct {
	QueueId             string
	ResultId            string
	OrganizationId      string
	Status              SimulationStatus
	Progress            float64
	NumSimulations      int
	ResultLocation      *string
	ResultUrl           *string
	Percentiles         *PercentileTable
	Sensitivity         []SensitivityEntry
	SurvivalProbability json.RawMessage
	ConfidenceLevel     *float64
	CpuSecondsEstimate  *float64
	CpuSecondsActual    *float64
	CreatedAt           time.Time
	FinishedAt          *time.Time
}
