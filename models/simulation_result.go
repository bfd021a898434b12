package models

import (
	"encoding/json"
	"time"
)

type SimulationStatus int

const (
	SimulationQueued SimulationStatus = iota
	SimulationRunning
	SimulationDone
	SimulationFailed
	SimulationUnknownStatus
)

func (s SimulationStatus) String() string {
	switch s {
	case SimulationQueued:
		return "queued"
	case SimulationRunning:
		return "running"
	case SimulationDone:
		return "done"
	case SimulationFailed:
		return "failed"
	}
	return "unknown"
}

// SimulationStatusFrom also accepts the legacy terminal-success spellings
// "completed" and "success" still present in rows written by older engine
// versions.
func SimulationStatusFrom(s string) SimulationStatus {
	switch s {
	case "queued", "pending":
		return SimulationQueued
	case "running", "processing":
		return SimulationRunning
	case "done", "completed", "success":
		return SimulationDone
	case "failed", "error":
		return SimulationFailed
	}
	return SimulationUnknownStatus
}

func (s SimulationStatus) IsTerminal() bool {
	return s == SimulationDone || s == SimulationFailed
}

// SimulationResult is the persistent record of one Monte Carlo run: the
// request fingerprint it answers for, where the engine wrote the artifact,
// and the payloads the engine reported back.
type SimulationResult struct {
	Id                 string
	OrganizationId     string
	ModelRunId         string
	NumSimulations     int
	Fingerprint        string
	Status             SimulationStatus
	ResultLocation     *string
	Percentiles        json.RawMessage
	Sensitivity        json.RawMessage
	ConfidenceLevel    *float64
	CpuSecondsEstimate *float64
	CpuSecondsActual   *float64
	CreatedAt          time.Time
	FinishedAt         *time.Time
}

// SimulationCreation is the identifier pair handed back when a simulation is
// requested: a fresh queue entry + result pair on a cache miss, or the cached
// result (no queue entry id) on a hit.
type SimulationCreation struct {
	QueueEntryId       string
	SimulationResultId string
	CacheHit           bool
}

type CreateSimulationResultInput struct {
	OrganizationId     string
	ModelRunId         string
	NumSimulations     int
	Fingerprint        string
	CpuSecondsEstimate *float64
}

// UpdateSimulationResultInput carries the fields the engine reports while a
// run progresses and when it terminates. Nil fields are left untouched.
type UpdateSimulationResultInput struct {
	Id                 string
	Status             *SimulationStatus
	ResultLocation     *string
	Percentiles        json.RawMessage
	Sensitivity        json.RawMessage
	ConfidenceLevel    *float64
	CpuSecondsActual   *float64
	FinishedAt         *time.Time
}
