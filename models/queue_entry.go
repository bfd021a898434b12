package models

import (
	"encoding/json"
	"time"
)

const QueueEntryKindSimulation = "simulation"

// QueueEntryParams is the opaque parameter bag handed to the simulation
// engine: everything a worker needs to run the job without a second lookup.
type QueueEntryParams struct {
	SimulationResultId string            `json:"simulation_result_id"`
	ModelRunId         string            `json:"model_run_id"`
	Fingerprint        string            `json:"fingerprint"`
	Request            SimulationRequest `json:"request"`
}

// QueueEntry tracks the lifecycle of one queued simulation. The engine owns
// status and progress once the entry is dispatched; this service only ever
// creates entries and reads them back.
type QueueEntry struct {
	Id             string
	OrganizationId string
	Kind           string
	ResourceId     *string
	Params         QueueEntryParams
	Status         SimulationStatus
	Progress       json.RawMessage
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}

type CreateQueueEntryInput struct {
	OrganizationId string
	ResourceId     string
	Params         QueueEntryParams
}

// UpdateQueueEntryInput mirrors what the engine writes as a run advances.
// Used by the seed command and tests to stand in for a real engine.
type UpdateQueueEntryInput struct {
	Id       string
	Status   *SimulationStatus
	Progress json.RawMessage
}

// NewVirtualQueueEntry synthesizes the queue-side view of a simulation whose
// queue entry has been pruned. Terminal-success runs report full progress,
// anything else reports none, and the identifier the caller asked with is
// reused so the response still carries a queue id.
func NewVirtualQueueEntry(requestedId string, result SimulationResult) QueueEntry {
	progress := json.RawMessage("0")
	if result.Status == SimulationDone {
		progress = json.RawMessage("100")
	}
	return QueueEntry{
		Id:             requestedId,
		OrganizationId: result.OrganizationId,
		Kind:           QueueEntryKindSimulation,
		ResourceId:     &result.Id,
		Params: QueueEntryParams{
			SimulationResultId: result.Id,
			ModelRunId:         result.ModelRunId,
			Fingerprint:        result.Fingerprint,
		},
		Status:    result.Status,
		Progress:  progress,
		CreatedAt: result.CreatedAt,
		UpdatedAt: result.FinishedAt,
	}
}
