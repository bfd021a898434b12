package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewVirtualQueueEntry(t *testing.T) {
	now := time.Now()
	location := "gs://foresight-results/am/abc"
	result := SimulationResult{
		Id:             "result-id",
		OrganizationId: "org-id",
		ModelRunId:     "run-id",
		Fingerprint:    "feed",
		Status:         SimulationDone,
		ResultLocation: &location,
		CreatedAt:      now.Add(-time.Hour),
		FinishedAt:     &now,
	}

	t.Run("terminal success reports full progress", func(t *testing.T) {
		entry := NewVirtualQueueEntry("result-id", result)
		assert.Equal(t, "result-id", entry.Id)
		assert.Equal(t, "org-id", entry.OrganizationId)
		assert.Equal(t, QueueEntryKindSimulation, entry.Kind)
		assert.Equal(t, SimulationDone, entry.Status)
		assert.Equal(t, "100", string(entry.Progress))
		if assert.NotNil(t, entry.ResourceId) {
			assert.Equal(t, "result-id", *entry.ResourceId)
		}
		assert.Equal(t, "run-id", entry.Params.ModelRunId)
	})

	t.Run("non terminal run reports no progress", func(t *testing.T) {
		running := result
		running.Status = SimulationRunning
		running.FinishedAt = nil

		entry := NewVirtualQueueEntry("result-id", running)
		assert.Equal(t, SimulationRunning, entry.Status)
		assert.Equal(t, "0", string(entry.Progress))
		assert.Nil(t, entry.UpdatedAt)
	})
}
