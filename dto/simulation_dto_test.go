package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/getforesight/foresight-backend/models"
)

func TestAdaptSimulationViewDto(t *testing.T) {
	location := "gs://foresight-results/org/run.json"
	url := "https://signed.example.com/run.json"
	now := time.Now()

	view := models.SimulationView{
		QueueId:        "queue-id",
		ResultId:       "result-id",
		OrganizationId: "org-id",
		Status:         models.SimulationDone,
		Progress:       100,
		NumSimulations: 10000,
		ResultLocation: &location,
		ResultUrl:      &url,
		CreatedAt:      now,
		FinishedAt:     &now,
	}

	api := AdaptSimulationViewDto(view)

	assert.Equal(t, "queue-id", api.QueueId)
	assert.Equal(t, "result-id", api.ResultId)
	assert.Equal(t, "org-id", api.OrganizationId)
	assert.Equal(t, "done", api.Status)
	assert.Equal(t, location, api.ResultLocation.String)
	assert.Equal(t, url, api.ResultUrl.String)

	serialized, err := json.Marshal(api)
	assert.NoError(t, err)
	for _, key := range []string{
		"queue_id", "result_id", "org_id", "status", "progress",
		"num_simulations", "result_location", "result_url",
		"confidence_level", "created_at", "finished_at",
	} {
		assert.Contains(t, string(serialized), `"`+key+`"`)
	}
}

func TestAdaptSimulationViewDto_pendingRun(t *testing.T) {
	api := AdaptSimulationViewDto(models.SimulationView{
		QueueId:        "queue-id",
		ResultId:       "result-id",
		OrganizationId: "org-id",
		Status:         models.SimulationQueued,
		Progress:       12.5,
	})

	assert.False(t, api.ResultLocation.Valid)
	assert.False(t, api.ResultUrl.Valid)
	assert.False(t, api.FinishedAt.Valid)
	assert.Equal(t, 12.5, api.Progress)
}
