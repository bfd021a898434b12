package dto

import (
	"encoding/json"
	"time"

	"github.com/guregu/null/v5"

	"github.com/getforesight/foresight-backend/models"
)

type SimulationRequestBody struct {
	ModelVersion   *int           `json:"model_version" binding:"omitempty,min=1"`
	Drivers        map[string]any `json:"drivers"`
	Overrides      map[string]any `json:"overrides"`
	NumSimulations int            `json:"num_simulations" binding:"required,min=1"`
	RandomSeed     *int64         `json:"random_seed"`
	Mode           string         `json:"mode" binding:"omitempty,oneof=full quick"`
}

type CreateSimulationBody struct {
	ModelRunId   string                `json:"model_run_id" binding:"required,uuid"`
	Request      SimulationRequestBody `json:"request" binding:"required"`
	CacheTtlDays *int                  `json:"cache_ttl_days" binding:"omitempty,min=1"`
	Force        bool                  `json:"force"`
}

// AdaptSimulationRequest builds the domain request. The model identity is left
// empty on purpose, the usecase fills it in from the model run.
func AdaptSimulationRequest(body SimulationRequestBody) models.SimulationRequest {
	return models.SimulationRequest{
		ModelVersion:   body.ModelVersion,
		Drivers:        body.Drivers,
		Overrides:      body.Overrides,
		NumSimulations: body.NumSimulations,
		RandomSeed:     body.RandomSeed,
		Mode:           body.Mode,
	}
}

type APISimulation struct {
	QueueId             string                    `json:"queue_id"`
	ResultId            string                    `json:"result_id"`
	OrganizationId      string                    `json:"org_id"`
	Status              string                    `json:"status"`
	Progress            float64                   `json:"progress"`
	NumSimulations      int                       `json:"num_simulations"`
	ResultLocation      null.String               `json:"result_location"`
	ResultUrl           null.String               `json:"result_url"`
	Percentiles         *models.PercentileTable   `json:"percentiles,omitempty"`
	Sensitivity         []models.SensitivityEntry `json:"sensitivity,omitempty"`
	SurvivalProbability json.RawMessage           `json:"survival_probability,omitempty"`
	ConfidenceLevel     null.Float                `json:"confidence_level"`
	CpuSecondsEstimate  null.Float                `json:"cpu_seconds_estimate"`
	CpuSecondsActual    null.Float                `json:"cpu_seconds_actual"`
	CreatedAt           time.Time                 `json:"created_at"`
	FinishedAt          null.Time                 `json:"finished_at"`
}

func AdaptSimulationViewDto(view models.SimulationView) APISimulation {
	return APISimulation{
		QueueId:             view.QueueId,
		ResultId:            view.ResultId,
		OrganizationId:      view.OrganizationId,
		Status:              view.Status.String(),
		Progress:            view.Progress,
		NumSimulations:      view.NumSimulations,
		ResultLocation:      null.StringFromPtr(view.ResultLocation),
		ResultUrl:           null.StringFromPtr(view.ResultUrl),
		Percentiles:         view.Percentiles,
		Sensitivity:         view.Sensitivity,
		SurvivalProbability: view.SurvivalProbability,
		ConfidenceLevel:     null.FloatFromPtr(view.ConfidenceLevel),
		CpuSecondsEstimate:  null.FloatFromPtr(view.CpuSecondsEstimate),
		CpuSecondsActual:    null.FloatFromPtr(view.CpuSecondsActual),
		CreatedAt:           view.CreatedAt,
		FinishedAt:          null.TimeFromPtr(view.FinishedAt),
	}
}
