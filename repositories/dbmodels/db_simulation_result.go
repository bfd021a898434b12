package dbmodels

import (
	"encoding/json"
	"time"

	"github.com/getforesight/foresight-backend/models"
	"github.com/getforesight/foresight-backend/utils"
)

const TABLE_SIMULATION_RESULTS = "simulation_results"

var SelectSimulationResultColumn = utils.ColumnList[DBSimulationResult]()

type DBSimulationResult struct {
	Id                 string          `db:"id"`
	OrgId              string          `db:"org_id"`
	ModelRunId         string          `db:"model_run_id"`
	NumSimulations     int             `db:"num_simulations"`
	Fingerprint        string          `db:"fingerprint"`
	Status             string          `db:"status"`
	ResultLocation     *string         `db:"result_location"`
	Percentiles        json.RawMessage `db:"percentiles"`
	Sensitivity        json.RawMessage `db:"sensitivity"`
	ConfidenceLevel    *float64        `db:"confidence_level"`
	CpuSecondsEstimate *float64        `db:"cpu_seconds_estimate"`
	CpuSecondsActual   *float64        `db:"cpu_seconds_actual"`
	CreatedAt          time.Time       `db:"created_at"`
	FinishedAt         *time.Time      `db:"finished_at"`
}

func AdaptSimulationResult(db DBSimulationResult) (models.SimulationResult, error) {
	return models.SimulationResult{
		Id:                 db.Id,
		OrganizationId:     db.OrgId,
		ModelRunId:         db.ModelRunId,
		NumSimulations:     db.NumSimulations,
		Fingerprint:        db.Fingerprint,
		Status:             models.SimulationStatusFrom(db.Status),
		ResultLocation:     db.ResultLocation,
		Percentiles:        db.Percentiles,
		Sensitivity:        db.Sensitivity,
		ConfidenceLevel:    db.ConfidenceLevel,
		CpuSecondsEstimate: db.CpuSecondsEstimate,
		CpuSecondsActual:   db.CpuSecondsActual,
		CreatedAt:          db.CreatedAt,
		FinishedAt:         db.FinishedAt,
	}, nil
}
