package repositories

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/getforesight/foresight-backend/models"
	"github.com/getforesight/foresight-backend/repositories/dbmodels"
)

// Accepted as terminal success in cache lookups. Rows written by older engine
// versions carry "completed" or "success" instead of "done".
var terminalSuccessStatuses = []string{"done", "completed", "success"}

func (repo *ForesightDbRepository) CreateSimulationResult(
	ctx context.Context,
	exec Executor,
	id string,
	input models.CreateSimulationResultInput,
) (models.SimulationResult, error) {
	if err := validateForesightDbExecutor(exec); err != nil {
		return models.SimulationResult{}, err
	}

	sql := NewQueryBuilder().
		Insert(dbmodels.TABLE_SIMULATION_RESULTS).
		Suffix("RETURNING *").
		Columns(
			"id",
			"org_id",
			"model_run_id",
			"num_simulations",
			"fingerprint",
			"status",
			"cpu_seconds_estimate",
		).
		Values(
			id,
			input.OrganizationId,
			input.ModelRunId,
			input.NumSimulations,
			input.Fingerprint,
			models.SimulationQueued.String(),
			input.CpuSecondsEstimate,
		)

	return SqlToModel(ctx, exec, sql, dbmodels.AdaptSimulationResult)
}

func (repo *ForesightDbRepository) GetSimulationResultById(
	ctx context.Context,
	exec Executor,
	id string,
) (models.SimulationResult, error) {
	if err := validateForesightDbExecutor(exec); err != nil {
		return models.SimulationResult{}, err
	}

	sql := NewQueryBuilder().
		Select(dbmodels.SelectSimulationResultColumn...).
		From(dbmodels.TABLE_SIMULATION_RESULTS).
		Where(squirrel.Eq{"id": id})

	return SqlToModel(ctx, exec, sql, dbmodels.AdaptSimulationResult)
}

// FindReusableSimulationResult returns the most recently finished result that
// can answer a request with the given fingerprint, or nil when the cache has
// nothing usable. A result is reusable when it terminated successfully, still
// has an artifact location, and finished at or after the freshness cutoff.
func (repo *ForesightDbRepository) FindReusableSimulationResult(
	ctx context.Context,
	exec Executor,
	organizationId string,
	fingerprint string,
	finishedAfter time.Time,
) (*models.SimulationResult, error) {
	if err := validateForesightDbExecutor(exec); err != nil {
		return nil, err
	}

	sql := NewQueryBuilder().
		Select(dbmodels.SelectSimulationResultColumn...).
		From(dbmodels.TABLE_SIMULATION_RESULTS).
		Where(squirrel.Eq{"org_id": organizationId}).
		Where(squirrel.Eq{"fingerprint": fingerprint}).
		Where(squirrel.Eq{"status": terminalSuccessStatuses}).
		Where("result_location IS NOT NULL").
		Where(squirrel.GtOrEq{"finished_at": finishedAfter}).
		OrderBy("finished_at DESC").
		Limit(1)

	return SqlToOptionalModel(ctx, exec, sql, dbmodels.AdaptSimulationResult)
}

func (repo *ForesightDbRepository) UpdateSimulationResult(
	ctx context.Context,
	exec Executor,
	input models.UpdateSimulationResultInput,
) (models.SimulationResult, error) {
	if err := validateForesightDbExecutor(exec); err != nil {
		return models.SimulationResult{}, err
	}

	countUpdate := 0

	sql := NewQueryBuilder().
		Update(dbmodels.TABLE_SIMULATION_RESULTS).
		Suffix("RETURNING *").
		Where(squirrel.Eq{"id": input.Id})

	if input.Status != nil {
		sql = sql.Set("status", input.Status.String())
		countUpdate++
	}
	if input.ResultLocation != nil {
		sql = sql.Set("result_location", *input.ResultLocation)
		countUpdate++
	}
	if input.Percentiles != nil {
		sql = sql.Set("percentiles", input.Percentiles)
		countUpdate++
	}
	if input.Sensitivity != nil {
		sql = sql.Set("sensitivity", input.Sensitivity)
		countUpdate++
	}
	if input.ConfidenceLevel != nil {
		sql = sql.Set("confidence_level", *input.ConfidenceLevel)
		countUpdate++
	}
	if input.CpuSecondsActual != nil {
		sql = sql.Set("cpu_seconds_actual", *input.CpuSecondsActual)
		countUpdate++
	}
	if input.FinishedAt != nil {
		sql = sql.Set("finished_at", *input.FinishedAt)
		countUpdate++
	}

	if countUpdate == 0 {
		return repo.GetSimulationResultById(ctx, exec, input.Id)
	}

	return SqlToModel(ctx, exec, sql, dbmodels.AdaptSimulationResult)
}

func (repo *ForesightDbRepository) ListSimulationResults(
	ctx context.Context,
	exec Executor,
	organizationId string,
	modelRunId string,
) ([]models.SimulationResult, error) {
	if err := validateForesightDbExecutor(exec); err != nil {
		return nil, err
	}

	sql := NewQueryBuilder().
		Select(dbmodels.SelectSimulationResultColumn...).
		From(dbmodels.TABLE_SIMULATION_RESULTS).
		Where(squirrel.Eq{"org_id": organizationId}).
		OrderBy("created_at DESC")

	if modelRunId != "" {
		sql = sql.Where(squirrel.Eq{"model_run_id": modelRunId})
	}

	return SqlToListOfModels(ctx, exec, sql, dbmodels.AdaptSimulationResult)
}
