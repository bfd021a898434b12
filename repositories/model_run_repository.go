package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/getforesight/foresight-backend/models"
	"github.com/getforesight/foresight-backend/repositories/dbmodels"
)

func (repo *ForesightDbRepository) CreateModelRun(
	ctx context.Context,
	exec Executor,
	id string,
	input models.CreateModelRunInput,
) (models.ModelRun, error) {
	if err := validateForesightDbExecutor(exec); err != nil {
		return models.ModelRun{}, err
	}

	sql := NewQueryBuilder().
		Insert(dbmodels.TABLE_MODEL_RUNS).
		Suffix("RETURNING *").
		Columns(
			"id",
			"org_id",
			"model_id",
			"model_version",
			"name",
		).
		Values(
			id,
			input.OrganizationId,
			input.ModelId,
			input.ModelVersion,
			input.Name,
		)

	return SqlToModel(ctx, exec, sql, dbmodels.AdaptModelRun)
}

func (repo *ForesightDbRepository) GetModelRunById(
	ctx context.Context,
	exec Executor,
	id string,
) (models.ModelRun, error) {
	if err := validateForesightDbExecutor(exec); err != nil {
		return models.ModelRun{}, err
	}

	sql := NewQueryBuilder().
		Select(dbmodels.SelectModelRunColumn...).
		From(dbmodels.TABLE_MODEL_RUNS).
		Where(squirrel.Eq{"id": id})

	return SqlToModel(ctx, exec, sql, dbmodels.AdaptModelRun)
}

func (repo *ForesightDbRepository) ListModelRuns(
	ctx context.Context,
	exec Executor,
	organizationId string,
) ([]models.ModelRun, error) {
	if err := validateForesightDbExecutor(exec); err != nil {
		return nil, err
	}

	sql := NewQueryBuilder().
		Select(dbmodels.SelectModelRunColumn...).
		From(dbmodels.TABLE_MODEL_RUNS).
		Where(squirrel.Eq{"org_id": organizationId}).
		OrderBy("created_at DESC")

	return SqlToListOfModels(ctx, exec, sql, dbmodels.AdaptModelRun)
}
