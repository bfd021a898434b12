package usecases

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/getforesight/foresight-backend/models"
	"github.com/getforesight/foresight-backend/pure_utils"
	"github.com/getforesight/foresight-backend/repositories"
	"github.com/getforesight/foresight-backend/usecases/analytics"
	"github.com/getforesight/foresight-backend/usecases/executor_factory"
)

type modelRunRepository interface {
	CreateModelRun(ctx context.Context, exec repositories.Executor, id string,
		input models.CreateModelRunInput) (models.ModelRun, error)
	GetModelRunById(ctx context.Context, exec repositories.Executor, id string) (models.ModelRun, error)
	ListModelRuns(ctx context.Context, exec repositories.Executor,
		organizationId string) ([]models.ModelRun, error)
}

type ModelRunUsecase struct {
	executorFactory    executor_factory.ExecutorFactory
	transactionFactory executor_factory.TransactionFactory
	repository         modelRunRepository
}

func (uc ModelRunUsecase) CreateModelRun(
	ctx context.Context,
	input models.CreateModelRunInput,
) (models.ModelRun, error) {
	modelRun, err := executor_factory.TransactionReturnValue(ctx, uc.transactionFactory,
		func(tx repositories.Transaction) (models.ModelRun, error) {
			return uc.repository.CreateModelRun(ctx, tx,
				pure_utils.NewPrimaryKey(input.OrganizationId), input)
		})
	if err != nil {
		return models.ModelRun{}, err
	}

	analytics.TrackEvent(ctx, models.AnalyticsModelRunCreated, input.OrganizationId,
		map[string]any{"model_id": input.ModelId})
	return modelRun, nil
}

func (uc ModelRunUsecase) GetModelRun(
	ctx context.Context,
	organizationId string,
	modelRunId string,
) (models.ModelRun, error) {
	modelRun, err := uc.repository.GetModelRunById(ctx, uc.executorFactory.NewExecutor(), modelRunId)
	if err != nil {
		return models.ModelRun{}, err
	}
	if modelRun.OrganizationId != organizationId {
		return models.ModelRun{}, errors.Wrap(models.NotFoundError,
			"model run does not belong to the caller's organization")
	}
	return modelRun, nil
}

func (uc ModelRunUsecase) ListModelRuns(
	ctx context.Context,
	organizationId string,
) ([]models.ModelRun, error) {
	return uc.repository.ListModelRuns(ctx, uc.executorFactory.NewExecutor(), organizationId)
}
