package usecases

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/getforesight/foresight-backend/models"
	"github.com/getforesight/foresight-backend/pure_utils"
	"github.com/getforesight/foresight-backend/repositories"
	"github.com/getforesight/foresight-backend/repositories/clock"
	"github.com/getforesight/foresight-backend/usecases/analytics"
	"github.com/getforesight/foresight-backend/usecases/executor_factory"
	"github.com/getforesight/foresight-backend/utils"
)

const (
	// DefaultCacheTtlDays is how far back a finished simulation still answers
	// for a new request with the same fingerprint.
	DefaultCacheTtlDays = 30

	// crude per-simulation cost model used to pre-fill the CPU estimate the
	// engine refines once the run starts
	cpuSecondsPerSimulation = 0.002
)

type SimulationRepository interface {
	CreateSimulationResult(ctx context.Context, exec repositories.Executor, id string,
		input models.CreateSimulationResultInput) (models.SimulationResult, error)
	GetSimulationResultById(ctx context.Context, exec repositories.Executor, id string) (models.SimulationResult, error)
	FindReusableSimulationResult(ctx context.Context, exec repositories.Executor,
		organizationId, fingerprint string, finishedAfter time.Time) (*models.SimulationResult, error)
	UpdateSimulationResult(ctx context.Context, exec repositories.Executor,
		input models.UpdateSimulationResultInput) (models.SimulationResult, error)
	ListSimulationResults(ctx context.Context, exec repositories.Executor,
		organizationId, modelRunId string) ([]models.SimulationResult, error)
	CreateQueueEntry(ctx context.Context, exec repositories.Executor, id string,
		input models.CreateQueueEntryInput) (models.QueueEntry, error)
	GetQueueEntryById(ctx context.Context, exec repositories.Executor, id string) (models.QueueEntry, error)
	GetQueueEntryByResourceId(ctx context.Context, exec repositories.Executor,
		resourceId string) (*models.QueueEntry, error)
	UpdateQueueEntry(ctx context.Context, exec repositories.Executor,
		input models.UpdateQueueEntryInput) (models.QueueEntry, error)
}

type modelRunGetter interface {
	GetModelRunById(ctx context.Context, exec repositories.Executor, id string) (models.ModelRun, error)
}

type CreateSimulationInput struct {
	OrganizationId string
	ModelRunId     string
	Request        models.SimulationRequest
	CacheTtlDays   *int
	Force          bool
}

// SimulationUsecase is the front door for new simulation requests: it turns a
// request into a fingerprint, reuses a warm cached result when one exists and
// otherwise creates the queue entry + result pair in a single transaction,
// dispatch task included.
type SimulationUsecase struct {
	executorFactory     executor_factory.ExecutorFactory
	transactionFactory  executor_factory.TransactionFactory
	repository          SimulationRepository
	modelRunRepository  modelRunGetter
	taskQueueRepository repositories.TaskQueueRepository
	clock               clock.Clock
	defaultCacheTtlDays int
}

// RequestSimulation resolves a simulation request to either a cached result
// or a freshly queued job. The returned identifier pair feeds the view
// usecase, which is the only thing callers ever see.
func (uc SimulationUsecase) RequestSimulation(
	ctx context.Context,
	input CreateSimulationInput,
) (models.SimulationCreation, error) {
	exec := uc.executorFactory.NewExecutor()
	logger := utils.LoggerFromContext(ctx)

	modelRun, err := uc.modelRunRepository.GetModelRunById(ctx, exec, input.ModelRunId)
	if err != nil {
		return models.SimulationCreation{}, err
	}
	if modelRun.OrganizationId != input.OrganizationId {
		return models.SimulationCreation{}, errors.Wrap(models.NotFoundError,
			"model run does not belong to the caller's organization")
	}

	// The fingerprint is computed on the semantic request: the model identity
	// comes from the run, not from whatever the caller typed.
	request := input.Request
	request.ModelId = modelRun.ModelId
	if request.ModelVersion == nil {
		request.ModelVersion = pure_utils.Ptr(modelRun.ModelVersion)
	}
	fingerprint, err := request.Fingerprint()
	if err != nil {
		return models.SimulationCreation{}, err
	}

	if !input.Force {
		cached, err := uc.findReusableResult(ctx, exec, input.OrganizationId, fingerprint,
			pure_utils.PtrValueOrDefault(input.CacheTtlDays, uc.defaultCacheTtlDays))
		if err != nil {
			return models.SimulationCreation{}, err
		}
		if cached != nil {
			logger.InfoContext(ctx, "simulation request answered from cache",
				"fingerprint", fingerprint,
				"simulation_result_id", cached.Id)
			utils.MetricSimulationCreatedCount.
				WithLabelValues(input.OrganizationId, "true").Inc()
			analytics.TrackEvent(ctx, models.AnalyticsSimulationCacheHit, input.OrganizationId,
				map[string]any{"fingerprint": fingerprint})
			return models.SimulationCreation{
				SimulationResultId: cached.Id,
				CacheHit:           true,
			}, nil
		}
	}

	resultId := pure_utils.NewPrimaryKey(input.OrganizationId)
	entryId := pure_utils.NewPrimaryKey(input.OrganizationId)
	creation, err := executor_factory.TransactionReturnValue(ctx, uc.transactionFactory,
		func(tx repositories.Transaction) (models.SimulationCreation, error) {
			result, err := uc.repository.CreateSimulationResult(ctx, tx, resultId,
				models.CreateSimulationResultInput{
					OrganizationId: input.OrganizationId,
					ModelRunId:     modelRun.Id,
					NumSimulations: request.NumSimulations,
					Fingerprint:    fingerprint,
					CpuSecondsEstimate: pure_utils.Ptr(
						cpuSecondsPerSimulation * float64(request.NumSimulations)),
				})
			if err != nil {
				return models.SimulationCreation{}, err
			}

			entry, err := uc.repository.CreateQueueEntry(ctx, tx, entryId,
				models.CreateQueueEntryInput{
					OrganizationId: input.OrganizationId,
					ResourceId:     result.Id,
					Params: models.QueueEntryParams{
						SimulationResultId: result.Id,
						ModelRunId:         modelRun.Id,
						Fingerprint:        fingerprint,
						Request:            request,
					},
				})
			if err != nil {
				return models.SimulationCreation{}, err
			}

			if err := uc.taskQueueRepository.EnqueueSimulationDispatchTask(
				ctx, tx, input.OrganizationId, entry); err != nil {
				return models.SimulationCreation{}, err
			}

			return models.SimulationCreation{
				QueueEntryId:       entry.Id,
				SimulationResultId: result.Id,
			}, nil
		})
	if err != nil {
		return models.SimulationCreation{}, err
	}

	logger.InfoContext(ctx, "simulation queued",
		"queue_entry_id", creation.QueueEntryId,
		"simulation_result_id", creation.SimulationResultId,
		"fingerprint", fingerprint)
	utils.MetricSimulationCreatedCount.
		WithLabelValues(input.OrganizationId, "false").Inc()
	analytics.TrackEvent(ctx, models.AnalyticsSimulationCreated, input.OrganizationId,
		map[string]any{
			"fingerprint":     fingerprint,
			"num_simulations": request.NumSimulations,
		})
	return creation, nil
}

// findReusableResult applies the cache policy: same org, same fingerprint,
// terminal success with an artifact, finished within the freshness window
// (cutoff inclusive).
func (uc SimulationUsecase) findReusableResult(
	ctx context.Context,
	exec repositories.Executor,
	organizationId, fingerprint string,
	ttlDays int,
) (*models.SimulationResult, error) {
	start := uc.clock.Now()
	cutoff := start.AddDate(0, 0, -ttlDays)

	cached, err := uc.repository.FindReusableSimulationResult(ctx, exec,
		organizationId, fingerprint, cutoff)
	utils.MetricCacheLookupDuration.WithLabelValues(organizationId).
		Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, errors.Wrap(err, "error looking up reusable simulation results")
	}
	return cached, nil
}
