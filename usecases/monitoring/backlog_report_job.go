package monitoring

import (
	"context"
	"time"

	"github.com/riverqueue/river"
	"golang.org/x/sync/errgroup"

	"github.com/getforesight/foresight-backend/models"
	"github.com/getforesight/foresight-backend/repositories"
	"github.com/getforesight/foresight-backend/repositories/clock"
	"github.com/getforesight/foresight-backend/usecases/executor_factory"
	"github.com/getforesight/foresight-backend/utils"
)

const (
	backlogReportInterval = 1 * time.Minute
	backlogReportTimeout  = 30 * time.Second

	// BacklogReportQueue is the dedicated river queue the worker binary
	// listens on for monitoring jobs, separate from the per-org queues.
	BacklogReportQueue = "backlog_report"
)

func NewBacklogReportPeriodicJob() *river.PeriodicJob {
	return river.NewPeriodicJob(
		river.PeriodicInterval(backlogReportInterval),
		func() (river.JobArgs, *river.InsertOpts) {
			return models.BacklogReportArgs{},
				&river.InsertOpts{
					Queue:    BacklogReportQueue,
					Priority: 4,
					UniqueOpts: river.UniqueOpts{
						ByQueue:  true,
						ByPeriod: backlogReportInterval,
					},
				}
		},
		&river.PeriodicJobOpts{RunOnStart: true},
	)
}

type backlogRepository interface {
	CountQueueEntriesByStatus(ctx context.Context, exec repositories.Executor,
		organizationIds []string, status models.SimulationStatus) (map[string]int, error)
	OldestQueuedEntryCreatedAt(ctx context.Context, exec repositories.Executor,
		organizationIds []string) (map[string]time.Time, error)
}

// BacklogReportWorker periodically exports per-organization queue depth
// gauges so operators can see tenants whose simulations are piling up.
type BacklogReportWorker struct {
	river.WorkerDefaults[models.BacklogReportArgs]

	executorFactory executor_factory.ExecutorFactory
	orgRepository   repositories.OrganizationRepository
	repository      backlogRepository
	clock           clock.Clock
}

func NewBacklogReportWorker(
	executorFactory executor_factory.ExecutorFactory,
	orgRepository repositories.OrganizationRepository,
	repository backlogRepository,
	clock clock.Clock,
) *BacklogReportWorker {
	return &BacklogReportWorker{
		executorFactory: executorFactory,
		orgRepository:   orgRepository,
		repository:      repository,
		clock:           clock,
	}
}

func (w *BacklogReportWorker) Timeout(job *river.Job[models.BacklogReportArgs]) time.Duration {
	return backlogReportTimeout
}

func (w *BacklogReportWorker) Work(ctx context.Context, job *river.Job[models.BacklogReportArgs]) error {
	logger := utils.LoggerFromContext(ctx)
	exec := w.executorFactory.NewExecutor()

	orgs, err := w.orgRepository.AllOrganizations(ctx, exec)
	if err != nil {
		return err
	}
	orgIds := make([]string, 0, len(orgs))
	for _, org := range orgs {
		orgIds = append(orgIds, org.Id)
	}

	var queued, running map[string]int
	var oldestQueued map[string]time.Time

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		queued, err = w.repository.CountQueueEntriesByStatus(groupCtx, exec, orgIds, models.SimulationQueued)
		return err
	})
	group.Go(func() error {
		var err error
		running, err = w.repository.CountQueueEntriesByStatus(groupCtx, exec, orgIds, models.SimulationRunning)
		return err
	})
	group.Go(func() error {
		var err error
		oldestQueued, err = w.repository.OldestQueuedEntryCreatedAt(groupCtx, exec, orgIds)
		return err
	})
	if err := group.Wait(); err != nil {
		return err
	}

	now := w.clock.Now()
	for _, orgId := range orgIds {
		utils.MetricSimulationBacklog.
			WithLabelValues(orgId, models.SimulationQueued.String()).
			Set(float64(queued[orgId]))
		utils.MetricSimulationBacklog.
			WithLabelValues(orgId, models.SimulationRunning.String()).
			Set(float64(running[orgId]))

		age := 0.0
		if createdAt, ok := oldestQueued[orgId]; ok {
			age = now.Sub(createdAt).Seconds()
		}
		utils.MetricOldestQueuedSimulationAge.WithLabelValues(orgId).Set(age)

		if queued[orgId] > 0 || running[orgId] > 0 {
			logger.InfoContext(ctx, "simulation backlog",
				"org_id", orgId,
				"queued", queued[orgId],
				"running", running[orgId],
				"oldest_queued_age_seconds", age)
		}
	}

	return nil
}
