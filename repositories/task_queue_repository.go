package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"

	"github.com/getforesight/foresight-backend/models"
	"github.com/getforesight/foresight-backend/utils"
)

const (
	nbRetriesSimulationDispatch = 5 // at 1sec*attempt^4, that's ~40min for the 5th attempt
	prioritySimulationDispatch  = 2 // nb: higher number is lower priority (between 1 and 4)
)

type TaskQueueRepository interface {
	EnqueueSimulationDispatchTask(
		ctx context.Context,
		tx Transaction,
		organizationId string,
		entry models.QueueEntry,
	) error
}

type riverRepository struct {
	client *river.Client[pgx.Tx]
}

func NewTaskQueueRepository(client *river.Client[pgx.Tx]) TaskQueueRepository {
	return riverRepository{client: client}
}

// EnqueueSimulationDispatchTask inserts the dispatch job in the same
// transaction that creates the queue entry, so the engine can never observe
// one without the other.
func (r riverRepository) EnqueueSimulationDispatchTask(
	ctx context.Context,
	tx Transaction,
	organizationId string,
	entry models.QueueEntry,
) error {
	res, err := r.client.InsertTx(ctx, tx.RawTx(), models.SimulationDispatchArgs{
		QueueEntryId:       entry.Id,
		SimulationResultId: entry.Params.SimulationResultId,
		OrganizationId:     organizationId,
	}, &river.InsertOpts{
		MaxAttempts: nbRetriesSimulationDispatch,
		Priority:    prioritySimulationDispatch,
		Queue:       organizationId,
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
			// only dedupe against jobs still in flight: a forced re-run of the
			// same simulation must be insertable once the previous dispatch is
			// settled
			ByState: []rivertype.JobState{
				rivertype.JobStateAvailable, rivertype.JobStatePending,
				rivertype.JobStateScheduled, rivertype.JobStateRunning,
				rivertype.JobStateRetryable,
			},
		},
	})
	if err != nil {
		return err
	}
	logger := utils.LoggerFromContext(ctx)
	logger.DebugContext(ctx, "Enqueued simulation dispatch task",
		"queue_entry_id", entry.Id, "job_id", res.Job.ID)
	return nil
}
