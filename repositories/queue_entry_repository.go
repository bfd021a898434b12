package repositories

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"

	"github.com/getforesight/foresight-backend/models"
	"github.com/getforesight/foresight-backend/repositories/dbmodels"
)

func (repo *ForesightDbRepository) CreateQueueEntry(
	ctx context.Context,
	exec Executor,
	id string,
	input models.CreateQueueEntryInput,
) (models.QueueEntry, error) {
	if err := validateForesightDbExecutor(exec); err != nil {
		return models.QueueEntry{}, err
	}

	params, err := json.Marshal(input.Params)
	if err != nil {
		return models.QueueEntry{}, errors.Wrap(err, "could not marshal queue entry params")
	}

	sql := NewQueryBuilder().
		Insert(dbmodels.TABLE_QUEUE_ENTRIES).
		Suffix("RETURNING *").
		Columns(
			"id",
			"org_id",
			"kind",
			"resource_id",
			"params",
			"status",
			"progress",
		).
		Values(
			id,
			input.OrganizationId,
			models.QueueEntryKindSimulation,
			input.ResourceId,
			params,
			models.SimulationQueued.String(),
			json.RawMessage("0"),
		)

	return SqlToModel(ctx, exec, sql, dbmodels.AdaptQueueEntry)
}

func (repo *ForesightDbRepository) GetQueueEntryById(
	ctx context.Context,
	exec Executor,
	id string,
) (models.QueueEntry, error) {
	if err := validateForesightDbExecutor(exec); err != nil {
		return models.QueueEntry{}, err
	}

	sql := NewQueryBuilder().
		Select(dbmodels.SelectQueueEntryColumn...).
		From(dbmodels.TABLE_QUEUE_ENTRIES).
		Where(squirrel.Eq{"id": id})

	return SqlToModel(ctx, exec, sql, dbmodels.AdaptQueueEntry)
}

// GetQueueEntryByResourceId returns the queue entry tracking the given
// simulation result, or nil when it has been pruned. Should several entries
// exist for one result, the most recent one is the engine's view.
func (repo *ForesightDbRepository) GetQueueEntryByResourceId(
	ctx context.Context,
	exec Executor,
	resourceId string,
) (*models.QueueEntry, error) {
	if err := validateForesightDbExecutor(exec); err != nil {
		return nil, err
	}

	sql := NewQueryBuilder().
		Select(dbmodels.SelectQueueEntryColumn...).
		From(dbmodels.TABLE_QUEUE_ENTRIES).
		Where(squirrel.Eq{"resource_id": resourceId}).
		OrderBy("created_at DESC").
		Limit(1)

	return SqlToOptionalModel(ctx, exec, sql, dbmodels.AdaptQueueEntry)
}

func (repo *ForesightDbRepository) UpdateQueueEntry(
	ctx context.Context,
	exec Executor,
	input models.UpdateQueueEntryInput,
) (models.QueueEntry, error) {
	if err := validateForesightDbExecutor(exec); err != nil {
		return models.QueueEntry{}, err
	}

	countUpdate := 0

	sql := NewQueryBuilder().
		Update(dbmodels.TABLE_QUEUE_ENTRIES).
		Suffix("RETURNING *").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": input.Id})

	if input.Status != nil {
		sql = sql.Set("status", input.Status.String())
		countUpdate++
	}
	if input.Progress != nil {
		sql = sql.Set("progress", input.Progress)
		countUpdate++
	}

	if countUpdate == 0 {
		return repo.GetQueueEntryById(ctx, exec, input.Id)
	}

	return SqlToModel(ctx, exec, sql, dbmodels.AdaptQueueEntry)
}

// CountQueueEntriesByStatus feeds the backlog gauges: per organization, how
// many simulation entries currently sit in the given status.
func (repo *ForesightDbRepository) CountQueueEntriesByStatus(
	ctx context.Context,
	exec Executor,
	organizationIds []string,
	status models.SimulationStatus,
) (map[string]int, error) {
	if err := validateForesightDbExecutor(exec); err != nil {
		return nil, err
	}

	query := NewQueryBuilder().
		Select("org_id", "count(*) as count").
		From(dbmodels.TABLE_QUEUE_ENTRIES).
		Where(squirrel.Eq{"org_id": organizationIds}).
		Where(squirrel.Eq{"status": status.String()}).
		GroupBy("org_id")

	return countByHelper(ctx, exec, query, organizationIds)
}

// OldestQueuedEntryCreatedAt returns, per organization, the creation time of
// the oldest entry still waiting for an engine. Organizations with an empty
// backlog are absent from the map.
func (repo *ForesightDbRepository) OldestQueuedEntryCreatedAt(
	ctx context.Context,
	exec Executor,
	organizationIds []string,
) (map[string]time.Time, error) {
	if err := validateForesightDbExecutor(exec); err != nil {
		return nil, err
	}

	type oldestByOrg struct {
		OrgId     string
		CreatedAt time.Time
	}

	query := NewQueryBuilder().
		Select("org_id", "min(created_at) as created_at").
		From(dbmodels.TABLE_QUEUE_ENTRIES).
		Where(squirrel.Eq{"org_id": organizationIds}).
		Where(squirrel.Eq{"status": models.SimulationQueued.String()}).
		GroupBy("org_id")

	rows, err := SqlToListOfRow(ctx, exec, query, func(row pgx.CollectableRow) (oldestByOrg, error) {
		var result oldestByOrg
		err := row.Scan(&result.OrgId, &result.CreatedAt)
		return result, err
	})
	if err != nil {
		return nil, err
	}

	oldest := make(map[string]time.Time, len(rows))
	for _, row := range rows {
		oldest[row.OrgId] = row.CreatedAt
	}
	return oldest, nil
}
