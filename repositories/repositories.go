package repositories

import (
	"github.com/jackc/pgx/v5"
	"github.com/riverqueue/river"

	"github.com/getforesight/foresight-backend/repositories/clock"
)

type Repositories struct {
	ExecutorGetter         ExecutorGetter
	ForesightDbRepository  *ForesightDbRepository
	OrganizationRepository OrganizationRepository
	BlobRepository         BlobRepository
	TaskQueueRepository    TaskQueueRepository
	Clock                  clock.Clock
}

type Option func(*options)

type options struct {
	riverClient *river.Client[pgx.Tx]
	clock       clock.Clock
}

func WithRiverClient(client *river.Client[pgx.Tx]) Option {
	return func(o *options) {
		o.riverClient = client
	}
}

func WithClock(c clock.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

func NewRepositories(
	pool ConnectionPool,
	googleApplicationCredentials string,
	opts ...Option,
) Repositories {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.clock == nil {
		o.clock = clock.New()
	}

	var taskQueueRepository TaskQueueRepository
	if o.riverClient != nil {
		taskQueueRepository = NewTaskQueueRepository(o.riverClient)
	}

	return Repositories{
		ExecutorGetter:         NewExecutorGetter(pool),
		ForesightDbRepository:  NewForesightDbRepository(),
		OrganizationRepository: &OrganizationRepositoryPostgresql{},
		BlobRepository:         NewBlobRepository(googleApplicationCredentials),
		TaskQueueRepository:    taskQueueRepository,
		Clock:                  o.clock,
	}
}
