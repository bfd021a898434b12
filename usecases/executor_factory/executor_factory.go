package executor_factory

import (
	"context"

	"github.com/getforesight/foresight-backend/models"
	"github.com/getforesight/foresight-backend/repositories"
)

type ExecutorFactory interface {
	NewExecutor() repositories.Executor
}

type TransactionFactory interface {
	Transaction(ctx context.Context, fn func(tx repositories.Transaction) error) error
}

// interfaces used by the class
type executorFactoryRepository interface {
	GetExecutor(databaseSchema models.DatabaseSchema) repositories.Executor
	Transaction(ctx context.Context, databaseSchema models.DatabaseSchema,
		fn func(tx repositories.Transaction) error) error
}

// DbExecutorFactory hands out executors and transactions on the foresight
// database. The store handle is injected here once at process start, nothing
// else in the codebase touches the connection pool directly.
type DbExecutorFactory struct {
	transactionFactoryRepository executorFactoryRepository
}

func NewDbExecutorFactory(
	transactionFactoryRepository executorFactoryRepository,
) DbExecutorFactory {
	return DbExecutorFactory{
		transactionFactoryRepository: transactionFactoryRepository,
	}
}

func (factory DbExecutorFactory) Transaction(
	ctx context.Context,
	f func(tx repositories.Transaction) error,
) error {
	return factory.transactionFactoryRepository.Transaction(ctx, models.DATABASE_FORESIGHT_SCHEMA, f)
}

func (factory DbExecutorFactory) NewExecutor() repositories.Executor {
	return factory.transactionFactoryRepository.GetExecutor(models.DATABASE_FORESIGHT_SCHEMA)
}
