package executor_factory

import (
	"github.com/pashagolub/pgxmock/v4"

	"github.com/getforesight/foresight-backend/models"
	"github.com/getforesight/foresight-backend/repositories"
)

type ExecutorFactoryStub struct {
	Mock pgxmock.PgxPoolIface
}

func NewExecutorFactoryStub() ExecutorFactoryStub {
	pool, _ := pgxmock.NewPool()

	return ExecutorFactoryStub{
		Mock: pool,
	}
}

type PgExecutorStub struct {
	pgxmock.PgxPoolIface
}

func (stub ExecutorFactoryStub) NewExecutor() repositories.Executor {
	return PgExecutorStub{
		stub.Mock,
	}
}

func (stub PgExecutorStub) DatabaseSchema() models.DatabaseSchema {
	return models.DATABASE_FORESIGHT_SCHEMA
}
