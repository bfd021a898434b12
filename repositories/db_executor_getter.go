package repositories

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"

	"github.com/getforesight/foresight-backend/models"
)

// ConnectionPool is the slice of pgxpool.Pool the executor getter needs.
// Keeping it an interface lets tests swap in a pgxmock pool.
type ConnectionPool interface {
	TransactionOrPool
	Begin(ctx context.Context) (pgx.Tx, error)
}

type ExecutorGetter struct {
	connectionPool ConnectionPool
}

func NewExecutorGetter(pool ConnectionPool) ExecutorGetter {
	return ExecutorGetter{
		connectionPool: pool,
	}
}

func (g ExecutorGetter) Transaction(
	ctx context.Context,
	databaseSchema models.DatabaseSchema,
	fn func(tx Transaction) error,
) error {
	err := pgx.BeginFunc(ctx, g.connectionPool, func(tx pgx.Tx) error {
		return fn(&PgTx{
			databaseSchema: databaseSchema,
			tx:             tx,
		})
	})

	// helper: The callback can return ErrIgnoreRollBackError
	// to explicitly specify that the error should be ignored.
	if errors.Is(err, models.ErrIgnoreRollBackError) {
		return nil
	}
	return errors.Wrap(err, "Error executing transaction")
}

func (g ExecutorGetter) GetExecutor(databaseSchema models.DatabaseSchema) Executor {
	return PgExecutor{
		databaseSchema: databaseSchema,
		exec:           g.connectionPool,
	}
}

func validateForesightDbExecutor(exec databaseSchemaGetter) error {
	if exec == nil {
		return errors.New("Cannot use nil executor to query the foresight database")
	}
	if exec.DatabaseSchema().SchemaType != models.DATABASE_SCHEMA_TYPE_FORESIGHT {
		return errors.New("Cannot use this executor to query the foresight database")
	}
	return nil
}
