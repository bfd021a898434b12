package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/getforesight/foresight-backend/models"
	"github.com/getforesight/foresight-backend/repositories"
)

type TaskQueueRepository struct {
	mock.Mock
}

func (m *TaskQueueRepository) EnqueueSimulationDispatchTask(
	ctx context.Context,
	tx repositories.Transaction,
	organizationId string,
	entry models.QueueEntry,
) error {
	args := m.Called(ctx, tx, organizationId, entry)
	return args.Error(0)
}
