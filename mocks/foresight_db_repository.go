package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/getforesight/foresight-backend/models"
	"github.com/getforesight/foresight-backend/repositories"
)

// ForesightDbRepository mocks the repository methods the simulation usecases
// depend on.
type ForesightDbRepository struct {
	mock.Mock
}

func (m *ForesightDbRepository) CreateSimulationResult(
	ctx context.Context,
	exec repositories.Executor,
	id string,
	input models.CreateSimulationResultInput,
) (models.SimulationResult, error) {
	args := m.Called(ctx, exec, id, input)
	return args.Get(0).(models.SimulationResult), args.Error(1)
}

func (m *ForesightDbRepository) GetSimulationResultById(
	ctx context.Context,
	exec repositories.Executor,
	id string,
) (models.SimulationResult, error) {
	args := m.Called(ctx, exec, id)
	return args.Get(0).(models.SimulationResult), args.Error(1)
}

func (m *ForesightDbRepository) FindReusableSimulationResult(
	ctx context.Context,
	exec repositories.Executor,
	organizationId, fingerprint string,
	finishedAfter time.Time,
) (*models.SimulationResult, error) {
	args := m.Called(ctx, exec, organizationId, fingerprint, finishedAfter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SimulationResult), args.Error(1)
}

func (m *ForesightDbRepository) UpdateSimulationResult(
	ctx context.Context,
	exec repositories.Executor,
	input models.UpdateSimulationResultInput,
) (models.SimulationResult, error) {
	args := m.Called(ctx, exec, input)
	return args.Get(0).(models.SimulationResult), args.Error(1)
}

func (m *ForesightDbRepository) ListSimulationResults(
	ctx context.Context,
	exec repositories.Executor,
	organizationId, modelRunId string,
) ([]models.SimulationResult, error) {
	args := m.Called(ctx, exec, organizationId, modelRunId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SimulationResult), args.Error(1)
}

func (m *ForesightDbRepository) CreateQueueEntry(
	ctx context.Context,
	exec repositories.Executor,
	id string,
	input models.CreateQueueEntryInput,
) (models.QueueEntry, error) {
	args := m.Called(ctx, exec, id, input)
	return args.Get(0).(models.QueueEntry), args.Error(1)
}

func (m *ForesightDbRepository) GetQueueEntryById(
	ctx context.Context,
	exec repositories.Executor,
	id string,
) (models.QueueEntry, error) {
	args := m.Called(ctx, exec, id)
	return args.Get(0).(models.QueueEntry), args.Error(1)
}

func (m *ForesightDbRepository) GetQueueEntryByResourceId(
	ctx context.Context,
	exec repositories.Executor,
	resourceId string,
) (*models.QueueEntry, error) {
	args := m.Called(ctx, exec, resourceId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QueueEntry), args.Error(1)
}

func (m *ForesightDbRepository) UpdateQueueEntry(
	ctx context.Context,
	exec repositories.Executor,
	input models.UpdateQueueEntryInput,
) (models.QueueEntry, error) {
	args := m.Called(ctx, exec, input)
	return args.Get(0).(models.QueueEntry), args.Error(1)
}

func (m *ForesightDbRepository) GetModelRunById(
	ctx context.Context,
	exec repositories.Executor,
	id string,
) (models.ModelRun, error) {
	args := m.Called(ctx, exec, id)
	return args.Get(0).(models.ModelRun), args.Error(1)
}

func (m *ForesightDbRepository) CreateModelRun(
	ctx context.Context,
	exec repositories.Executor,
	id string,
	input models.CreateModelRunInput,
) (models.ModelRun, error) {
	args := m.Called(ctx, exec, id, input)
	return args.Get(0).(models.ModelRun), args.Error(1)
}

func (m *ForesightDbRepository) ListModelRuns(
	ctx context.Context,
	exec repositories.Executor,
	organizationId string,
) ([]models.ModelRun, error) {
	args := m.Called(ctx, exec, organizationId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ModelRun), args.Error(1)
}

func (m *ForesightDbRepository) CountQueueEntriesByStatus(
	ctx context.Context,
	exec repositories.Executor,
	organizationIds []string,
	status models.SimulationStatus,
) (map[string]int, error) {
	args := m.Called(ctx, exec, organizationIds, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

func (m *ForesightDbRepository) OldestQueuedEntryCreatedAt(
	ctx context.Context,
	exec repositories.Executor,
	organizationIds []string,
) (map[string]time.Time, error) {
	args := m.Called(ctx, exec, organizationIds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]time.Time), args.Error(1)
}
