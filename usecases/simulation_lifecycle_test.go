package usecases

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/getforesight/foresight-backend/mocks"
	"github.com/getforesight/foresight-backend/models"
	"github.com/getforesight/foresight-backend/pure_utils"
	"github.com/getforesight/foresight-backend/repositories/clock"
)

// Walks a simulation through its whole lifecycle against mocked stores:
// fingerprint, cache miss, pair creation, engine completion, reconciliation
// through both ids, and finally a cache hit for a reordered-but-equal request.
func TestSimulationLifecycle(t *testing.T) {
	executor := new(mocks.Executor)
	executorFactory := new(mocks.ExecutorFactory)
	transaction := new(mocks.Transaction)
	transactionFactory := &mocks.TransactionFactory{TxMock: transaction}
	repository := new(mocks.ForesightDbRepository)
	taskQueueRepository := new(mocks.TaskQueueRepository)
	blobRepository := new(mocks.BlobRepository)
	executorFactory.On("NewExecutor").Return(executor)

	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	organizationId := "25ab6323-1657-4a52-923a-ef6983fe4532"
	modelRun := models.ModelRun{
		Id:             "c5968ff7-6142-4623-a6b3-1539f345e5fa",
		OrganizationId: organizationId,
		ModelId:        "mdl_growth",
		ModelVersion:   1,
	}

	simulationUc := SimulationUsecase{
		executorFactory:     executorFactory,
		transactionFactory:  transactionFactory,
		repository:          repository,
		modelRunRepository:  repository,
		taskQueueRepository: taskQueueRepository,
		clock:               clock.NewMock(now),
		defaultCacheTtlDays: DefaultCacheTtlDays,
	}
	viewUc := SimulationViewUsecase{
		executorFactory: executorFactory,
		repository:      repository,
		blobRepository:  blobRepository,
		signedUrlCache:  expirable.NewLRU[string, string](10, nil, signedUrlCacheTtl),
	}

	// step 1: fingerprint the request
	request := models.SimulationRequest{
		NumSimulations: 1000,
		Drivers:        map[string]any{"churn": 5.0, "growth": 8.0},
	}
	withModel := request
	withModel.ModelId = modelRun.ModelId
	withModel.ModelVersion = pure_utils.Ptr(modelRun.ModelVersion)
	fingerprint, err := withModel.Fingerprint()
	require.NoError(t, err)

	// steps 2 and 3: the cold cache misses and the pair is created queued
	cutoff := now.AddDate(0, 0, -DefaultCacheTtlDays)
	repository.On("GetModelRunById", mock.Anything, executor, modelRun.Id).
		Return(modelRun, nil)
	repository.On("FindReusableSimulationResult", mock.Anything, executor,
		organizationId, fingerprint, cutoff).
		Return(nil, nil).Once()
	repository.On("CreateSimulationResult", mock.Anything, transaction,
		mock.Anything, mock.Anything).
		Return(models.SimulationResult{
			Id:             "0da31f26-8d6c-4d15-a7d5-9aa1a7a7b6f1",
			OrganizationId: organizationId,
			ModelRunId:     modelRun.Id,
			NumSimulations: 1000,
			Fingerprint:    fingerprint,
			Status:         models.SimulationQueued,
			CreatedAt:      now,
		}, nil)
	repository.On("CreateQueueEntry", mock.Anything, transaction,
		mock.Anything, mock.Anything).
		Return(models.QueueEntry{
			Id:             "7b8fba6e-5efc-4cf2-8a18-0e4f4a294b61",
			OrganizationId: organizationId,
			Kind:           models.QueueEntryKindSimulation,
			ResourceId:     pure_utils.Ptr("0da31f26-8d6c-4d15-a7d5-9aa1a7a7b6f1"),
			Params: models.QueueEntryParams{
				SimulationResultId: "0da31f26-8d6c-4d15-a7d5-9aa1a7a7b6f1",
				ModelRunId:         modelRun.Id,
				Fingerprint:        fingerprint,
				Request:            withModel,
			},
			Status:    models.SimulationQueued,
			Progress:  json.RawMessage("0"),
			CreatedAt: now,
		}, nil)
	taskQueueRepository.On("EnqueueSimulationDispatchTask", mock.Anything,
		transaction, organizationId, mock.Anything).
		Return(nil)
	transactionFactory.On("Transaction", mock.Anything, mock.Anything).Return(nil)

	creation, err := simulationUc.RequestSimulation(context.Background(),
		CreateSimulationInput{
			OrganizationId: organizationId,
			ModelRunId:     modelRun.Id,
			Request:        request,
		})
	require.NoError(t, err)
	assert.False(t, creation.CacheHit)
	assert.Equal(t, "0da31f26-8d6c-4d15-a7d5-9aa1a7a7b6f1", creation.SimulationResultId)
	assert.Equal(t, "7b8fba6e-5efc-4cf2-8a18-0e4f4a294b61", creation.QueueEntryId)

	// step 4: the engine finishes the run and writes both records
	finishedAt := now.Add(5 * time.Minute)
	doneResult := models.SimulationResult{
		Id:             creation.SimulationResultId,
		OrganizationId: organizationId,
		ModelRunId:     modelRun.Id,
		NumSimulations: 1000,
		Fingerprint:    fingerprint,
		Status:         models.SimulationDone,
		ResultLocation: pure_utils.Ptr("gs://foresight-results/runs/e2e.json"),
		Percentiles:    json.RawMessage(`{"p50": [100, 110]}`),
		CreatedAt:      now,
		FinishedAt:     &finishedAt,
	}
	doneEntry := models.QueueEntry{
		Id:             creation.QueueEntryId,
		OrganizationId: organizationId,
		Kind:           models.QueueEntryKindSimulation,
		ResourceId:     pure_utils.Ptr(doneResult.Id),
		Params: models.QueueEntryParams{
			SimulationResultId: doneResult.Id,
			ModelRunId:         modelRun.Id,
			Fingerprint:        fingerprint,
			Request:            withModel,
		},
		Status:    models.SimulationDone,
		Progress:  json.RawMessage("100"),
		CreatedAt: now,
	}

	// step 5: both ids reconcile to the same finished view
	repository.On("GetQueueEntryById", mock.Anything, executor, doneEntry.Id).
		Return(doneEntry, nil)
	repository.On("GetQueueEntryById", mock.Anything, executor, doneResult.Id).
		Return(models.QueueEntry{}, errors.Wrap(models.NotFoundError, "no queue entry"))
	repository.On("GetSimulationResultById", mock.Anything, executor, doneResult.Id).
		Return(doneResult, nil)
	repository.On("GetQueueEntryByResourceId", mock.Anything, executor, doneResult.Id).
		Return(&doneEntry, nil)
	blobRepository.On("GenerateSignedUrl", mock.Anything,
		"gs://foresight-results", "runs/e2e.json").
		Return("https://signed.example.com/runs/e2e.json", nil).Once()

	byQueueId, err := viewUc.GetSimulationView(context.Background(), organizationId, doneEntry.Id)
	require.NoError(t, err)
	byResultId, err := viewUc.GetSimulationView(context.Background(), organizationId, doneResult.Id)
	require.NoError(t, err)

	assert.Equal(t, byQueueId, byResultId)
	assert.Equal(t, models.SimulationDone, byQueueId.Status)
	assert.Equal(t, 100.0, byQueueId.Progress)
	require.NotNil(t, byQueueId.Percentiles)
	assert.Equal(t, []float64{100, 110}, byQueueId.Percentiles.Series["p50"])
	require.NotNil(t, byQueueId.ResultUrl)
	assert.Equal(t, "https://signed.example.com/runs/e2e.json", *byQueueId.ResultUrl)

	// step 6: the same request with reordered driver keys fingerprints
	// identically and now hits the warm cache
	reordered := models.SimulationRequest{
		NumSimulations: 1000,
		Drivers:        map[string]any{"growth": 8.0, "churn": 5.0},
	}
	reorderedWithModel := reordered
	reorderedWithModel.ModelId = modelRun.ModelId
	reorderedWithModel.ModelVersion = pure_utils.Ptr(modelRun.ModelVersion)
	reorderedFingerprint, err := reorderedWithModel.Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, fingerprint, reorderedFingerprint)

	repository.On("FindReusableSimulationResult", mock.Anything, executor,
		organizationId, fingerprint, cutoff).
		Return(&doneResult, nil).Once()

	secondCreation, err := simulationUc.RequestSimulation(context.Background(),
		CreateSimulationInput{
			OrganizationId: organizationId,
			ModelRunId:     modelRun.Id,
			Request:        reordered,
		})
	require.NoError(t, err)
	assert.True(t, secondCreation.CacheHit)
	assert.Equal(t, doneResult.Id, secondCreation.SimulationResultId)
	assert.Empty(t, secondCreation.QueueEntryId)

	repository.AssertExpectations(t)
	taskQueueRepository.AssertExpectations(t)
	blobRepository.AssertExpectations(t)
}
