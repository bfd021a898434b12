package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/getforesight/foresight-backend/mocks"
	"github.com/getforesight/foresight-backend/models"
	"github.com/getforesight/foresight-backend/pure_utils"
	"github.com/getforesight/foresight-backend/repositories/clock"
)

type SimulationUsecaseTestSuite struct {
	suite.Suite
	executor            *mocks.Executor
	executorFactory     *mocks.ExecutorFactory
	transaction         *mocks.Transaction
	transactionFactory  *mocks.TransactionFactory
	repository          *mocks.ForesightDbRepository
	taskQueueRepository *mocks.TaskQueueRepository

	now            time.Time
	organizationId string
	modelRun       models.ModelRun
	request        models.SimulationRequest
	fingerprint    string
}

func (suite *SimulationUsecaseTestSuite) SetupTest() {
	suite.executor = new(mocks.Executor)
	suite.executorFactory = new(mocks.ExecutorFactory)
	suite.transaction = new(mocks.Transaction)
	suite.transactionFactory = &mocks.TransactionFactory{TxMock: suite.transaction}
	suite.repository = new(mocks.ForesightDbRepository)
	suite.taskQueueRepository = new(mocks.TaskQueueRepository)

	suite.now = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	suite.organizationId = "25ab6323-1657-4a52-923a-ef6983fe4532"
	suite.modelRun = models.ModelRun{
		Id:             "c5968ff7-6142-4623-a6b3-1539f345e5fa",
		OrganizationId: suite.organizationId,
		ModelId:        "mdl_growth",
		ModelVersion:   1,
	}
	suite.request = models.SimulationRequest{
		NumSimulations: 1000,
		Drivers:        map[string]any{"churn": 5.0, "growth": 8.0},
	}

	withModel := suite.request
	withModel.ModelId = suite.modelRun.ModelId
	withModel.ModelVersion = pure_utils.Ptr(suite.modelRun.ModelVersion)
	fingerprint, err := withModel.Fingerprint()
	suite.Require().NoError(err)
	suite.fingerprint = fingerprint

	suite.executorFactory.On("NewExecutor").Return(suite.executor)
}

func (suite *SimulationUsecaseTestSuite) makeUsecase() SimulationUsecase {
	return SimulationUsecase{
		executorFactory:     suite.executorFactory,
		transactionFactory:  suite.transactionFactory,
		repository:          suite.repository,
		modelRunRepository:  suite.repository,
		taskQueueRepository: suite.taskQueueRepository,
		clock:               clock.NewMock(suite.now),
		defaultCacheTtlDays: DefaultCacheTtlDays,
	}
}

func (suite *SimulationUsecaseTestSuite) AssertExpectations() {
	t := suite.T()
	suite.executorFactory.AssertExpectations(t)
	suite.repository.AssertExpectations(t)
	suite.taskQueueRepository.AssertExpectations(t)
}

func (suite *SimulationUsecaseTestSuite) TestCacheHitReturnsExistingResult() {
	cached := models.SimulationResult{
		Id:             "0da31f26-8d6c-4d15-a7d5-9aa1a7a7b6f1",
		OrganizationId: suite.organizationId,
		Status:         models.SimulationDone,
	}
	suite.repository.On("GetModelRunById", mock.Anything, suite.executor, suite.modelRun.Id).
		Return(suite.modelRun, nil)
	suite.repository.On("FindReusableSimulationResult", mock.Anything, suite.executor,
		suite.organizationId, suite.fingerprint, suite.now.AddDate(0, 0, -DefaultCacheTtlDays)).
		Return(&cached, nil)

	creation, err := suite.makeUsecase().RequestSimulation(context.Background(),
		CreateSimulationInput{
			OrganizationId: suite.organizationId,
			ModelRunId:     suite.modelRun.Id,
			Request:        suite.request,
		})

	t := suite.T()
	assert.NoError(t, err)
	assert.True(t, creation.CacheHit)
	assert.Equal(t, cached.Id, creation.SimulationResultId)
	assert.Empty(t, creation.QueueEntryId)
	suite.AssertExpectations()
}

func (suite *SimulationUsecaseTestSuite) TestCacheTtlOverrideMovesTheCutoff() {
	ttlDays := 7
	suite.repository.On("GetModelRunById", mock.Anything, suite.executor, suite.modelRun.Id).
		Return(suite.modelRun, nil)
	suite.repository.On("FindReusableSimulationResult", mock.Anything, suite.executor,
		suite.organizationId, suite.fingerprint, suite.now.AddDate(0, 0, -ttlDays)).
		Return(&models.SimulationResult{
			Id: "0da31f26-8d6c-4d15-a7d5-9aa1a7a7b6f1", OrganizationId: suite.organizationId,
		}, nil)

	_, err := suite.makeUsecase().RequestSimulation(context.Background(),
		CreateSimulationInput{
			OrganizationId: suite.organizationId,
			ModelRunId:     suite.modelRun.Id,
			Request:        suite.request,
			CacheTtlDays:   &ttlDays,
		})

	assert.NoError(suite.T(), err)
	suite.AssertExpectations()
}

func (suite *SimulationUsecaseTestSuite) TestCacheMissCreatesThePairInOneTransaction() {
	suite.repository.On("GetModelRunById", mock.Anything, suite.executor, suite.modelRun.Id).
		Return(suite.modelRun, nil)
	suite.repository.On("FindReusableSimulationResult", mock.Anything, suite.executor,
		suite.organizationId, suite.fingerprint, mock.Anything).
		Return(nil, nil)

	suite.repository.On("CreateSimulationResult", mock.Anything, suite.transaction,
		mock.Anything, mock.MatchedBy(func(input models.CreateSimulationResultInput) bool {
			return input.Fingerprint == suite.fingerprint &&
				input.OrganizationId == suite.organizationId &&
				input.NumSimulations == 1000
		})).
		Return(models.SimulationResult{
			Id:             "0da31f26-8d6c-4d15-a7d5-9aa1a7a7b6f1",
			OrganizationId: suite.organizationId,
			Status:         models.SimulationQueued,
		}, nil)
	suite.repository.On("CreateQueueEntry", mock.Anything, suite.transaction,
		mock.Anything, mock.MatchedBy(func(input models.CreateQueueEntryInput) bool {
			return input.ResourceId == "0da31f26-8d6c-4d15-a7d5-9aa1a7a7b6f1" &&
				input.Params.Fingerprint == suite.fingerprint &&
				input.Params.Request.ModelId == suite.modelRun.ModelId
		})).
		Return(models.QueueEntry{
			Id:             "7b8fba6e-5efc-4cf2-8a18-0e4f4a294b61",
			OrganizationId: suite.organizationId,
			Status:         models.SimulationQueued,
		}, nil)
	suite.taskQueueRepository.On("EnqueueSimulationDispatchTask", mock.Anything,
		suite.transaction, suite.organizationId, mock.Anything).
		Return(nil)
	suite.transactionFactory.On("Transaction", mock.Anything, mock.Anything).Return(nil)

	creation, err := suite.makeUsecase().RequestSimulation(context.Background(),
		CreateSimulationInput{
			OrganizationId: suite.organizationId,
			ModelRunId:     suite.modelRun.Id,
			Request:        suite.request,
		})

	t := suite.T()
	assert.NoError(t, err)
	assert.False(t, creation.CacheHit)
	assert.Equal(t, "0da31f26-8d6c-4d15-a7d5-9aa1a7a7b6f1", creation.SimulationResultId)
	assert.Equal(t, "7b8fba6e-5efc-4cf2-8a18-0e4f4a294b61", creation.QueueEntryId)
	suite.AssertExpectations()
}

func (suite *SimulationUsecaseTestSuite) TestForceSkipsTheCacheLookup() {
	suite.repository.On("GetModelRunById", mock.Anything, suite.executor, suite.modelRun.Id).
		Return(suite.modelRun, nil)
	suite.repository.On("CreateSimulationResult", mock.Anything, suite.transaction,
		mock.Anything, mock.Anything).
		Return(models.SimulationResult{Id: "0da31f26-8d6c-4d15-a7d5-9aa1a7a7b6f1"}, nil)
	suite.repository.On("CreateQueueEntry", mock.Anything, suite.transaction,
		mock.Anything, mock.Anything).
		Return(models.QueueEntry{Id: "7b8fba6e-5efc-4cf2-8a18-0e4f4a294b61"}, nil)
	suite.taskQueueRepository.On("EnqueueSimulationDispatchTask", mock.Anything,
		suite.transaction, suite.organizationId, mock.Anything).
		Return(nil)
	suite.transactionFactory.On("Transaction", mock.Anything, mock.Anything).Return(nil)

	_, err := suite.makeUsecase().RequestSimulation(context.Background(),
		CreateSimulationInput{
			OrganizationId: suite.organizationId,
			ModelRunId:     suite.modelRun.Id,
			Request:        suite.request,
			Force:          true,
		})

	assert.NoError(suite.T(), err)
	suite.repository.AssertNotCalled(suite.T(), "FindReusableSimulationResult",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.AssertExpectations()
}

func (suite *SimulationUsecaseTestSuite) TestModelRunOfAnotherOrganizationIsNotFound() {
	foreignRun := suite.modelRun
	foreignRun.OrganizationId = "e92871e8-1c72-4c1c-a6f9-b3fca344b0a1"
	suite.repository.On("GetModelRunById", mock.Anything, suite.executor, suite.modelRun.Id).
		Return(foreignRun, nil)

	_, err := suite.makeUsecase().RequestSimulation(context.Background(),
		CreateSimulationInput{
			OrganizationId: suite.organizationId,
			ModelRunId:     suite.modelRun.Id,
			Request:        suite.request,
		})

	assert.ErrorIs(suite.T(), err, models.NotFoundError)
	suite.AssertExpectations()
}

func (suite *SimulationUsecaseTestSuite) TestInvalidRequestIsRejectedBeforeAnyWrite() {
	suite.repository.On("GetModelRunById", mock.Anything, suite.executor, suite.modelRun.Id).
		Return(suite.modelRun, nil)

	_, err := suite.makeUsecase().RequestSimulation(context.Background(),
		CreateSimulationInput{
			OrganizationId: suite.organizationId,
			ModelRunId:     suite.modelRun.Id,
			Request:        models.SimulationRequest{NumSimulations: 0},
		})

	assert.ErrorIs(suite.T(), err, models.BadParameterError)
	suite.repository.AssertNotCalled(suite.T(), "CreateSimulationResult",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.AssertExpectations()
}

func TestSimulationUsecase(t *testing.T) {
	suite.Run(t, new(SimulationUsecaseTestSuite))
}
