package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"

	"github.com/getforesight/foresight-backend/models"
	"github.com/getforesight/foresight-backend/pure_utils"
	"github.com/getforesight/foresight-backend/repositories"
	"github.com/getforesight/foresight-backend/repositories/clock"
	"github.com/getforesight/foresight-backend/usecases/executor_factory"
)

const seedModelRunCount = 3

// OrgSeedUsecase creates a demo organization with a few model runs and one
// already-completed simulation, so a fresh deployment has something to look at
// without waiting for an engine. Seeding is idempotent: an organization with
// the requested name is only created once.
type OrgSeedUsecase struct {
	executorFactory        executor_factory.ExecutorFactory
	transactionFactory     executor_factory.TransactionFactory
	organizationRepository repositories.OrganizationRepository
	repository             SimulationRepository
	modelRunRepository     modelRunRepository
	blobRepository         repositories.BlobRepository
	resultBucketUrl        string
	clock                  clock.Clock
}

func (uc OrgSeedUsecase) SeedDemoOrganization(ctx context.Context, name string) error {
	exec := uc.executorFactory.NewExecutor()

	orgs, err := uc.organizationRepository.AllOrganizations(ctx, exec)
	if err != nil {
		return err
	}
	for _, org := range orgs {
		if org.Name == name {
			return nil
		}
	}

	orgId := uuid.NewString()
	err = uc.transactionFactory.Transaction(ctx, func(tx repositories.Transaction) error {
		err := uc.organizationRepository.CreateOrganization(ctx, tx, orgId, name)
		if repositories.IsUniqueViolationError(err) {
			return models.ErrIgnoreRollBackError
		}
		return err
	})
	if err != nil {
		return err
	}

	modelRuns := make([]models.ModelRun, 0, seedModelRunCount)
	for i := range seedModelRunCount {
		run, err := uc.modelRunRepository.CreateModelRun(ctx, exec,
			pure_utils.NewPrimaryKey(orgId), models.CreateModelRunInput{
				OrganizationId: orgId,
				ModelId:        uuid.NewString(),
				ModelVersion:   i + 1,
				Name:           fmt.Sprintf("%s forecast", faker.Word()),
			})
		if err != nil {
			return err
		}
		modelRuns = append(modelRuns, run)
	}

	return uc.seedCompletedSimulation(ctx, exec, orgId, modelRuns[0])
}

// seedCompletedSimulation writes a small artifact to the result bucket and
// records a done simulation pointing at it, giving the cache an entry to serve
// and the view endpoints something to render.
func (uc OrgSeedUsecase) seedCompletedSimulation(
	ctx context.Context,
	exec repositories.Executor,
	orgId string,
	modelRun models.ModelRun,
) error {
	request := models.SimulationRequest{
		ModelId:        modelRun.ModelId,
		ModelVersion:   pure_utils.Ptr(modelRun.ModelVersion),
		Drivers:        map[string]any{"revenue_growth": 0.05, "churn_rate": 0.02},
		NumSimulations: 10000,
	}
	fingerprint, err := request.Fingerprint()
	if err != nil {
		return err
	}

	resultId := pure_utils.NewPrimaryKey(orgId)
	artifactKey := fmt.Sprintf("%s/%s.json", orgId, resultId)
	if err := uc.writeDemoArtifact(ctx, artifactKey); err != nil {
		return err
	}

	percentiles := json.RawMessage(`{"p10": [90, 95, 101], "p50": [100, 108, 117], "p90": [110, 123, 138], "survival_probability": 0.92}`)
	sensitivity := json.RawMessage(`[{"driver": "revenue_growth", "correlation": 0.81, "absolute_correlation": 0.81}, {"driver": "churn_rate", "correlation": -0.34, "absolute_correlation": 0.34}]`)

	result, err := uc.repository.CreateSimulationResult(ctx, exec, resultId,
		models.CreateSimulationResultInput{
			OrganizationId:     orgId,
			ModelRunId:         modelRun.Id,
			NumSimulations:     request.NumSimulations,
			Fingerprint:        fingerprint,
			CpuSecondsEstimate: pure_utils.Ptr(cpuSecondsPerSimulation * float64(request.NumSimulations)),
		})
	if err != nil {
		return err
	}

	entry, err := uc.repository.CreateQueueEntry(ctx, exec,
		pure_utils.NewPrimaryKey(orgId), models.CreateQueueEntryInput{
			OrganizationId: orgId,
			ResourceId:     result.Id,
			Params: models.QueueEntryParams{
				SimulationResultId: result.Id,
				ModelRunId:         modelRun.Id,
				Fingerprint:        fingerprint,
				Request:            request,
			},
		})
	if err != nil {
		return err
	}

	now := uc.clock.Now()
	_, err = uc.repository.UpdateSimulationResult(ctx, exec,
		models.UpdateSimulationResultInput{
			Id:               result.Id,
			Status:           pure_utils.Ptr(models.SimulationDone),
			ResultLocation:   pure_utils.Ptr(fmt.Sprintf("%s/%s", uc.resultBucketUrl, artifactKey)),
			Percentiles:      percentiles,
			Sensitivity:      sensitivity,
			ConfidenceLevel:  pure_utils.Ptr(0.95),
			CpuSecondsActual: pure_utils.Ptr(18.4),
			FinishedAt:       &now,
		})
	if err != nil {
		return err
	}

	_, err = uc.repository.UpdateQueueEntry(ctx, exec, models.UpdateQueueEntryInput{
		Id:       entry.Id,
		Status:   pure_utils.Ptr(models.SimulationDone),
		Progress: json.RawMessage("100"),
	})
	return err
}

func (uc OrgSeedUsecase) writeDemoArtifact(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	writer, err := uc.blobRepository.OpenStream(ctx, uc.resultBucketUrl, key)
	if err != nil {
		return err
	}
	artifact := map[string]any{
		"generated_at": uc.clock.Now().Format(time.RFC3339),
		"paths_sample": [][]float64{{100, 108, 117}, {100, 96, 104}},
	}
	if err := json.NewEncoder(writer).Encode(artifact); err != nil {
		writer.Close()
		return err
	}
	return writer.Close()
}
