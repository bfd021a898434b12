package usecases

import (
	"context"

	"github.com/google/uuid"

	"github.com/getforesight/foresight-backend/models"
	"github.com/getforesight/foresight-backend/repositories"
	"github.com/getforesight/foresight-backend/usecases/analytics"
	"github.com/getforesight/foresight-backend/usecases/executor_factory"
)

type OrganizationUsecase struct {
	executorFactory        executor_factory.ExecutorFactory
	transactionFactory     executor_factory.TransactionFactory
	organizationRepository repositories.OrganizationRepository
}

func (uc OrganizationUsecase) GetOrganizations(ctx context.Context) ([]models.Organization, error) {
	return uc.organizationRepository.AllOrganizations(ctx, uc.executorFactory.NewExecutor())
}

func (uc OrganizationUsecase) GetOrganization(ctx context.Context, organizationId string) (models.Organization, error) {
	return uc.organizationRepository.GetOrganizationById(ctx,
		uc.executorFactory.NewExecutor(), organizationId)
}

func (uc OrganizationUsecase) CreateOrganization(ctx context.Context, name string) (models.Organization, error) {
	organization, err := executor_factory.TransactionReturnValue(ctx, uc.transactionFactory,
		func(tx repositories.Transaction) (models.Organization, error) {
			newOrganizationId := uuid.NewString()
			if err := uc.organizationRepository.CreateOrganization(
				ctx, tx, newOrganizationId, name); err != nil {
				return models.Organization{}, err
			}
			return uc.organizationRepository.GetOrganizationById(ctx, tx, newOrganizationId)
		})
	if err != nil {
		return models.Organization{}, err
	}

	analytics.TrackEvent(ctx, models.AnalyticsOrganizationCreated, organization.Id,
		map[string]any{"name": organization.Name})
	return organization, nil
}
