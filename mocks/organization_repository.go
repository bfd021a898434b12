package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/getforesight/foresight-backend/models"
	"github.com/getforesight/foresight-backend/repositories"
)

type OrganizationRepository struct {
	mock.Mock
}

func (m *OrganizationRepository) AllOrganizations(
	ctx context.Context,
	exec repositories.Executor,
) ([]models.Organization, error) {
	args := m.Called(ctx, exec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Organization), args.Error(1)
}

func (m *OrganizationRepository) GetOrganizationById(
	ctx context.Context,
	exec repositories.Executor,
	organizationId string,
) (models.Organization, error) {
	args := m.Called(ctx, exec, organizationId)
	return args.Get(0).(models.Organization), args.Error(1)
}

func (m *OrganizationRepository) CreateOrganization(
	ctx context.Context,
	exec repositories.Executor,
	newOrganizationId, name string,
) error {
	args := m.Called(ctx, exec, newOrganizationId, name)
	return args.Error(0)
}

func (m *OrganizationRepository) DeleteOrganization(
	ctx context.Context,
	exec repositories.Executor,
	organizationId string,
) error {
	args := m.Called(ctx, exec, organizationId)
	return args.Error(0)
}
