package utils

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/getforesight/foresight-backend/models"
)

var errMissingOrganizationId = fmt.Errorf(
	"organization-id query parameter is required: %w", models.BadParameterError)

func ValidateUuid(uuidParam string) error {
	if _, err := uuid.Parse(uuidParam); err != nil {
		return fmt.Errorf("'%s' is not a valid UUID: %w", uuidParam, models.BadParameterError)
	}
	return nil
}
