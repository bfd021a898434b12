package pure_utils

import (
	"github.com/google/uuid"
)

// NewPrimaryKey returns a fresh row id whose first 32 bits are copied from
// the organization id, so rows of one tenant cluster together in the index.
// A non-uuid organization id falls back to a fully random id.
func NewPrimaryKey(organizationId string) string {
	newUuid := uuid.New()

	orgUuid, err := uuid.Parse(organizationId)
	if err != nil {
		return newUuid.String()
	}

	var output uuid.UUID
	copy(output[:4], orgUuid[:4])
	copy(output[4:], newUuid[4:])

	return output.String()
}
