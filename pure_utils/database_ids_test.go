package pure_utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewPrimaryKeySharesOrgPrefix(t *testing.T) {
	organizationId := uuid.NewString()

	first := NewPrimaryKey(organizationId)
	second := NewPrimaryKey(organizationId)

	assert.NotEqual(t, first, second)
	assert.Equal(t, organizationId[:8], first[:8])
	assert.Equal(t, organizationId[:8], second[:8])
	assert.NoError(t, uuid.Validate(first))
}

func TestNewPrimaryKeyWithBadOrgIdStillReturnsUuid(t *testing.T) {
	id := NewPrimaryKey("not-a-uuid")
	assert.NoError(t, uuid.Validate(id))
}
