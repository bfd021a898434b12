package dbmodels

import (
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/getforesight/foresight-backend/models"
	"github.com/getforesight/foresight-backend/utils"
)

const TABLE_QUEUE_ENTRIES = "queue_entries"

var SelectQueueEntryColumn = utils.ColumnList[DBQueueEntry]()

type DBQueueEntry struct {
	Id         string          `db:"id"`
	OrgId      string          `db:"org_id"`
	Kind       string          `db:"kind"`
	ResourceId *string         `db:"resource_id"` // simulation result the entry was created for
	Params     json.RawMessage `db:"params"`
	Status     string          `db:"status"`
	Progress   json.RawMessage `db:"progress"`
	CreatedAt  time.Time       `db:"created_at"`
	UpdatedAt  *time.Time      `db:"updated_at"`
}

func AdaptQueueEntry(db DBQueueEntry) (models.QueueEntry, error) {
	var params models.QueueEntryParams
	if len(db.Params) > 0 {
		if err := json.Unmarshal(db.Params, &params); err != nil {
			return models.QueueEntry{}, errors.Wrap(err,
				"could not unmarshal queue entry params")
		}
	}

	return models.QueueEntry{
		Id:             db.Id,
		OrganizationId: db.OrgId,
		Kind:           db.Kind,
		ResourceId:     db.ResourceId,
		Params:         params,
		Status:         models.SimulationStatusFrom(db.Status),
		Progress:       db.Progress,
		CreatedAt:      db.CreatedAt,
		UpdatedAt:      db.UpdatedAt,
	}, nil
}
