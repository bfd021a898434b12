package dbmodels

import (
	"time"

	"github.com/getforesight/foresight-backend/models"
	"github.com/getforesight/foresight-backend/utils"
)

const TABLE_MODEL_RUNS = "model_runs"

var SelectModelRunColumn = utils.ColumnList[DBModelRun]()

type DBModelRun struct {
	Id           string    `db:"id"`
	OrgId        string    `db:"org_id"`
	ModelId      string    `db:"model_id"`
	ModelVersion int       `db:"model_version"`
	Name         string    `db:"name"`
	CreatedAt    time.Time `db:"created_at"`
}

func AdaptModelRun(db DBModelRun) (models.ModelRun, error) {
	return models.ModelRun{
		Id:             db.Id,
		OrganizationId: db.OrgId,
		ModelId:        db.ModelId,
		ModelVersion:   db.ModelVersion,
		Name:           db.Name,
		CreatedAt:      db.CreatedAt,
	}, nil
}
