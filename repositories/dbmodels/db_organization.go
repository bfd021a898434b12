package dbmodels

import (
	"time"

	"github.com/getforesight/foresight-backend/models"
	"github.com/getforesight/foresight-backend/utils"
)

const TABLE_ORGANIZATIONS = "organizations"

var SelectOrganizationColumn = utils.ColumnList[DBOrganization]()

type DBOrganization struct {
	Id        string    `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

func AdaptOrganization(db DBOrganization) (models.Organization, error) {
	return models.Organization{
		Id:        db.Id,
		Name:      db.Name,
		CreatedAt: db.CreatedAt,
	}, nil
}
