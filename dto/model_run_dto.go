package dto

import (
	"time"

	"github.com/getforesight/foresight-backend/models"
)

type APIModelRun struct {
	Id             string    `json:"id"`
	OrganizationId string    `json:"organization_id"`
	ModelId        string    `json:"model_id"`
	ModelVersion   int       `json:"model_version"`
	Name           string    `json:"name"`
	CreatedAt      time.Time `json:"created_at"`
}

func AdaptModelRunDto(run models.ModelRun) APIModelRun {
	return APIModelRun{
		Id:             run.Id,
		OrganizationId: run.OrganizationId,
		ModelId:        run.ModelId,
		ModelVersion:   run.ModelVersion,
		Name:           run.Name,
		CreatedAt:      run.CreatedAt,
	}
}

type CreateModelRunBody struct {
	ModelId      string `json:"model_id" binding:"required,uuid"`
	ModelVersion int    `json:"model_version" binding:"required,min=1"`
	Name         string `json:"name" binding:"required"`
}
