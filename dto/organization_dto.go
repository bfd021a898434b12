package dto

import (
	"time"

	"github.com/getforesight/foresight-backend/models"
)

type APIOrganization struct {
	Id        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func AdaptOrganizationDto(org models.Organization) APIOrganization {
	return APIOrganization{
		Id:        org.Id,
		Name:      org.Name,
		CreatedAt: org.CreatedAt,
	}
}

type CreateOrganizationBodyDto struct {
	Name string `json:"name" binding:"required"`
}
