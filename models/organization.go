package models

import "time"

type Organization struct {
	Id        string
	Name      string
	CreatedAt time.Time
}

type CreateOrganizationInput struct {
	Name string
}

type SeedOrgConfiguration struct {
	CreateOrgName string
}
