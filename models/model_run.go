package models

import "time"

// ModelRun pins a forecasting model version an organization simulates
// against. Simulations reference the run, not the model directly, so a model
// republish never silently changes what a cached fingerprint means.
type ModelRun struct {
	Id             string
	OrganizationId string
	ModelId        string
	ModelVersion   int
	Name           string
	CreatedAt      time.Time
}

type CreateModelRunInput struct {
	OrganizationId string
	ModelId        string
	ModelVersion   int
	Name           string
}
