package models

type AnalyticsEvent string

const (
	AnalyticsOrganizationCreated AnalyticsEvent = "Created an Organization"
	AnalyticsModelRunCreated     AnalyticsEvent = "Created a Model Run"
	AnalyticsSimulationCreated   AnalyticsEvent = "Created a Simulation"
	AnalyticsSimulationCacheHit  AnalyticsEvent = "Reused a Cached Simulation"
)
