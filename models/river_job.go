package models

// dispatch one queued simulation to the engine fleet
type SimulationDispatchArgs struct {
	QueueEntryId       string `json:"queue_entry_id"`
	SimulationResultId string `json:"simulation_result_id"`
	OrganizationId     string `json:"organization_id"`
}

func (SimulationDispatchArgs) Kind() string { return "simulation_dispatch" }

// periodic job that logs and exports per-org backlog gauges
type BacklogReportArgs struct{}

func (BacklogReportArgs) Kind() string { return "simulation_backlog_report" }
