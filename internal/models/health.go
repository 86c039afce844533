package models

// HealthStatus reports service liveness and database reachability.
type HealthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Version  string `json:"version"`
}
