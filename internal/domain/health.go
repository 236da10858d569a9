package domain

// HealthStatus reports whether the service is up and the dataset is in memory.
type HealthStatus struct {
	Status        string `json:"status"`
	DatasetLoaded bool   `json:"dataset_loaded"`
	TotalRows     int    `json:"total_rows"`
	SnapshotID    string `json:"snapshot_id,omitempty"`
}

// Metadata describes the running service and the loaded dataset snapshot.
type Metadata struct {
	Version    string `json:"version"`
	SnapshotID string `json:"snapshot_id,omitempty"`
	LastUpdate string `json:"last_update"`
	TotalRows  int    `json:"total_rows"`
}

// OpsSnapshot is a JSON view of selected service metrics, for the
// GET /api/system/metrics endpoint.
type OpsSnapshot struct {
	TotalRequests int64   `json:"total_requests"`
	ErrorRate     float64 `json:"error_rate"`
	DatasetRows   int64   `json:"dataset_rows"`
	DatasetLoads  int64   `json:"dataset_loads"`
}
