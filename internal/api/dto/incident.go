package dto

// CreateIncidentRequest represents an incident creation request
type CreateIncidentRequest struct {
	Title      string   `json:"title" validate:"required"`
	Severity   string   `json:"severity" validate:"required,oneof=critical high medium low"`
	Service    string   `json:"service" validate:"required"`
	AnomalyIDs []string `json:"anomaly_ids,omitempty"`
}

// UpdateIncidentStatusRequest represents an incident status transition
type UpdateIncidentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=open investigating resolved"`
}
