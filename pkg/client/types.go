package client

import "time"

// SystemMetric is one telemetry sample for a service
type SystemMetric struct {
	Timestamp      time.Time `json:"timestamp"`
	Service        string    `json:"service"`
	CPU            float64   `json:"cpu"`
	Memory         float64   `json:"memory"`
	Latency        float64   `json:"latency"`
	ErrorRate      float64   `json:"error_rate"`
	RequestsPerSec float64   `json:"requests_per_sec"`
}

// Anomaly is a detection event
type Anomaly struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Service     string    `json:"service"`
	MetricType  string    `json:"metric_type"`
	Severity    string    `json:"severity"`
	Confidence  float64   `json:"confidence"`
	Description string    `json:"description"`
	Value       float64   `json:"value"`
	Baseline    float64   `json:"baseline"`
}

// Proposal is a remediation proposal attached to an incident
type Proposal struct {
	Action      string `json:"action"`
	Description string `json:"description"`
	RiskLevel   string `json:"risk_level"`
	Impact      string `json:"impact"`
}

// Incident is a tracked case opened over one or more anomalies
type Incident struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Status          string     `json:"status"`
	Severity        string     `json:"severity"`
	Service         string     `json:"service"`
	RootCause       string     `json:"root_cause,omitempty"`
	AIExplanation   string     `json:"ai_explanation,omitempty"`
	Recommendations []Proposal `json:"recommendations,omitempty"`
	AnomalyIDs      []string   `json:"anomaly_ids"`
	CreatedAt       time.Time  `json:"created_at"`
	ResolvedAt      *time.Time `json:"resolved_at,omitempty"`
}

// Action is a remediation action awaiting a decision
type Action struct {
	ID          string     `json:"id"`
	IncidentID  string     `json:"incident_id"`
	Action      string     `json:"action"`
	Description string     `json:"description"`
	RiskLevel   string     `json:"risk_level"`
	Impact      string     `json:"impact"`
	Status      string     `json:"status"`
	ApprovedBy  string     `json:"approved_by,omitempty"`
	ExecutedAt  *time.Time `json:"executed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Health is the liveness probe response
type Health struct {
	Status       string `json:"status"`
	Mode         string `json:"mode"`
	ModelTrained bool   `json:"model_trained"`
}

// FailureStatus reports the simulator failure scenario state
type FailureStatus struct {
	FailureActive bool   `json:"failure_active"`
	Service       string `json:"service"`
}

// ServiceHealth summarizes one service on the dashboard
type ServiceHealth struct {
	Name    string        `json:"name"`
	Status  string        `json:"status"`
	Metrics *SystemMetric `json:"metrics,omitempty"`
}

// Dashboard is the aggregate dashboard view
type Dashboard struct {
	Services       []ServiceHealth `json:"services"`
	Anomalies24h   int64           `json:"anomalies_24h"`
	OpenIncidents  int64           `json:"open_incidents"`
	TotalIncidents int64           `json:"total_incidents"`
	PendingActions int64           `json:"pending_actions"`
	ModelTrained   bool            `json:"model_trained"`
}

// AnalysisResult is the response of an incident analysis call
type AnalysisResult struct {
	IncidentID string `json:"incident_id"`
	Analysis   string `json:"analysis"`
}

// RecommendResult is the response of an incident recommendation call
type RecommendResult struct {
	IncidentID      string     `json:"incident_id"`
	Recommendations []Proposal `json:"recommendations"`
}

// CreateIncidentRequest is the payload for opening an incident
type CreateIncidentRequest struct {
	Title      string   `json:"title"`
	Severity   string   `json:"severity"`
	Service    string   `json:"service"`
	AnomalyIDs []string `json:"anomaly_ids,omitempty"`
}
