package action

import "time"

// Action is a remediation proposal owned by an incident, awaiting a human
// decision
type Action struct {
	ID          string `json:"id"`
	IncidentID  string `json:"incident_id"`
	Action      string `json:"action"`
	Description string `json:"description"`
	RiskLevel   string `json:"risk_level"`
	Impact      string `json:"impact"`
	// Ordinal is the position within the recommendation batch that produced
	// this action; members of one batch share a CreatedAt.
	Ordinal    int        `json:"-"`
	Status     string     `json:"status"`
	ApprovedBy string     `json:"approved_by,omitempty"`
	ExecutedAt *time.Time `json:"executed_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Action statuses. approved and rejected are terminal.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Risk levels
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// Filter contains action listing options
type Filter struct {
	IncidentID string
	Status     string
}
