package incident

import "time"

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

// Proposal is a single remediation proposal attached to an incident
type Proposal struct {
	Action      string `json:"action"`
	Description string `json:"description"`
	RiskLevel   string `json:"risk_level"`
	Impact      string `json:"impact"`
}

// Incident statuses. The intended lifecycle is forward-only:
// open -> investigating -> resolved.
const (
	StatusOpen          = "open"
	StatusInvestigating = "investigating"
	StatusResolved      = "resolved"
)

// ValidStatus reports whether s is a known incident status
func ValidStatus(s string) bool {
	switch s {
	case StatusOpen, StatusInvestigating, StatusResolved:
		return true
	}
	return false
}

// Filter contains incident listing options
type Filter struct {
	Status string
}
