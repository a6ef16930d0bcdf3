package anomaly

import "time"

// Anomaly is an immutable detection event produced by the detection pass
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

// Severity levels
const (
	SeverityCritical = "critical"
	SeverityHigh     = "high"
	SeverityMedium   = "medium"
)

// SeverityForConfidence maps a detection confidence to a severity level.
// This is the single source of severity for generated anomalies.
func SeverityForConfidence(confidence float64) string {
	switch {
	case confidence > 0.8:
		return SeverityCritical
	case confidence > 0.6:
		return SeverityHigh
	default:
		return SeverityMedium
	}
}
