package metric

import "time"

// SystemMetric is an immutable telemetry snapshot for one service
type SystemMetric struct {
	Timestamp      time.Time `json:"timestamp"`
	Service        string    `json:"service"`
	CPU            float64   `json:"cpu"`
	Memory         float64   `json:"memory"`
	Latency        float64   `json:"latency"`
	ErrorRate      float64   `json:"error_rate"`
	RequestsPerSec float64   `json:"requests_per_sec"`
}

// FeatureNames lists the gauge names in feature-vector order. Baseline and
// deviation indexing throughout the detector depends on this exact order.
var FeatureNames = []string{"cpu", "memory", "latency", "error_rate", "requests_per_sec"}

// FeatureCount is the dimensionality of the feature vector
const FeatureCount = 5

// Features returns the metric as an ordered feature vector
func (m *SystemMetric) Features() []float64 {
	return []float64{m.CPU, m.Memory, m.Latency, m.ErrorRate, m.RequestsPerSec}
}
