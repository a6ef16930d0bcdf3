package handlers

import (
	"testing"

	"github.com/autonex/aiops/internal/domain/metric"
)

func TestHealthStatus(t *testing.T) {
	tests := []struct {
		name   string
		metric *metric.SystemMetric
		want   string
	}{
		{"no sample", nil, "unknown"},
		{"healthy", &metric.SystemMetric{CPU: 35, Memory: 45, ErrorRate: 1}, "healthy"},
		{"cpu warning", &metric.SystemMetric{CPU: 65, Memory: 45, ErrorRate: 1}, "warning"},
		{"memory warning", &metric.SystemMetric{CPU: 35, Memory: 70, ErrorRate: 1}, "warning"},
		{"error rate warning", &metric.SystemMetric{CPU: 35, Memory: 45, ErrorRate: 7}, "warning"},
		{"cpu critical", &metric.SystemMetric{CPU: 92, Memory: 45, ErrorRate: 1}, "critical"},
		{"error rate critical", &metric.SystemMetric{CPU: 35, Memory: 45, ErrorRate: 31}, "critical"},
		{"boundary is not critical", &metric.SystemMetric{CPU: 80, Memory: 80, ErrorRate: 10}, "warning"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := healthStatus(tt.metric); got != tt.want {
				t.Errorf("healthStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}
