package anomaly

import "testing"

func TestSeverityForConfidence(t *testing.T) {
	tests := []struct {
		confidence float64
		want       string
	}{
		{0.95, SeverityCritical},
		{0.81, SeverityCritical},
		{0.8, SeverityHigh},
		{0.7, SeverityHigh},
		{0.61, SeverityHigh},
		{0.6, SeverityMedium},
		{0.5, SeverityMedium},
		{0.0, SeverityMedium},
	}

	for _, tt := range tests {
		if got := SeverityForConfidence(tt.confidence); got != tt.want {
			t.Errorf("SeverityForConfidence(%v) = %q, want %q", tt.confidence, got, tt.want)
		}
	}
}
