package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/autonex/aiops/internal/ai"
	"github.com/autonex/aiops/internal/domain/action"
	"github.com/autonex/aiops/internal/domain/anomaly"
	"github.com/autonex/aiops/internal/domain/incident"
	"github.com/autonex/aiops/internal/domain/metric"
	"github.com/autonex/aiops/internal/pkg/errors"
	"github.com/autonex/aiops/internal/pkg/logger"
	"github.com/autonex/aiops/internal/pkg/metrics"
)

// contextSampleCount is how many recent samples feed the analysis prompt
const contextSampleCount = 10

// AnalysisService drives the narrative generator: root-cause analysis and
// remediation recommendations for an incident
type AnalysisService struct {
	incidentRepo incident.Repository
	anomalyRepo  anomaly.Repository
	metricRepo   metric.Repository
	actionRepo   action.Repository
	client       ai.Client
	logger       *logger.Logger
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(
	incidentRepo incident.Repository,
	anomalyRepo anomaly.Repository,
	metricRepo metric.Repository,
	actionRepo action.Repository,
	client ai.Client,
	log *logger.Logger,
) *AnalysisService {
	return &AnalysisService{
		incidentRepo: incidentRepo,
		anomalyRepo:  anomalyRepo,
		metricRepo:   metricRepo,
		actionRepo:   actionRepo,
		client:       client,
		logger:       log,
	}
}

// Analyze asks the narrative generator for a root-cause analysis of an
// incident and stores the result as the incident's ai_explanation
func (s *AnalysisService) Analyze(ctx context.Context, incidentID string) (string, error) {
	inc, err := s.incidentRepo.GetByID(ctx, incidentID)
	if err != nil {
		return "", err
	}

	prompt, err := s.buildAnalysisPrompt(ctx, inc)
	if err != nil {
		return "", err
	}

	response, err := s.client.Complete(ctx, "incident-"+incidentID, prompt)
	if err != nil {
		metrics.RecordAIRequest("analyze", "error")
		s.logger.ErrorWithErr(err, "Incident analysis failed")
		return "", errors.AIProviderError(err)
	}
	metrics.RecordAIRequest("analyze", "ok")

	if err := s.incidentRepo.SetAnalysis(ctx, incidentID, response); err != nil {
		return "", err
	}

	s.logger.WithFields(map[string]interface{}{
		"incident_id": incidentID,
	}).Info("Incident analysis stored")

	return response, nil
}

// Recommend asks the narrative generator for remediation proposals, attaches
// them to the incident, and materializes each one as a pending action. An
// unparsable response falls back to a fixed proposal list so the workflow
// never stalls.
func (s *AnalysisService) Recommend(ctx context.Context, incidentID string) ([]incident.Proposal, error) {
	inc, err := s.incidentRepo.GetByID(ctx, incidentID)
	if err != nil {
		return nil, err
	}

	response, err := s.client.Complete(ctx, "recommend-"+incidentID, s.buildRecommendPrompt(inc))
	if err != nil {
		metrics.RecordAIRequest("recommend", "error")
		s.logger.ErrorWithErr(err, "Recommendation generation failed")
		return nil, errors.AIProviderError(err)
	}
	metrics.RecordAIRequest("recommend", "ok")

	proposals, err := ai.ParseProposals(response)
	if err != nil {
		s.logger.WithFields(map[string]interface{}{
			"incident_id": incidentID,
		}).Warn("Unparsable recommendation response, using fallback proposals")
		proposals = ai.FallbackProposals()
	}

	if err := s.incidentRepo.SetRecommendations(ctx, incidentID, proposals); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	for i, p := range proposals {
		a := &action.Action{
			ID:          uuid.New().String(),
			IncidentID:  incidentID,
			Action:      p.Action,
			Description: p.Description,
			RiskLevel:   p.RiskLevel,
			Impact:      p.Impact,
			Ordinal:     i,
			Status:      action.StatusPending,
			CreatedAt:   now,
		}
		if err := s.actionRepo.Create(ctx, a); err != nil {
			return nil, err
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"incident_id": incidentID,
		"proposals":   len(proposals),
	}).Info("Recommendations generated")

	return proposals, nil
}

// buildAnalysisPrompt assembles the textual context for root-cause analysis:
// incident fields, attached anomalies, and recent metric samples
func (s *AnalysisService) buildAnalysisPrompt(ctx context.Context, inc *incident.Incident) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "Incident Analysis Request:\n\n")
	fmt.Fprintf(&b, "Incident Title: %s\n", inc.Title)
	fmt.Fprintf(&b, "Service: %s\n", inc.Service)
	fmt.Fprintf(&b, "Severity: %s\n", inc.Severity)
	fmt.Fprintf(&b, "Status: %s\n", inc.Status)
	fmt.Fprintf(&b, "\nDetected Anomalies:\n")

	if len(inc.AnomalyIDs) > 0 {
		anomalies, err := s.anomalyRepo.GetByIDs(ctx, inc.AnomalyIDs)
		if err != nil {
			return "", err
		}
		for _, a := range anomalies {
			fmt.Fprintf(&b, "\n- %s: %s (confidence: %.2f)", a.MetricType, a.Description, a.Confidence)
			fmt.Fprintf(&b, "\n  Value: %.2f, Baseline: %.2f", a.Value, a.Baseline)
		}
	}

	recent, err := s.metricRepo.ListRecentForService(ctx, inc.Service, contextSampleCount)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(&b, "\n\nRecent Metrics (last %d samples):\n", contextSampleCount)
	for i, m := range recent {
		if i >= 3 {
			break
		}
		fmt.Fprintf(&b, "\nSample %d: CPU=%.1f%%, Memory=%.1f%%, Latency=%.1fms, Error Rate=%.1f%%", i+1, m.CPU, m.Memory, m.Latency, m.ErrorRate)
	}

	fmt.Fprintf(&b, "\n\nPlease provide:\n1. Root cause analysis\n2. Impact assessment\n3. Recommended actions")

	return b.String(), nil
}

// buildRecommendPrompt assembles the textual context for remediation
// proposals
func (s *AnalysisService) buildRecommendPrompt(inc *incident.Incident) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Incident: %s\n", inc.Title)
	fmt.Fprintf(&b, "Service: %s\n", inc.Service)
	fmt.Fprintf(&b, "Severity: %s\n", inc.Severity)
	if inc.AIExplanation != "" {
		fmt.Fprintf(&b, "\nAnalysis: %s\n", inc.AIExplanation)
	}

	b.WriteString("\nGenerate 3 specific remediation actions. For each action provide:\n")
	b.WriteString("- Action name (brief)\n- Description (1-2 sentences)\n")
	b.WriteString("- Risk level (low/medium/high)\n- Expected impact\n")
	b.WriteString("\nFormat as JSON array with keys: action, description, risk_level, impact")

	return b.String()
}
