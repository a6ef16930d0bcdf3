package ai

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/autonex/aiops/internal/domain/incident"
)

// ErrNoProposalList is returned when a completion contains no parsable
// bracketed list
var ErrNoProposalList = errors.New("no proposal list found in response")

// ParseProposals extracts a remediation proposal list from a free-text
// completion. The model is asked for a JSON array but frequently wraps it in
// prose, so the parse is permissive: the span between the first '[' and the
// last ']' is decoded. Callers fall back to FallbackProposals on error.
func ParseProposals(text string) ([]incident.Proposal, error) {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end <= start {
		return nil, ErrNoProposalList
	}

	var proposals []incident.Proposal
	if err := json.Unmarshal([]byte(text[start:end+1]), &proposals); err != nil {
		return nil, ErrNoProposalList
	}
	if len(proposals) == 0 {
		return nil, ErrNoProposalList
	}
	return proposals, nil
}

// FallbackProposals is the fixed proposal list used when the narrative
// generator returns something unparsable, so recommendation generation never
// stalls
func FallbackProposals() []incident.Proposal {
	return []incident.Proposal{
		{
			Action:      "Scale Resources",
			Description: "Increase CPU and memory allocation for the affected service",
			RiskLevel:   "low",
			Impact:      "Improved performance and reduced error rates",
		},
		{
			Action:      "Restart Service",
			Description: "Perform a rolling restart of the service instances",
			RiskLevel:   "medium",
			Impact:      "Clears memory leaks and resets connections",
		},
		{
			Action:      "Review Recent Changes",
			Description: "Investigate and potentially rollback recent deployments",
			RiskLevel:   "low",
			Impact:      "Identifies root cause if related to recent changes",
		},
	}
}
