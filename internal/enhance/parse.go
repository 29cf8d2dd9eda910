package enhance

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/leadai/readiness/internal/domain"
	"github.com/leadai/readiness/internal/engine"
)

// modelResponse is the JSON shape requested from the model.
type modelResponse struct {
	OverallScore          int      `json:"overall_score"`
	Summary               string   `json:"summary"`
	ActionPlan            []string `json:"action_plan"`
	Opportunities         []string `json:"opportunities"`
	Risks                 []string `json:"risks"`
	CompetitiveAdvantages []string `json:"competitive_advantages"`
}

// decodeResponse unmarshals the model output, tolerating a fenced code block
// around the JSON object.
func decodeResponse(content string) (*modelResponse, error) {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(strings.TrimSpace(content), "```")
		content = strings.TrimSpace(content)
	}

	var parsed modelResponse
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &parsed, nil
}

// merge layers a validated model response over the heuristic result. Missing
// or out-of-range fields fall back silently: the overall score to the
// heuristic's, every list to canned copy. Category scores are re-anchored to
// the model's overall score by shifting each heuristic category score by the
// overall delta, preserving the clamp and priority invariants.
func merge(heuristic *domain.AuditResult, parsed *modelResponse, categories []domain.Category) *domain.AuditResult {
	overall := parsed.OverallScore
	if overall < 1 || overall > 100 {
		overall = heuristic.OverallScore
	}

	summary := strings.TrimSpace(parsed.Summary)
	if summary == "" {
		summary = fallbackSummary(overall)
	}

	delta := overall - heuristic.OverallScore

	results := make(map[domain.Category]domain.CategoryResult, len(categories))
	for _, cat := range categories {
		base, ok := heuristic.Categories[cat]
		if !ok {
			continue
		}

		score := clampScore(base.Score + delta)
		narrative, recs, opps, risks := engine.Narrative(cat, score)
		results[cat] = domain.CategoryResult{
			Score:           score,
			Narrative:       narrative,
			Recommendations: recs,
			Priority:        domain.PriorityForScore(score),
			Opportunities:   opps,
			Risks:           risks,
		}
	}

	return &domain.AuditResult{
		OverallScore:          overall,
		Categories:            results,
		Summary:               summary,
		ActionPlan:            orFallback(parsed.ActionPlan, fallbackActionPlan),
		Opportunities:         orFallback(parsed.Opportunities, fallbackOpportunities),
		Risks:                 orFallback(parsed.Risks, fallbackRisks),
		CompetitiveAdvantages: orFallback(parsed.CompetitiveAdvantages, fallbackAdvantages),
		Roadmap:               engine.BuildRoadmap(overall),
	}
}

func clampScore(v int) int {
	if v < 15 {
		return 15
	}
	if v > 95 {
		return 95
	}
	return v
}

func orFallback(items, fallback []string) []string {
	cleaned := make([]string, 0, len(items))
	for _, it := range items {
		if s := strings.TrimSpace(it); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	if len(cleaned) == 0 {
		return fallback
	}
	return cleaned
}

func fallbackSummary(overall int) string {
	readiness := "limited"
	switch {
	case overall > 70:
		readiness = "strong"
	case overall > 50:
		readiness = "moderate"
	}
	return fmt.Sprintf(
		"This business demonstrates %s AI readiness with significant opportunities for digital transformation.",
		readiness,
	)
}

// Canned copy used when the model skips a section.
var (
	fallbackActionPlan = []string{
		"Establish AI governance and strategy framework",
		"Assess and upgrade technology infrastructure",
		"Implement data management and quality systems",
		"Deploy pilot AI projects in high-impact areas",
		"Develop AI skills and change management programs",
	}
	fallbackOpportunities = []string{
		"Process automation and workflow optimization",
		"Predictive analytics for business insights",
		"Enhanced customer experience through AI",
		"Competitive advantage via intelligent systems",
		"Operational efficiency and cost reduction",
	}
	fallbackRisks = []string{
		"Data privacy and security challenges",
		"Skills gap and change management issues",
		"Technology integration complexity",
		"Regulatory compliance requirements",
	}
	fallbackAdvantages = []string{
		"First-mover advantage in AI adoption",
		"Enhanced decision-making capabilities",
		"Improved customer insights and engagement",
		"Scalable and intelligent operations",
	}
)
