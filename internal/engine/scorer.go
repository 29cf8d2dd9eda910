package engine

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"

	"github.com/leadai/readiness/internal/domain"
)

// Lexical cues used to estimate sector from the email domain.
var (
	techKeywords        = []string{"tech", "software", "digital", "ai", "data", "cloud", "app"}
	traditionalKeywords = []string{"bank", "insurance", "law", "medical", "healthcare"}
	ecommerceKeywords   = []string{"shop", "store", "retail", "commerce", "market"}
)

// categoryJitter holds the per-category score spread around the overall score:
// a draw from [-half, span-half).
var categoryJitter = map[domain.Category]struct{ span, half int }{
	domain.CategoryWebsite:       {20, 10},
	domain.CategorySocialMedia:   {15, 7},
	domain.CategoryOperations:    {25, 12},
	domain.CategoryCompetitors:   {18, 9},
	domain.CategoryDataReadiness: {22, 11},
	domain.CategoryCompliance:    {16, 8},
	domain.CategoryAIOpportunity: {20, 10},
}

// Analyzer produces heuristic readiness scores from lexical domain cues.
// Jitter is drawn from a PRNG seeded from the domain name, so identical
// requests score identically while distinct domains still vary.
type Analyzer struct {
	seed func(dom string) int64
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{seed: domainSeed}
}

// NewAnalyzerWithSeed pins the jitter source to a fixed seed regardless of
// domain. Intended for tests.
func NewAnalyzerWithSeed(seed int64) *Analyzer {
	return &Analyzer{seed: func(string) int64 { return seed }}
}

func domainSeed(dom string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(strings.ToLower(dom)))
	return int64(h.Sum64()) //nolint:gosec // hash bits reinterpreted as seed
}

// Analyze scores the domain across the requested categories and assembles
// the full heuristic result: scores, narratives, canned strategic lists,
// and the implementation roadmap.
func (a *Analyzer) Analyze(dom string, categories []domain.Category) *domain.AuditResult {
	rng := rand.New(rand.NewSource(a.seed(dom))) //nolint:gosec // scores are simulated, not security-sensitive

	overall := a.overallScore(dom, len(categories), rng)

	results := make(map[domain.Category]domain.CategoryResult, len(categories))
	for _, cat := range categories {
		score := categoryScore(cat, overall, rng)
		narrative, recs, opps, risks := Narrative(cat, score)
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
		OverallScore: overall,
		Categories:   results,
		Summary: fmt.Sprintf(
			"Digital transformation assessment for %s shows %d/100 overall readiness. "+
				"The analysis covers %d key areas with actionable recommendations for AI adoption and business optimization.",
			dom, overall, len(categories),
		),
		ActionPlan: []string{
			"Develop comprehensive digital transformation strategy",
			"Assess current technology infrastructure and gaps",
			"Implement data governance and quality frameworks",
			"Launch pilot AI projects in high-impact areas",
			"Build AI capabilities and change management programs",
			"Establish metrics and monitoring systems",
		},
		Opportunities: []string{
			"Process automation and operational efficiency",
			"Data-driven decision making and analytics",
			"Enhanced customer experience and engagement",
			"Competitive differentiation through technology",
			"Scalable business model innovation",
		},
		Risks: []string{
			"Technology adoption and integration challenges",
			"Data security and privacy compliance",
			"Skills gap and organizational change resistance",
			"Resource allocation and investment requirements",
		},
		CompetitiveAdvantages: []string{
			"Early adoption advantage in digital transformation",
			"Enhanced operational efficiency and agility",
			"Superior customer insights and personalization",
			"Intelligent automation and decision support",
		},
		Roadmap: BuildRoadmap(overall),
	}
}

// overallScore derives the base readiness score from sector cues, maturity,
// request complexity, and bounded jitter. Clamped to [20,95].
func (a *Analyzer) overallScore(dom string, categoryCount int, rng *rand.Rand) int {
	lower := strings.ToLower(dom)
	score := 50

	if containsAny(lower, techKeywords) {
		score += 20
	}
	if containsAny(lower, ecommerceKeywords) {
		score += 10
	}
	if containsAny(lower, traditionalKeywords) {
		score -= 5
	}

	// Maturity cue: corporate suffixes read as established, long or
	// startup-flavored names as young.
	switch {
	case strings.Contains(lower, "corp") || strings.Contains(lower, "inc") || strings.Contains(lower, "ltd"):
		score += 10
	case strings.Contains(lower, "startup") || strings.Contains(lower, "new") || len(lower) > 20:
		score += 5
	}

	// Request complexity from category count.
	switch {
	case categoryCount <= 2:
		score += 5
	case categoryCount > 4:
		score -= 5
	}

	score += rng.Intn(20) - 10

	return clamp(score, 20, 95)
}

// categoryScore offsets the overall score by the category's jitter range.
// Clamped to [15,95].
func categoryScore(cat domain.Category, overall int, rng *rand.Rand) int {
	j, ok := categoryJitter[cat]
	if !ok {
		return clamp(overall, 15, 95)
	}
	return clamp(overall+rng.Intn(j.span)-j.half, 15, 95)
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
