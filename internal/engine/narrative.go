package engine

import (
	"fmt"
	"strings"

	"github.com/leadai/readiness/internal/domain"
)

type band string

const (
	bandHigh   band = "high"
	bandMedium band = "medium"
	bandLow    band = "low"
)

func bandForScore(score int) band {
	switch {
	case score >= 70:
		return bandHigh
	case score >= 50:
		return bandMedium
	}
	return bandLow
}

// categoryInsights holds the per-band narrative sentence for categories that
// have specific copy. Any other category falls back to a generic sentence.
var categoryInsights = map[domain.Category]map[band]string{
	domain.CategoryWebsite: {
		bandHigh:   "Strong web presence with good SEO foundation and user experience.",
		bandMedium: "Decent web presence with opportunities for SEO and performance improvements.",
		bandLow:    "Significant improvements needed in web presence, SEO, and user experience.",
	},
	domain.CategorySocialMedia: {
		bandHigh:   "Active social media presence with good engagement and content strategy.",
		bandMedium: "Moderate social media activity with room for better engagement.",
		bandLow:    "Limited social media presence requiring strategic development.",
	},
	domain.CategoryOperations: {
		bandHigh:   "Well-structured operations with good digital integration.",
		bandMedium: "Standard operations with opportunities for digital enhancement.",
		bandLow:    "Traditional operations requiring significant digital transformation.",
	},
}

var categoryRecommendations = map[domain.Category][]string{
	domain.CategoryWebsite: {
		"Optimize website performance and loading speed",
		"Implement comprehensive SEO strategy",
		"Enhance mobile responsiveness and user experience",
	},
	domain.CategorySocialMedia: {
		"Develop consistent social media content strategy",
		"Implement social media automation tools",
		"Enhance audience engagement and community building",
	},
	domain.CategoryOperations: {
		"Digitize core business processes",
		"Implement workflow automation systems",
		"Establish data-driven decision making processes",
	},
	domain.CategoryCompetitors: {
		"Conduct comprehensive competitive analysis",
		"Implement competitive intelligence systems",
		"Develop unique value propositions",
	},
	domain.CategoryDataReadiness: {
		"Establish data governance framework",
		"Implement data quality management systems",
		"Create unified data integration platform",
	},
	domain.CategoryCompliance: {
		"Conduct compliance audit and gap analysis",
		"Implement privacy and security frameworks",
		"Establish regulatory monitoring systems",
	},
	domain.CategoryAIOpportunity: {
		"Identify high-impact AI use cases",
		"Develop AI implementation roadmap",
		"Build AI capabilities and expertise",
	},
}

var categoryOpportunities = map[domain.Category][]string{
	domain.CategoryWebsite:       {"SEO optimization", "Conversion rate improvement"},
	domain.CategorySocialMedia:   {"Brand awareness growth", "Customer engagement"},
	domain.CategoryOperations:    {"Process automation", "Efficiency gains"},
	domain.CategoryCompetitors:   {"Market differentiation", "Competitive advantage"},
	domain.CategoryDataReadiness: {"Data-driven insights", "Predictive analytics"},
	domain.CategoryCompliance:    {"Risk mitigation", "Trust building"},
	domain.CategoryAIOpportunity: {"Innovation leadership", "Operational excellence"},
}

var categoryRisks = map[domain.Category][]string{
	domain.CategoryWebsite:       {"Poor user experience", "Low search visibility"},
	domain.CategorySocialMedia:   {"Brand reputation risks", "Engagement decline"},
	domain.CategoryOperations:    {"Inefficiency costs", "Competitive disadvantage"},
	domain.CategoryCompetitors:   {"Market share loss", "Innovation lag"},
	domain.CategoryDataReadiness: {"Data quality issues", "Compliance risks"},
	domain.CategoryCompliance:    {"Regulatory penalties", "Legal exposure"},
	domain.CategoryAIOpportunity: {"Implementation challenges", "Technology risks"},
}

// Narrative returns the canned narrative, recommendations, opportunities,
// and risks for a category at the given score. Pure function of the
// (category, score band) pair.
func Narrative(cat domain.Category, score int) (narrative string, recommendations, opportunities, risks []string) {
	b := bandForScore(score)

	insight, ok := categoryInsights[cat][b]
	if !ok {
		insight = fmt.Sprintf("Current %s shows %s performance level.",
			strings.ReplaceAll(string(cat), "_", " "), b)
	}

	narrative = fmt.Sprintf("%s: Assessment indicates %d/100 readiness. %s", cat.Label(), score, insight)

	recommendations = categoryRecommendations[cat]
	if recommendations == nil {
		recommendations = []string{"Implement best practices", "Enhance capabilities", "Optimize performance"}
	}

	opportunities = categoryOpportunities[cat]
	if opportunities == nil {
		opportunities = []string{"Growth potential", "Improvement opportunities"}
	}

	risks = categoryRisks[cat]
	if risks == nil {
		risks = []string{"Implementation challenges", "Resource requirements"}
	}

	return narrative, recommendations, opportunities, risks
}
