package engine

import (
	"fmt"

	"github.com/leadai/readiness/internal/domain"
)

// BuildRoadmap generates the three-phase implementation roadmap. Expected ROI
// scales with the overall score: higher readiness compounds faster.
func BuildRoadmap(overallScore int) []domain.RoadmapPhase {
	baseROI := 10
	switch {
	case overallScore > 70:
		baseROI = 20
	case overallScore > 50:
		baseROI = 15
	}

	return []domain.RoadmapPhase{
		{
			Name:     "Phase 1: Assessment & Foundation",
			Duration: "1-3 months",
			Actions: []string{
				"Comprehensive current state analysis",
				"Technology infrastructure audit",
				"Skills gap assessment and training plan",
				"Data governance framework establishment",
			},
			ExpectedROI: fmt.Sprintf("%d%%", baseROI),
		},
		{
			Name:     "Phase 2: Implementation & Integration",
			Duration: "3-9 months",
			Actions: []string{
				"Core system deployment and integration",
				"Process automation implementation",
				"Pilot AI projects launch",
				"Staff training and change management",
			},
			ExpectedROI: fmt.Sprintf("%d%%", baseROI+15),
		},
		{
			Name:     "Phase 3: Optimization & Scale",
			Duration: "9-18 months",
			Actions: []string{
				"Performance optimization and tuning",
				"Advanced AI features deployment",
				"Scale successful implementations",
				"Continuous improvement processes",
			},
			ExpectedROI: fmt.Sprintf("%d%%", baseROI+30),
		},
	}
}
