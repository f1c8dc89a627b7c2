package pipeline

import "github.com/retentionai/retention-cli/internal/model"

// RecommendActions applies the retention action rule table. Rules are
// evaluated in order and are not exclusive: a High Risk Critical employee
// collects the urgent actions plus the succession plan.
func RecommendActions(riskLabel, impactCategory string) []string {
	var actions []string

	switch riskLabel {
	case model.RiskHigh:
		if impactCategory == model.ImpactCritical {
			actions = append(actions,
				"IMMEDIATE: Schedule 1-on-1 retention interview with VP/Director.",
				"Prepare counter-offer or role expansion proposal.",
			)
		} else {
			actions = append(actions, "Schedule check-in meeting to discuss career path.")
		}
	case model.RiskMedium:
		actions = append(actions,
			"Review recent workload and feedback.",
			"Ensure regular recognition of contributions.",
		)
	}

	if impactCategory == model.ImpactCritical {
		actions = append(actions, "Draft succession plan immediately.")
	}

	if len(actions) == 0 {
		actions = append(actions, "Monitor during regular review cycles.")
	}

	return actions
}
