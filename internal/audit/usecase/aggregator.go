package usecase

import (
	"strings"
	"time"

	reportdomain "email-audit-backend/internal/report/domain"
	rulesdomain "email-audit-backend/internal/rules/domain"
)

// aggregate reduces a run's outcomes onto the report in place.
//
// overall = totalScore / (ruleCount * messageCount), denominator forced to 1
// when either count is zero. No clamping: per-pair scores outside 0-100
// propagate into the total. A rule counts as a strength if it passed for any
// message and as an improvement if it failed for any, so mixed rules appear
// in both lists.
func aggregate(report *reportdomain.AuditReport, rules []*rulesdomain.Rule, outcomes []reportdomain.RuleOutcome, totalScore, messageCount int) {
	denominator := len(rules) * messageCount
	if denominator == 0 {
		denominator = 1
	}
	report.OverallScore = float64(totalScore) / float64(denominator)

	passedByRule := make(map[string]bool)
	failedByRule := make(map[string]bool)
	for _, outcome := range outcomes {
		if outcome.Passed {
			passedByRule[outcome.RuleID] = true
		} else {
			failedByRule[outcome.RuleID] = true
		}
	}

	var passedNames, failedNames []string
	for _, rule := range rules {
		if passedByRule[rule.ID] {
			passedNames = append(passedNames, rule.Name)
		}
		if failedByRule[rule.ID] {
			failedNames = append(failedNames, rule.Name)
		}
	}

	report.Strengths = "Rules passed: " + strings.Join(passedNames, ", ")
	report.Improvements = "Rules failed: " + strings.Join(failedNames, ", ")

	now := time.Now()
	report.CompletedAt = &now
}
