package ai

import (
	"context"
	"crypto/sha256"
	"fmt"
)

// StubService is a deterministic, no-network RuleEvaluator intended for CI
// and local end-to-end tests. It returns schema-valid results so downstream
// outcome recording and aggregation exercise the full pipeline.
type StubService struct{}

func NewStubService() *StubService { return &StubService{} }

// EvaluateRule derives a stable score from the (rule, content) pair so runs
// are repeatable across processes.
func (s *StubService) EvaluateRule(ctx context.Context, ruleName, ruleDescription, emailContent string) (*RuleEvaluation, error) {
	sum := sha256.Sum256([]byte(ruleName + "\x00" + emailContent))
	score := int(sum[0]) % 101
	passed := score >= 50
	justification := fmt.Sprintf("Stub evaluation of rule %q (score %d)", ruleName, score)

	return &RuleEvaluation{
		Passed:        &passed,
		Score:         &score,
		Justification: &justification,
	}, nil
}
