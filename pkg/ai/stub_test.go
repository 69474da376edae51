package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubServiceIsDeterministic(t *testing.T) {
	stub := NewStubService()

	first, err := stub.EvaluateRule(context.Background(), "Polite tone", "desc", "hello there")
	require.NoError(t, err)
	second, err := stub.EvaluateRule(context.Background(), "Polite tone", "desc", "hello there")
	require.NoError(t, err)

	require.NotNil(t, first.Score)
	require.NotNil(t, second.Score)
	assert.Equal(t, *first.Score, *second.Score)
	assert.Equal(t, *first.Passed, *second.Passed)
}

func TestStubServicePopulatesAllFields(t *testing.T) {
	stub := NewStubService()

	eval, err := stub.EvaluateRule(context.Background(), "No PII", "desc", "body")
	require.NoError(t, err)

	require.NotNil(t, eval.Passed)
	require.NotNil(t, eval.Score)
	require.NotNil(t, eval.Justification)
	assert.GreaterOrEqual(t, *eval.Score, 0)
	assert.LessOrEqual(t, *eval.Score, 100)
	assert.Equal(t, *eval.Score >= 50, *eval.Passed)
}
