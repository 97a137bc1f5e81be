package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssistantService_Help(t *testing.T) {
	svc := NewAssistantService()
	ctx := context.Background()

	incorrect, err := svc.Help(ctx, &AIHelpRequest{Question: "2+2?", Answer: strPtr("5"), IsCorrect: boolPtr(false)})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(incorrect, "I see you answered \"5\" for the question: \"2+2?\". \n\nLet me help you understand this better:\n\n"))
	assert.NotContains(t, incorrect, "%!")
	assert.Contains(t, incorrect, "isn't quite correct")

	start, err := svc.Help(ctx, &AIHelpRequest{Question: "2+2?"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(start, "You're working on: \"2+2?\"\n\nHere are some tips"))
	assert.Contains(t, start, "even if you're not 100% sure!\n\nRemember")
	assert.NotContains(t, start, "%!")

	emptyAnswer, err := svc.Help(ctx, &AIHelpRequest{Question: "2+2?", Answer: strPtr(""), IsCorrect: boolPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, start, emptyAnswer)

	praise, err := svc.Help(ctx, &AIHelpRequest{Question: "2+2?", Answer: strPtr("4"), IsCorrect: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(praise, "Great job on answering the question: \"2+2?\"! \n\nKeep up"))
	assert.Contains(t, praise, "continue improving:\n\n1. Try to explain")
	assert.True(t, strings.HasSuffix(praise, "Keep learning and growing! 🌟"))

	unknown, err := svc.Help(ctx, &AIHelpRequest{Question: "2+2?", Answer: strPtr("4")})
	require.NoError(t, err)
	assert.Equal(t, praise, unknown)

	_, err = svc.Help(ctx, &AIHelpRequest{Question: "  "})
	assert.ErrorIs(t, err, ErrValidationFailed)
}
