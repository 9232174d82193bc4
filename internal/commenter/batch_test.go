package commenter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkTasks(t *testing.T) {
	tasks := make([]Task, 10)
	batches := chunkTasks(tasks, 7)
	require.Len(t, batches, 2)
	assert.Len(t, batches[0], 7)
	assert.Len(t, batches[1], 3)
}

func TestChunkTasks_SizeFloor(t *testing.T) {
	batches := chunkTasks(make([]Task, 3), 0)
	assert.Len(t, batches, 3)
}

func TestBatchPrompt_NumbersEveryRequest(t *testing.T) {
	batch := []Task{
		{Prompt: "describe Foo"},
		{Prompt: "describe bar"},
	}
	prompt := batchPrompt(batch)
	assert.Contains(t, prompt, "2 numbered requests")
	assert.Contains(t, prompt, "Request 1:\ndescribe Foo")
	assert.Contains(t, prompt, "Request 2:\ndescribe bar")
	assert.Contains(t, prompt, answerSeparator)
}

func TestBatchTokens(t *testing.T) {
	batch := []Task{{MaxTokens: 100}, {MaxTokens: 50}}
	assert.Equal(t, 170, batchTokens(batch))
}

func TestSplitAnswers(t *testing.T) {
	response := strings.Join([]string{
		"First answer.",
		"-----",
		"Second answer",
		"spanning two lines.",
		"-----",
		"Third.",
	}, "\n")

	answers := splitAnswers(response)
	require.Len(t, answers, 3)
	assert.Equal(t, "First answer.", answers[0])
	assert.Equal(t, "Second answer\nspanning two lines.", answers[1])
	assert.Equal(t, "Third.", answers[2])
}

func TestSplitAnswers_SentinelWithWhitespace(t *testing.T) {
	answers := splitAnswers("a\n  -----  \nb")
	require.Len(t, answers, 2)
	assert.Equal(t, "a", answers[0])
	assert.Equal(t, "b", answers[1])
}

func TestSplitAnswers_ShortResponse(t *testing.T) {
	answers := splitAnswers("only one")
	assert.Len(t, answers, 1)
}

func TestFormatComment(t *testing.T) {
	t.Run("field gets line marker", func(t *testing.T) {
		assert.Equal(t, "// holds the retry budget", formatComment("field", "holds the retry budget"))
		assert.Equal(t, "// already marked", formatComment("field", "// already marked"))
	})

	t.Run("plain text becomes Javadoc", func(t *testing.T) {
		got := formatComment("method", "Does a thing.\nCarefully.")
		assert.Equal(t, "/**\n * Does a thing.\n * Carefully.\n */", got)
	})

	t.Run("existing block kept", func(t *testing.T) {
		assert.Equal(t, "/** Ready. */", formatComment("class", "/** Ready. */"))
	})
}
