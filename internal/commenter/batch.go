package commenter

import (
	"fmt"
	"strings"
)

// answerSeparator is the sentinel the model is told to emit between
// consecutive answers of one batch.
const answerSeparator = "-----"

// chunkTasks groups tasks into fixed-size batches, preserving order.
func chunkTasks(tasks []Task, size int) [][]Task {
	if size < 1 {
		size = 1
	}
	var batches [][]Task
	for start := 0; start < len(tasks); start += size {
		end := start + size
		if end > len(tasks) {
			end = len(tasks)
		}
		batches = append(batches, tasks[start:end])
	}
	return batches
}

// batchPrompt builds one completion request covering every task in the
// batch. The model must answer positionally, separated by the sentinel.
func batchPrompt(batch []Task) string {
	var b strings.Builder
	fmt.Fprintf(&b, `You are writing Java documentation comments. Below are %d numbered requests.
Answer every request in the order given. Between consecutive answers output a
line containing exactly:
%s
Do not number your answers and do not add any other text.

`, len(batch), answerSeparator)

	for i, task := range batch {
		fmt.Fprintf(&b, "Request %d:\n%s\n\n", i+1, task.Prompt)
	}
	return b.String()
}

// batchTokens is the completion budget for a whole batch.
func batchTokens(batch []Task) int {
	total := 0
	for _, task := range batch {
		total += task.MaxTokens
	}
	// Separator lines and wrapper text eat into the budget too.
	return total + 10*len(batch)
}

// splitAnswers splits a batch response on sentinel lines. Answers are
// matched to tasks positionally by the caller; a short result means the
// trailing tasks are dropped.
func splitAnswers(response string) []string {
	var answers []string
	var current []string
	flush := func() {
		answers = append(answers, strings.TrimSpace(strings.Join(current, "\n")))
		current = current[:0]
	}
	for _, line := range strings.Split(response, "\n") {
		if strings.TrimSpace(line) == answerSeparator {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return answers
}
