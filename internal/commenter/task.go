// Package commenter plans, generates and splices documentation comments into
// Java source files. Per file the flow is: plan tasks over the declaration
// forest, fan batched completion requests out concurrently, reconcile the
// answers positionally, then patch them into a copy of the original lines in
// descending line order.
package commenter

import "strings"

// Task is one comment to generate for one declaration. InsertAt is a 0-based
// index into the file's *original* line slice; tasks never cross into
// another file's coordinate space.
type Task struct {
	Kind      string // "file", "class", "method" or "field"
	Key       string // qualified name, for logging only
	Prompt    string
	InsertAt  int
	Indent    string
	Inline    bool
	MaxTokens int
}

// Result pairs a task with its formatted comment text.
type Result struct {
	Task    Task
	Comment string
}

// formatComment normalizes a raw model answer for its element kind: inline
// field answers get a line-comment marker, everything else is wrapped as a
// Javadoc block when the model did not already return one.
func formatComment(kind, text string) string {
	text = strings.TrimSpace(text)
	if kind == "field" {
		if !strings.HasPrefix(text, "//") {
			return "// " + text
		}
		return text
	}
	if strings.HasPrefix(text, "/**") || strings.HasPrefix(text, "/*") {
		return text
	}
	var b strings.Builder
	b.WriteString("/**\n")
	for _, line := range strings.Split(text, "\n") {
		b.WriteString(" * ")
		b.WriteString(strings.TrimSpace(line))
		b.WriteString("\n")
	}
	b.WriteString(" */")
	return b.String()
}
