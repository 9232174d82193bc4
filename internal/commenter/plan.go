package commenter

import (
	"strings"

	"comprehend/internal/model"
)

// Options controls which comments are planned and how requests are batched.
type Options struct {
	Javadoc   bool // class and method Javadoc blocks
	Inline    bool // inline field comments
	BatchSize int
}

// fileCommentScanLines bounds the top-of-file scan for an existing comment.
const fileCommentScanLines = 10

// obviousFieldNames lists fields whose purpose needs no comment.
var obviousFieldNames = map[string]bool{
	"id": true, "name": true, "value": true, "count": true, "size": true,
	"length": true, "index": true, "flag": true, "status": true, "result": true,
}

// Plan enumerates every comment task for a file: one for the file itself
// when no top comment block exists, one per undocumented class, one per
// undocumented non-constructor method, and one inline task per undocumented
// field that is neither a constant nor an obviously named member. All line
// coordinates refer to the original source.
func Plan(f *model.File, lines []string, opts Options) []Task {
	if f.ParseError != "" {
		return nil
	}
	var tasks []Task

	if !hasFileComment(lines) {
		tasks = append(tasks, Task{
			Kind:      "file",
			Key:       f.Path,
			Prompt:    filePrompt(f),
			InsertAt:  fileCommentLine(lines),
			MaxTokens: 150,
		})
	}

	if !opts.Javadoc && !opts.Inline {
		return tasks
	}

	for _, cid := range f.Classes() {
		cls := f.Decl(cid)
		fqn := f.FullName(cid)

		if opts.Javadoc && !cls.HasDoc {
			tasks = append(tasks, Task{
				Kind:      "class",
				Key:       fqn,
				Prompt:    classPrompt(f, cls),
				InsertAt:  cls.Line - 1,
				Indent:    lineIndent(lines, cls.Line-1),
				MaxTokens: 200,
			})
		}

		if opts.Javadoc {
			for _, mid := range f.Members(cid, model.KindMethod) {
				m := f.Decl(mid)
				if m.HasDoc {
					continue
				}
				tasks = append(tasks, Task{
					Kind:      "method",
					Key:       fqn + "." + m.Name + "()",
					Prompt:    methodPrompt(cls, m),
					InsertAt:  m.Line - 1,
					Indent:    lineIndent(lines, m.Line-1),
					MaxTokens: 180,
				})
			}
		}

		if opts.Inline {
			for _, fid := range f.Members(cid, model.KindField) {
				fd := f.Decl(fid)
				if fd.HasDoc || fd.Field == nil {
					continue
				}
				if fd.Field.Static && fd.Field.Final {
					continue // constants speak for themselves
				}
				if obviousFieldNames[strings.ToLower(fd.Name)] {
					continue
				}
				tasks = append(tasks, Task{
					Kind:      "field",
					Key:       fqn + "." + fd.Name,
					Prompt:    fieldPrompt(cls, fd),
					InsertAt:  fd.Line - 1,
					Inline:    true,
					MaxTokens: 50,
				})
			}
		}
	}
	return tasks
}

// hasFileComment reports whether a block comment opens within the first few
// lines, before any non-comment code.
func hasFileComment(lines []string) bool {
	limit := len(lines)
	if limit > fileCommentScanLines {
		limit = fileCommentScanLines
	}
	for _, line := range lines[:limit] {
		stripped := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(stripped, "/**"), strings.HasPrefix(stripped, "/*"):
			return true
		case stripped == "", strings.HasPrefix(stripped, "//"):
			continue
		case strings.HasPrefix(stripped, "package "), strings.HasPrefix(stripped, "import "):
			continue
		default:
			return false
		}
	}
	return false
}

// fileCommentLine finds where the file comment belongs: right after the
// package line, or before the first real code line when there is none.
func fileCommentLine(lines []string) int {
	for i, line := range lines {
		stripped := strings.TrimSpace(line)
		if strings.HasPrefix(stripped, "package ") {
			return i + 1
		}
		if stripped != "" && !strings.HasPrefix(stripped, "//") {
			return i
		}
	}
	return 0
}

func lineIndent(lines []string, idx int) string {
	if idx < 0 || idx >= len(lines) {
		return ""
	}
	line := lines[idx]
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}
