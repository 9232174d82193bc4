package commenter

import (
	"sort"
	"strings"
)

// Patch splices every surviving comment into a copy of the original lines
// and returns the joined text. Tasks apply in descending original-line
// order, inline before block on ties, so an insertion never invalidates the
// stored coordinates of the insertions still pending: everything left to do
// sits at or above the current index.
//
// The output is a pure function of the (task, comment) set; the order in
// which batches completed does not matter.
func Patch(lines []string, results []Result) string {
	ordered := append([]Result(nil), results...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Task.InsertAt != ordered[j].Task.InsertAt {
			return ordered[i].Task.InsertAt > ordered[j].Task.InsertAt
		}
		return ordered[i].Task.Inline && !ordered[j].Task.Inline
	})

	out := append([]string(nil), lines...)
	for _, r := range ordered {
		if r.Task.Inline {
			if r.Task.InsertAt >= 0 && r.Task.InsertAt < len(out) {
				out[r.Task.InsertAt] = strings.TrimRight(out[r.Task.InsertAt], " \t") + "  " + r.Comment
			}
			continue
		}

		block := indentBlock(r.Comment, r.Task.Indent)
		at := r.Task.InsertAt
		if at < 0 {
			at = 0
		}
		if at > len(out) {
			at = len(out)
		}
		out = append(out[:at:at], append(block, out[at:]...)...)
	}
	return strings.Join(out, "\n")
}

func indentBlock(comment, indent string) []string {
	raw := strings.Split(comment, "\n")
	block := make([]string, 0, len(raw))
	for _, line := range raw {
		if strings.TrimSpace(line) == "" {
			block = append(block, line)
			continue
		}
		block = append(block, indent+line)
	}
	return block
}
