package diagram

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"comprehend/internal/graph"
	"comprehend/internal/model"
)

func TestStatisticsReport(t *testing.T) {
	p, g := demoProject()
	stats := graph.Collect(p, g)

	report := StatisticsReport(p, stats)

	assert.Contains(t, report, "# Code Statistics Report")
	assert.Contains(t, report, "**Files analyzed:** 3")
	assert.Contains(t, report, "**Classes:** 2")
	assert.Contains(t, report, "**Interfaces:** 1")
	assert.Contains(t, report, "| app.core | 2 |")
	assert.Contains(t, report, "| app.web | 1 |")
	assert.Contains(t, report, "## Most Connected Classes")
	assert.NotContains(t, report, "Circular Dependencies", "no cycles in the demo project")
	assert.NotContains(t, report, "parse errors")
}

func TestStatisticsReport_Cycles(t *testing.T) {
	p := model.NewProject("")
	addClass(p, "app", "A", model.KindClass, "B")
	addClass(p, "app", "B", model.KindClass, "A")

	g := graph.NewBuilder(nil).Build(p)
	stats := graph.Collect(p, g)

	report := StatisticsReport(p, stats)
	assert.Contains(t, report, "## Circular Dependencies")
	assert.Contains(t, report, "app.A -> app.B -> app.A")
}

func TestStatisticsReport_DefaultPackageLabel(t *testing.T) {
	p := model.NewProject("")
	addClass(p, "", "Main", model.KindClass)

	stats := graph.Collect(p, graph.New())
	report := StatisticsReport(p, stats)
	assert.Contains(t, report, "| (default) | 1 |")
}
