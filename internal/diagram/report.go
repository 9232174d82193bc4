package diagram

import (
	"fmt"
	"sort"
	"strings"

	"comprehend/internal/graph"
	"comprehend/internal/model"
)

const (
	reportTopConnected = 10
	reportMaxCycles    = 10
)

// StatisticsReport renders a markdown summary of the analyzed codebase.
func StatisticsReport(p *model.Project, stats *graph.Statistics) string {
	var b strings.Builder

	b.WriteString("# Code Statistics Report\n\n")
	b.WriteString("## Overview\n\n")
	fmt.Fprintf(&b, "- **Files analyzed:** %d\n", stats.TotalFiles)
	if stats.ParseFailures > 0 {
		fmt.Fprintf(&b, "- **Files with parse errors:** %d\n", stats.ParseFailures)
	}
	fmt.Fprintf(&b, "- **Classes:** %d\n", stats.TotalClasses)
	fmt.Fprintf(&b, "- **Interfaces:** %d\n", stats.TotalInterfaces)
	fmt.Fprintf(&b, "- **Enums:** %d\n", stats.TotalEnums)
	fmt.Fprintf(&b, "- **Methods:** %d\n", stats.TotalMethods)
	fmt.Fprintf(&b, "- **Fields:** %d\n", stats.TotalFields)
	fmt.Fprintf(&b, "- **Packages:** %d\n", stats.PackageCount)
	fmt.Fprintf(&b, "- **Average methods per class:** %.1f\n", stats.AverageMethodsPerClass)

	b.WriteString("\n## Dependencies\n\n")
	fmt.Fprintf(&b, "- **Dependency edges:** %d\n", stats.TotalEdges)
	fmt.Fprintf(&b, "- **Max dependencies for a single class:** %d\n", stats.MaxClassDependencies)

	writePackageBreakdown(&b, p)
	writeTopConnected(&b, stats)
	writeCycles(&b, stats)

	return b.String()
}

func writePackageBreakdown(b *strings.Builder, p *model.Project) {
	pkgs := p.Packages()
	if len(pkgs) == 0 {
		return
	}
	names := make([]string, 0, len(pkgs))
	for name := range pkgs {
		names = append(names, name)
	}
	sort.Strings(names)

	b.WriteString("\n## Packages\n\n")
	b.WriteString("| Package | Classes |\n")
	b.WriteString("|---------|--------:|\n")
	for _, name := range names {
		label := name
		if label == "" {
			label = "(default)"
		}
		fmt.Fprintf(b, "| %s | %d |\n", label, len(pkgs[name]))
	}
}

func writeTopConnected(b *strings.Builder, stats *graph.Statistics) {
	top := stats.TopConnected(reportTopConnected)
	if len(top) == 0 {
		return
	}
	b.WriteString("\n## Most Connected Classes\n\n")
	b.WriteString("| Class | Connections |\n")
	b.WriteString("|-------|------------:|\n")
	for _, entry := range top {
		fmt.Fprintf(b, "| %s | %d |\n", entry.FQN, entry.Degree)
	}
}

func writeCycles(b *strings.Builder, stats *graph.Statistics) {
	if len(stats.Cycles) == 0 {
		return
	}
	b.WriteString("\n## Circular Dependencies\n\n")
	fmt.Fprintf(b, "Found %d dependency cycle(s):\n\n", len(stats.Cycles))
	shown := stats.Cycles
	if len(shown) > reportMaxCycles {
		shown = shown[:reportMaxCycles]
	}
	for _, cycle := range shown {
		fmt.Fprintf(b, "- %s\n", strings.Join(cycle, " -> "))
	}
	if len(stats.Cycles) > reportMaxCycles {
		fmt.Fprintf(b, "- ... and %d more\n", len(stats.Cycles)-reportMaxCycles)
	}
}
