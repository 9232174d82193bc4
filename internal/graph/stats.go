package graph

import (
	"sort"

	"comprehend/internal/model"
)

// ClassDegree pairs a class with its combined in+out degree.
type ClassDegree struct {
	FQN    string
	Degree int
}

// Statistics is derived on demand from the current declaration set and edge
// set; it is never mutated independently.
type Statistics struct {
	TotalFiles             int
	ParseFailures          int
	TotalClasses           int
	TotalInterfaces        int
	TotalEnums             int
	TotalMethods           int
	TotalFields            int
	PackageCount           int
	AverageMethodsPerClass float64
	TotalEdges             int
	MaxClassDependencies   int
	MostConnected          []ClassDegree
	Cycles                 [][]string
}

// Collect recomputes project statistics from the model and the graph.
func Collect(p *model.Project, g *Graph) *Statistics {
	s := &Statistics{
		TotalFiles:           len(p.Files),
		TotalEdges:           g.EdgeCount(),
		MaxClassDependencies: g.MaxFanOut(),
		Cycles:               g.Cycles(),
	}
	for _, f := range p.Files {
		if f.ParseError != "" {
			s.ParseFailures++
		}
	}

	classes := p.Classes()
	for _, c := range classes {
		switch c.Kind {
		case model.KindInterface:
			s.TotalInterfaces++
		case model.KindEnum:
			s.TotalEnums++
		default:
			s.TotalClasses++
		}
		s.TotalMethods += len(c.Methods)
		s.TotalFields += len(c.Fields)
	}
	s.PackageCount = len(p.Packages())
	if s.TotalClasses > 0 {
		s.AverageMethodsPerClass = float64(s.TotalMethods) / float64(s.TotalClasses)
	}

	degrees := make([]ClassDegree, 0, len(classes))
	for _, c := range classes {
		if d := g.Degree(c.FQN); d > 0 {
			degrees = append(degrees, ClassDegree{FQN: c.FQN, Degree: d})
		}
	}
	sort.SliceStable(degrees, func(i, j int) bool {
		if degrees[i].Degree == degrees[j].Degree {
			return degrees[i].FQN < degrees[j].FQN
		}
		return degrees[i].Degree > degrees[j].Degree
	})
	s.MostConnected = degrees
	return s
}

// TopConnected returns the n most connected classes.
func (s *Statistics) TopConnected(n int) []ClassDegree {
	if n > len(s.MostConnected) {
		n = len(s.MostConnected)
	}
	return s.MostConnected[:n]
}
