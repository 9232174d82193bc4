package graph

import "sort"

// Cycles finds circular dependencies with a depth-first traversal from every
// unvisited node. A node re-encountered while still on the current path is
// reported as the path slice from its first occurrence through the repeat.
//
// This is deliberately the simple path-based DFS, not an SCC algorithm: the
// same cycle can be reported more than once when reachable from several
// roots, and overlapping cycles sharing nodes are not enumerated exactly.
// That approximation is acceptable here; the output feeds reports and
// diagram highlighting, not correctness decisions.
func (g *Graph) Cycles() [][]string {
	var cycles [][]string
	visited := make(map[string]bool)

	var dfs func(node string, path []string)
	dfs = func(node string, path []string) {
		for i, seen := range path {
			if seen == node {
				cycle := append(append([]string{}, path[i:]...), node)
				cycles = append(cycles, cycle)
				return
			}
		}
		if visited[node] {
			return
		}
		visited[node] = true
		path = append(path, node)
		for _, next := range g.Dependencies(node) {
			dfs(next, path)
		}
	}

	roots := make([]string, 0, len(g.forward))
	for node := range g.forward {
		roots = append(roots, node)
	}
	sort.Strings(roots)
	for _, node := range roots {
		if !visited[node] {
			dfs(node, nil)
		}
	}
	return cycles
}

// CycleMembers flattens detected cycles into the set of classes on any cycle.
func CycleMembers(cycles [][]string) map[string]bool {
	members := make(map[string]bool)
	for _, cycle := range cycles {
		for _, node := range cycle {
			members[node] = true
		}
	}
	return members
}
