/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package pipeline

import (
	"container/heap"

	"chainguard.dev/casecrew/pipeline/artifact"
)

// Plan validates defs and returns them in an order where every stage comes
// after the stages producing its dependencies.
//
// Among stages that are ready at the same time the one declared first wins,
// so a table that is already in dependency order comes back unchanged.
// Violations are reported as ErrInvalidPipeline naming the offending stage or
// the cycle.
func Plan(defs []Definition) ([]Definition, error) {
	g, err := newGraph(defs)
	if err != nil {
		return nil, err
	}

	order := g.topoOrder()
	if len(order) != len(defs) {
		return nil, cycleError(g.findCycle())
	}

	out := make([]Definition, 0, len(order))
	for _, i := range order {
		out = append(out, defs[i])
	}
	return out, nil
}

type graph struct {
	defs     []Definition
	indeg    []int
	outgoing [][]int
}

func newGraph(defs []Definition) (*graph, error) {
	if len(defs) == 0 {
		return nil, invalidf("no stages defined")
	}

	byName := make(map[string]int, len(defs))
	byOutput := make(map[string]int, len(defs))
	for i, d := range defs {
		if err := artifact.ValidateName(d.Name); err != nil {
			return nil, invalidf("stage %d: %v", i, err)
		}
		if j, ok := byName[d.Name]; ok {
			return nil, invalidf("stage %q declared twice (positions %d and %d)", d.Name, j, i)
		}
		byName[d.Name] = i

		if err := artifact.ValidateName(d.Output); err != nil {
			return nil, invalidf("stage %q output: %v", d.Name, err)
		}
		if j, ok := byOutput[d.Output]; ok {
			return nil, invalidf("stages %q and %q both produce %q", defs[j].Name, d.Name, d.Output)
		}
		byOutput[d.Output] = i
	}

	g := &graph{
		defs:     defs,
		indeg:    make([]int, len(defs)),
		outgoing: make([][]int, len(defs)),
	}
	for i, d := range defs {
		seen := make(map[string]bool, len(d.DependsOn))
		for _, dep := range d.DependsOn {
			if seen[dep] {
				return nil, invalidf("stage %q lists dependency %q twice", d.Name, dep)
			}
			seen[dep] = true

			j, ok := byOutput[dep]
			if !ok {
				return nil, invalidf("stage %q depends on %q, which no stage produces", d.Name, dep)
			}
			if j == i {
				return nil, invalidf("stage %q depends on its own output %q", d.Name, dep)
			}
			g.outgoing[j] = append(g.outgoing[j], i)
			g.indeg[i]++
		}
	}
	return g, nil
}

type indexHeap []int

func (h indexHeap) Len() int           { return len(h) }
func (h indexHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h indexHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *indexHeap) Push(x any)        { *h = append(*h, x.(int)) }
func (h *indexHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// topoOrder is Kahn's algorithm with the ready set ordered by declaration
// index. A result shorter than the graph means a cycle.
func (g *graph) topoOrder() []int {
	indeg := make([]int, len(g.indeg))
	copy(indeg, g.indeg)

	ready := &indexHeap{}
	for i, d := range indeg {
		if d == 0 {
			heap.Push(ready, i)
		}
	}

	out := make([]int, 0, len(indeg))
	for ready.Len() > 0 {
		n := heap.Pop(ready).(int)
		out = append(out, n)
		for _, m := range g.outgoing[n] {
			indeg[m]--
			if indeg[m] == 0 {
				heap.Push(ready, m)
			}
		}
	}
	return out
}

// findCycle returns one cycle as stage names, first name repeated at the end.
func (g *graph) findCycle() []string {
	const (
		white = iota
		gray
		black
	)
	color := make([]int, len(g.defs))
	var stack, cycle []int

	var dfs func(u int) bool
	dfs = func(u int) bool {
		color[u] = gray
		stack = append(stack, u)
		for _, v := range g.outgoing[u] {
			switch color[v] {
			case white:
				if dfs(v) {
					return true
				}
			case gray:
				for k := len(stack) - 1; k >= 0; k-- {
					if stack[k] == v {
						cycle = append(append(cycle, stack[k:]...), v)
						return true
					}
				}
			}
		}
		stack = stack[:len(stack)-1]
		color[u] = black
		return false
	}

	for i := range g.defs {
		if color[i] == white && dfs(i) {
			break
		}
	}

	names := make([]string, 0, len(cycle))
	for _, i := range cycle {
		names = append(names, g.defs[i].Name)
	}
	return names
}
