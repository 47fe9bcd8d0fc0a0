// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package similarity detects duplicate and near-duplicate correspondent
// names. Exact duplicates are names that are equal after normalization;
// similar names are grouped by transitive closure over pairwise ratios
// above a threshold (connected components, not cliques).
package similarity

import (
	"sort"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/agnivade/levenshtein"

	"github.com/pdiddy/correspondent-manager/pkg/types"
)

// jaroWinkler is a reusable Jaro-Winkler metric instance.
var jaroWinkler = metrics.NewJaroWinkler()

// Group is a set of correspondents considered the same real-world entity.
// Members keep their original input order.
type Group []types.Correspondent

// Pair is two correspondents whose name similarity meets the threshold.
type Pair struct {
	A     types.Correspondent `json:"a" yaml:"a"`
	B     types.Correspondent `json:"b" yaml:"b"`
	Ratio float64             `json:"ratio" yaml:"ratio"`
}

// Normalize case-folds and trims a correspondent name for comparison.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Ratio computes the similarity of two names under the given metric.
// It is symmetric and returns a value in [0,1]; names that are equal
// after normalization always score 1.0.
func Ratio(a, b string, metric types.Metric) float64 {
	na, nb := Normalize(a), Normalize(b)
	if na == nb {
		return 1.0
	}
	switch metric {
	case types.MetricLevenshtein:
		return levenshteinRatio(na, nb)
	default:
		return strutil.Similarity(na, nb, jaroWinkler)
	}
}

// levenshteinRatio is edit distance normalized by the longer name:
// 1 - dist/maxLen, so identical names score 1.0 and disjoint names
// approach 0.
func levenshteinRatio(a, b string) float64 {
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 1.0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(dist)/float64(longest)
}

// ExactDuplicates returns groups of correspondents whose names are equal
// after normalization. Only groups with at least two members are
// returned, ordered by first appearance in the input.
func ExactDuplicates(correspondents []types.Correspondent) []Group {
	byName := make(map[string][]types.Correspondent)
	var order []string
	for _, c := range correspondents {
		key := Normalize(c.Name)
		if _, seen := byName[key]; !seen {
			order = append(order, key)
		}
		byName[key] = append(byName[key], c)
	}

	var groups []Group
	for _, key := range order {
		if members := byName[key]; len(members) > 1 {
			groups = append(groups, Group(members))
		}
	}
	return groups
}

// Pairs returns all correspondent pairs whose similarity meets the
// threshold, sorted by ratio descending. Ties keep input order. The
// threshold is taken as given: 0 matches every pair.
func Pairs(correspondents []types.Correspondent, cfg types.SimilarityConfig) []Pair {
	threshold := cfg.Threshold

	var pairs []Pair
	for i := range correspondents {
		for j := i + 1; j < len(correspondents); j++ {
			r := Ratio(correspondents[i].Name, correspondents[j].Name, cfg.Metric)
			if r >= threshold {
				pairs = append(pairs, Pair{A: correspondents[i], B: correspondents[j], Ratio: r})
			}
		}
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].Ratio > pairs[j].Ratio
	})
	return pairs
}

// Groups partitions correspondents into similarity groups: connected
// components of the graph whose edges are pairs scoring at or above the
// threshold. If A~B and B~C meet the threshold, A, B, and C share a group
// even when A~C does not. Only groups with at least two members are
// returned. Output is deterministic for a given input ordering: groups
// are ordered by their earliest member and members keep input order.
// The threshold is taken as given: 0 puts everything in one group.
func Groups(correspondents []types.Correspondent, cfg types.SimilarityConfig) []Group {
	threshold := cfg.Threshold
	n := len(correspondents)
	if n < 2 {
		return nil
	}

	adjacent := make([][]int, n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if Ratio(correspondents[i].Name, correspondents[j].Name, cfg.Metric) >= threshold {
				adjacent[i] = append(adjacent[i], j)
				adjacent[j] = append(adjacent[j], i)
			}
		}
	}

	visited := make([]bool, n)
	var groups []Group
	for start := 0; start < n; start++ {
		if visited[start] {
			continue
		}
		component := collectComponent(start, adjacent, visited)
		if len(component) < 2 {
			continue
		}
		sort.Ints(component)
		group := make(Group, 0, len(component))
		for _, idx := range component {
			group = append(group, correspondents[idx])
		}
		groups = append(groups, group)
	}
	return groups
}

// collectComponent walks the similarity graph from start with an
// iterative DFS and marks every reachable index visited.
func collectComponent(start int, adjacent [][]int, visited []bool) []int {
	var component []int
	stack := []int{start}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[idx] {
			continue
		}
		visited[idx] = true
		component = append(component, idx)
		for _, next := range adjacent[idx] {
			if !visited[next] {
				stack = append(stack, next)
			}
		}
	}
	return component
}
