// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package similarity

import (
	"fmt"
	"math"
	"testing"

	"github.com/pdiddy/correspondent-manager/pkg/types"
)

func corr(id int, name string) types.Correspondent {
	return types.Correspondent{ID: id, Name: name}
}

func ids(g Group) []int {
	out := make([]int, len(g))
	for i, c := range g {
		out[i] = c.ID
	}
	return out
}

// --- Normalize and Ratio ---

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Acme Corp", "acme corp"},
		{"  ACME CORP  ", "acme corp"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRatioExactMatchIsOne(t *testing.T) {
	for _, metric := range []types.Metric{types.MetricJaroWinkler, types.MetricLevenshtein} {
		tests := [][2]string{
			{"Acme Corp", "acme corp"},
			{"Acme Corp", "  ACME CORP  "},
			{"", ""},
			{"  ", ""},
		}
		for _, tt := range tests {
			if got := Ratio(tt[0], tt[1], metric); got != 1.0 {
				t.Errorf("Ratio(%q, %q, %s) = %f, want 1.0", tt[0], tt[1], metric, got)
			}
		}
	}
}

func TestRatioSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"Acme Corp", "Acme Co"},
		{"Deutsche Bank", "Deutsche Bahn"},
		{"", "Acme"},
		{"Acme", "Zenith"},
	}
	for _, metric := range []types.Metric{types.MetricJaroWinkler, types.MetricLevenshtein} {
		for _, p := range pairs {
			ab := Ratio(p[0], p[1], metric)
			ba := Ratio(p[1], p[0], metric)
			if math.Abs(ab-ba) > 1e-12 {
				t.Errorf("Ratio not symmetric for (%q, %q, %s): %f vs %f", p[0], p[1], metric, ab, ba)
			}
		}
	}
}

func TestRatioInRange(t *testing.T) {
	pairs := [][2]string{
		{"Acme Corp", "Acme Co"},
		{"a", "completely different"},
		{"", "x"},
	}
	for _, metric := range []types.Metric{types.MetricJaroWinkler, types.MetricLevenshtein} {
		for _, p := range pairs {
			r := Ratio(p[0], p[1], metric)
			if r < 0.0 || r > 1.0 {
				t.Errorf("Ratio(%q, %q, %s) = %f, out of [0,1]", p[0], p[1], metric, r)
			}
		}
	}
}

func TestRatioEmptyVsNonEmpty(t *testing.T) {
	for _, metric := range []types.Metric{types.MetricJaroWinkler, types.MetricLevenshtein} {
		if r := Ratio("", "Acme Corp", metric); r >= 0.5 {
			t.Errorf("empty vs non-empty should score low under %s, got %f", metric, r)
		}
	}
}

// --- ExactDuplicates ---

func TestExactDuplicates(t *testing.T) {
	input := []types.Correspondent{
		corr(1, "Acme Corp"),
		corr(2, "Zenith"),
		corr(3, "acme corp"),
		corr(4, " ACME CORP "),
		corr(5, "zenith "),
	}

	groups := ExactDuplicates(input)
	if len(groups) != 2 {
		t.Fatalf("len(groups) = %d, want 2", len(groups))
	}
	// Groups follow first appearance: acme before zenith.
	want := [][]int{{1, 3, 4}, {2, 5}}
	for i, g := range groups {
		got := ids(g)
		if fmt.Sprint(got) != fmt.Sprint(want[i]) {
			t.Errorf("group %d = %v, want %v", i, got, want[i])
		}
	}
}

func TestExactDuplicatesEmptyNames(t *testing.T) {
	input := []types.Correspondent{
		corr(1, ""),
		corr(2, "   "),
		corr(3, "Acme"),
	}
	groups := ExactDuplicates(input)
	if len(groups) != 1 {
		t.Fatalf("len(groups) = %d, want 1", len(groups))
	}
	got := ids(groups[0])
	if fmt.Sprint(got) != fmt.Sprint([]int{1, 2}) {
		t.Errorf("empty-name group = %v, want [1 2]", got)
	}
}

func TestExactDuplicatesNone(t *testing.T) {
	input := []types.Correspondent{corr(1, "Acme"), corr(2, "Zenith")}
	if groups := ExactDuplicates(input); groups != nil {
		t.Errorf("groups = %v, want nil", groups)
	}
}

// --- Pairs ---

func TestPairsThresholdAndOrder(t *testing.T) {
	input := []types.Correspondent{
		corr(1, "Acme Corp"),
		corr(2, "ACME CORP"),
		corr(3, "Acme Co"),
		corr(4, "Unrelated Inc"),
	}

	pairs := Pairs(input, types.SimilarityConfig{Threshold: 0.9})
	if len(pairs) < 2 {
		t.Fatalf("len(pairs) = %d, want at least 2", len(pairs))
	}
	// Exact pair sorts first with ratio 1.0.
	if pairs[0].A.ID != 1 || pairs[0].B.ID != 2 || pairs[0].Ratio != 1.0 {
		t.Errorf("pairs[0] = (%d, %d, %f), want (1, 2, 1.0)", pairs[0].A.ID, pairs[0].B.ID, pairs[0].Ratio)
	}
	for i := 1; i < len(pairs); i++ {
		if pairs[i].Ratio > pairs[i-1].Ratio {
			t.Errorf("pairs not sorted descending at %d", i)
		}
	}
	for _, p := range pairs {
		if p.A.ID == 4 || p.B.ID == 4 {
			t.Errorf("unrelated correspondent should not pair, got (%d, %d)", p.A.ID, p.B.ID)
		}
	}
}

func TestPairsSingleInput(t *testing.T) {
	if pairs := Pairs([]types.Correspondent{corr(1, "Acme")}, types.SimilarityConfig{}); pairs != nil {
		t.Errorf("pairs = %v, want nil", pairs)
	}
}

// --- Groups ---

func TestGroupsThresholdProperty(t *testing.T) {
	// The canonical case: exact + near match group together, the
	// unrelated name stays out.
	input := []types.Correspondent{
		corr(1, "Acme Corp"),
		corr(2, "ACME CORP "),
		corr(3, "Acme Co"),
		corr(4, "Unrelated Inc"),
	}

	groups := Groups(input, types.SimilarityConfig{Threshold: 0.9})
	if len(groups) != 1 {
		t.Fatalf("len(groups) = %d, want 1", len(groups))
	}
	got := ids(groups[0])
	if fmt.Sprint(got) != fmt.Sprint([]int{1, 2, 3}) {
		t.Errorf("group = %v, want [1 2 3]", got)
	}
}

func TestGroupsTransitiveClosure(t *testing.T) {
	// A~B and B~C meet the threshold; A~C does not. All three must share
	// a group (connected components, not cliques).
	a := corr(1, "Acme Corporation Ltd")
	b := corr(2, "Acme Corporation")
	c := corr(3, "Acme Corp")

	cfg := types.SimilarityConfig{Threshold: 0.9}
	rAB := Ratio(a.Name, b.Name, cfg.Metric)
	rBC := Ratio(b.Name, c.Name, cfg.Metric)
	if rAB < cfg.Threshold || rBC < cfg.Threshold {
		t.Fatalf("test premise broken: rAB=%f rBC=%f", rAB, rBC)
	}

	groups := Groups([]types.Correspondent{a, b, c}, cfg)
	if len(groups) != 1 {
		t.Fatalf("len(groups) = %d, want 1", len(groups))
	}
	if len(groups[0]) != 3 {
		t.Errorf("group size = %d, want 3", len(groups[0]))
	}
}

func TestGroupsDeterministicOrder(t *testing.T) {
	input := []types.Correspondent{
		corr(10, "Zenith Bank"),
		corr(20, "Acme Corp"),
		corr(30, "zenith bank"),
		corr(40, "acme corp"),
	}

	first := Groups(input, types.SimilarityConfig{Threshold: 0.95})
	for i := 0; i < 5; i++ {
		again := Groups(input, types.SimilarityConfig{Threshold: 0.95})
		if fmt.Sprint(first) != fmt.Sprint(again) {
			t.Fatalf("groups not deterministic: %v vs %v", first, again)
		}
	}
	if len(first) != 2 {
		t.Fatalf("len(groups) = %d, want 2", len(first))
	}
	// First group is seeded by the earliest input member.
	if first[0][0].ID != 10 {
		t.Errorf("first group starts with %d, want 10", first[0][0].ID)
	}
	if fmt.Sprint(ids(first[1])) != fmt.Sprint([]int{20, 40}) {
		t.Errorf("second group = %v, want [20 40]", ids(first[1]))
	}
}

func TestGroupsSingleAndEmptyInput(t *testing.T) {
	if got := Groups(nil, types.SimilarityConfig{}); got != nil {
		t.Errorf("Groups(nil) = %v, want nil", got)
	}
	if got := Groups([]types.Correspondent{corr(1, "Acme")}, types.SimilarityConfig{}); got != nil {
		t.Errorf("Groups(single) = %v, want nil", got)
	}
}

func TestGroupsEmptyNamesOnlyMatchEachOther(t *testing.T) {
	input := []types.Correspondent{
		corr(1, ""),
		corr(2, "  "),
		corr(3, "Acme Corp"),
		corr(4, "Acme Corp"),
	}

	groups := Groups(input, types.SimilarityConfig{Threshold: 0.9})
	if len(groups) != 2 {
		t.Fatalf("len(groups) = %d, want 2", len(groups))
	}
	if fmt.Sprint(ids(groups[0])) != fmt.Sprint([]int{1, 2}) {
		t.Errorf("empty-name group = %v, want [1 2]", ids(groups[0]))
	}
	if fmt.Sprint(ids(groups[1])) != fmt.Sprint([]int{3, 4}) {
		t.Errorf("acme group = %v, want [3 4]", ids(groups[1]))
	}
}

func TestGroupsThresholdZeroGroupsEverything(t *testing.T) {
	// 0 is a valid threshold, not "unset": every pair scores at least 0,
	// so all names collapse into one group.
	input := []types.Correspondent{
		corr(1, "Acme Corp"),
		corr(2, "Completely Different GmbH"),
	}
	groups := Groups(input, types.SimilarityConfig{Threshold: 0})
	if len(groups) != 1 {
		t.Fatalf("len(groups) = %d, want 1", len(groups))
	}
	if fmt.Sprint(ids(groups[0])) != fmt.Sprint([]int{1, 2}) {
		t.Errorf("group = %v, want [1 2]", ids(groups[0]))
	}
}

func TestPairsThresholdZeroMatchesAll(t *testing.T) {
	input := []types.Correspondent{
		corr(1, "Acme Corp"),
		corr(2, "Zenith Bank"),
		corr(3, "Globex"),
	}
	pairs := Pairs(input, types.SimilarityConfig{Threshold: 0})
	if len(pairs) != 3 {
		t.Fatalf("len(pairs) = %d, want all 3 pairs", len(pairs))
	}
}

func TestLevenshteinRatio(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"abc", "abc", 1.0},
		{"abc", "abd", 1.0 - 1.0/3.0},
		{"", "", 1.0},
		{"", "ab", 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			got := levenshteinRatio(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("levenshteinRatio(%q, %q) = %f, want %f", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
