// Package percentile ranks values within a reference group.
//
// Two formulas live here and they are not interchangeable. RankWithinGroup
// places a single value against a group using a strict less-than count.
// UniformQuantileTransform maps a group onto [0,1] relative to itself and is
// only used to build a group's average percentile profile.
package percentile

import (
	"fmt"
	"sort"

	"github.com/okian/horsepower/internal/domain/model"
	"gonum.org/v1/gonum/stat"
)

// RankWithinGroup returns the fraction of group strictly less than value.
// Ties are excluded from the numerator.
func RankWithinGroup(value float64, group []float64) (float64, error) {
	if len(group) == 0 {
		return 0, ErrInvalidGroup
	}
	below := 0
	for _, v := range group {
		if v < value {
			below++
		}
	}
	return float64(below) / float64(len(group)), nil
}

// RankAll ranks each metric of v against the matching column of rows.
func RankAll(v model.Vector, rows []model.Athlete) (model.Vector, error) {
	var out model.Vector
	if len(rows) == 0 {
		return out, ErrInvalidGroup
	}
	for _, m := range model.Metrics() {
		p, err := RankWithinGroup(v[m], model.Column(rows, m))
		if err != nil {
			return out, fmt.Errorf("rank %s: %w", m, err)
		}
		out[m] = p
	}
	return out, nil
}

// UniformQuantileTransform replaces each value by its rank over n-1.
// Equal values share the midpoint of their rank run. A single-value group maps to 0.
func UniformQuantileTransform(group []float64) []float64 {
	n := len(group)
	out := make([]float64, n)
	if n < 2 {
		return out
	}
	sorted := make([]float64, n)
	copy(sorted, group)
	sort.Float64s(sorted)

	denom := float64(n - 1)
	for i, v := range group {
		lo := sort.SearchFloat64s(sorted, v)
		hi := sort.Search(n, func(j int) bool { return sorted[j] > v }) - 1
		out[i] = (float64(lo) + float64(hi)) / 2 / denom
	}
	return out
}

// GroupProfile quantile-transforms every column of rows and averages each column.
func GroupProfile(rows []model.Athlete) (model.Vector, error) {
	var out model.Vector
	if len(rows) == 0 {
		return out, ErrInvalidGroup
	}
	for _, m := range model.Metrics() {
		out[m] = stat.Mean(UniformQuantileTransform(model.Column(rows, m)), nil)
	}
	return out, nil
}

// ColumnMeans returns the per-metric mean of rows.
func ColumnMeans(rows []model.Athlete) (model.Vector, error) {
	var out model.Vector
	if len(rows) == 0 {
		return out, ErrInvalidGroup
	}
	for _, m := range model.Metrics() {
		out[m] = stat.Mean(model.Column(rows, m), nil)
	}
	return out, nil
}
