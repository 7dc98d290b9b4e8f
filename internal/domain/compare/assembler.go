// Package compare assembles the five comparison modes from the selector,
// percentile and nearest packages.
package compare

import (
	"fmt"
	"strconv"

	"github.com/okian/horsepower/internal/domain/model"
	"github.com/okian/horsepower/internal/domain/nearest"
	"github.com/okian/horsepower/internal/domain/percentile"
	"github.com/okian/horsepower/internal/domain/selector"
	"github.com/okian/horsepower/internal/domain/types"
	"gonum.org/v1/gonum/stat"
)

// GroupBy selects how Level and Spread modes build their reference group.
type GroupBy string

// Supported group-by fields.
const (
	GroupByLevel GroupBy = "level"
	GroupByAge   GroupBy = "age"
)

// String returns the display name used in labels.
func (g GroupBy) String() string {
	switch g {
	case GroupByLevel:
		return "Level"
	case GroupByAge:
		return "Age"
	default:
		return string(g)
	}
}

// Assembler computes comparison bundles against a read-only dataset.
type Assembler struct {
	ds *model.Dataset
}

// New returns an Assembler over ds. The dataset must not be mutated afterwards.
func New(ds *model.Dataset) *Assembler {
	return &Assembler{ds: ds}
}

// Level ranks the subject within a level or age group and compares it to the
// group's own average percentile profile.
func (a *Assembler) Level(v model.Vector, by GroupBy, value string) (types.Comparison, error) {
	group, display, err := a.resolveGroup(by, value)
	if err != nil {
		return types.Comparison{}, err
	}
	subject, err := percentile.RankAll(v, group)
	if err != nil {
		return types.Comparison{}, err
	}
	profile, err := percentile.GroupProfile(group)
	if err != nil {
		return types.Comparison{}, err
	}
	c := newComparison(types.ModeLevel, v, subject, profile)
	c.Label = fmt.Sprintf("%s %s Average", display, by)
	c.GroupSize = len(group)
	return c, nil
}

// Player compares the subject to a named player, both ranked within the
// player's level.
func (a *Assembler) Player(v model.Vector, firstName, lastName string) (types.Comparison, error) {
	player, err := selector.FindPlayer(a.ds, firstName, lastName)
	if err != nil {
		return types.Comparison{}, fmt.Errorf("%s %s: %w", firstName, lastName, err)
	}
	c, err := a.againstRow(types.ModePlayer, v, player)
	if err != nil {
		return types.Comparison{}, err
	}
	c.Label = fmt.Sprintf("%s %s's Data", firstName, lastName)
	return c, nil
}

// Closest compares the subject to its nearest complete row, both ranked
// within that row's level.
func (a *Assembler) Closest(v model.Vector) (types.Comparison, error) {
	m, err := nearest.FindClosest(a.ds, v)
	if err != nil {
		return types.Comparison{}, err
	}
	c, err := a.againstRow(types.ModeClosest, v, m.Athlete)
	if err != nil {
		return types.Comparison{}, err
	}
	dist := m.Distance
	c.Match.Distance = &dist
	c.Label = fmt.Sprintf("Closest Match: %s %s", m.Athlete.FirstName, m.Athlete.LastName)
	return c, nil
}

// Position compares the subject to the mean raw values of a position within a
// level. Both are ranked against the whole level.
func (a *Assembler) Position(v model.Vector, level model.Level, position string) (types.Comparison, error) {
	peers := selector.ByPosition(a.ds, level, position)
	if len(peers) == 0 {
		return types.Comparison{}, fmt.Errorf("%w: %s in %s", ErrEmptyGroup, position, level)
	}
	group := selector.ByLevel(a.ds, level)
	if len(group) == 0 {
		return types.Comparison{}, fmt.Errorf("%w: level %s", ErrEmptyGroup, level)
	}
	means, err := percentile.ColumnMeans(peers)
	if err != nil {
		return types.Comparison{}, err
	}
	reference, err := percentile.RankAll(means, group)
	if err != nil {
		return types.Comparison{}, err
	}
	subject, err := percentile.RankAll(v, group)
	if err != nil {
		return types.Comparison{}, err
	}
	c := newComparison(types.ModePosition, v, subject, reference)
	c.Label = fmt.Sprintf("%s Average in %s", position, level)
	c.GroupSize = len(group)
	c.SubgroupSize = len(peers)
	return c, nil
}

// Spread expresses the subject as a fraction of the group mean per metric.
// The reference line is 1 and Band holds std/mean. A zero mean reports 0 for
// both ratio and band.
func (a *Assembler) Spread(v model.Vector, by GroupBy, value string) (types.Comparison, error) {
	group, display, err := a.resolveGroup(by, value)
	if err != nil {
		return types.Comparison{}, err
	}
	var ratio, ones, band model.Vector
	for _, m := range model.Metrics() {
		col := model.Column(group, m)
		mean := stat.Mean(col, nil)
		std := 0.0
		if len(col) > 1 {
			std = stat.StdDev(col, nil)
		}
		ones[m] = 1
		if mean != 0 {
			ratio[m] = v[m] / mean
			band[m] = std / mean
		}
	}
	c := newComparison(types.ModeSpread, v, ratio, ones)
	c.Band = band.Slice()
	c.Label = fmt.Sprintf("%s %s Mean ± Std Dev", display, by)
	c.GroupSize = len(group)
	return c, nil
}

func (a *Assembler) againstRow(mode types.Mode, v model.Vector, row model.Athlete) (types.Comparison, error) {
	group := selector.ByLevel(a.ds, row.Level)
	if len(group) == 0 {
		return types.Comparison{}, fmt.Errorf("%w: level %s", ErrEmptyGroup, row.Level)
	}
	subject, err := percentile.RankAll(v, group)
	if err != nil {
		return types.Comparison{}, err
	}
	reference, err := percentile.RankAll(row.Values, group)
	if err != nil {
		return types.Comparison{}, err
	}
	c := newComparison(mode, v, subject, reference)
	c.GroupSize = len(group)
	c.Match = &types.Match{
		FirstName: row.FirstName,
		LastName:  row.LastName,
		Level:     string(row.Level),
		Position:  row.Position,
	}
	return c, nil
}

// resolveGroup returns the group and the display form of value.
func (a *Assembler) resolveGroup(by GroupBy, value string) ([]model.Athlete, string, error) {
	var (
		group   []model.Athlete
		display string
	)
	switch by {
	case GroupByLevel:
		group = selector.ByLevel(a.ds, model.Level(value))
		display = value
	case GroupByAge:
		group = selector.ByAge(a.ds, value)
		if age, ok := selector.ParseAge(value); ok {
			display = strconv.FormatFloat(age, 'f', -1, 64)
		} else {
			display = value
		}
	default:
		return nil, "", fmt.Errorf("%w: %q", ErrUnknownGroupBy, by)
	}
	if len(group) == 0 {
		return nil, "", fmt.Errorf("%w: %s %q", ErrEmptyGroup, by, value)
	}
	return group, display, nil
}

func newComparison(mode types.Mode, values, subject, reference model.Vector) types.Comparison {
	return types.Comparison{
		Mode:          mode,
		Metrics:       model.MetricNames(),
		SubjectValues: values.Slice(),
		Subject:       subject.Slice(),
		Reference:     reference.Slice(),
	}
}
