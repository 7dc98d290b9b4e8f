// Package selector resolves reference groups and comparison rows from a dataset.
// Groups are rebuilt on every call and never cached.
package selector

import (
	"sort"
	"strconv"
	"strings"

	"github.com/okian/horsepower/internal/domain/model"
)

// ByLevel returns the rows whose level equals level.
func ByLevel(ds *model.Dataset, level model.Level) []model.Athlete {
	return ds.Filter(func(a model.Athlete) bool { return a.Level == level })
}

// ParseAge coerces text to a numeric age. Non-numeric text reports false.
func ParseAge(text string) (float64, bool) {
	age, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, false
	}
	return age, true
}

// ByAge returns the rows whose age equals the numeric value of text.
// Non-numeric text yields an empty group.
func ByAge(ds *model.Dataset, text string) []model.Athlete {
	age, ok := ParseAge(text)
	if !ok {
		return nil
	}
	return ds.Filter(func(a model.Athlete) bool { return a.HasAge && a.Age == age })
}

// ByPosition returns the rows at level whose position matches position,
// expanding the synthetic infield groups.
func ByPosition(ds *model.Dataset, level model.Level, position string) []model.Athlete {
	members := model.ExpandPosition(position)
	return ds.Filter(func(a model.Athlete) bool {
		if a.Level != level {
			return false
		}
		for _, p := range members {
			if a.Position == p {
				return true
			}
		}
		return false
	})
}

// FindPlayer returns the first row matching both names exactly.
// Duplicate names are not disambiguated.
func FindPlayer(ds *model.Dataset, firstName, lastName string) (model.Athlete, error) {
	for _, a := range ds.Rows() {
		if a.FirstName == firstName && a.LastName == lastName {
			return a, nil
		}
	}
	return model.Athlete{}, ErrPlayerNotFound
}

// Positions lists the distinct non-empty dataset positions sorted,
// followed by the synthetic infield groups.
func Positions(ds *model.Dataset) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, a := range ds.Rows() {
		if a.Position == "" {
			continue
		}
		if _, ok := seen[a.Position]; ok {
			continue
		}
		seen[a.Position] = struct{}{}
		out = append(out, a.Position)
	}
	sort.Strings(out)
	return append(out, model.SyntheticPositions()...)
}
