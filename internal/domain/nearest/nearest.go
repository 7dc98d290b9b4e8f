// Package nearest finds the dataset row closest to a subject vector.
package nearest

import (
	"github.com/okian/horsepower/internal/domain/model"
	"gonum.org/v1/gonum/floats"
)

// Match is the closest row and its distance from the subject.
type Match struct {
	Athlete  model.Athlete
	Distance float64
}

// FindClosest returns the complete row minimizing the unscaled Euclidean
// distance to v across all six metrics. Rows with any missing metric are not
// candidates. The first row encountered wins a tie.
func FindClosest(ds *model.Dataset, v model.Vector) (Match, error) {
	subject := v.Slice()
	best := Match{}
	found := false
	for _, a := range ds.Rows() {
		if !a.Complete {
			continue
		}
		d := floats.Distance(subject, a.Values.Slice(), 2)
		if !found || d < best.Distance {
			best = Match{Athlete: a, Distance: d}
			found = true
		}
	}
	if !found {
		return Match{}, ErrNoCandidates
	}
	return best, nil
}
