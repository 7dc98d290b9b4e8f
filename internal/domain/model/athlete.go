package model

import "strings"

// Level is the competitive level of an athlete.
type Level string

// Known competitive levels, in display order.
const (
	LevelHighSchool Level = "High School"
	LevelCollege    Level = "College"
	LevelMinors     Level = "Minors"
	LevelMLB        Level = "MLB"
)

// Levels returns the fixed level enum in display order.
func Levels() []Level {
	return []Level{LevelHighSchool, LevelCollege, LevelMinors, LevelMLB}
}

// Synthetic positions that union two literal positions.
const (
	MiddleInfield = "Middle Infield"
	CornerInfield = "Corner Infield"
)

var syntheticPositions = map[string][]string{
	MiddleInfield: {"Shortstop", "Second Base"},
	CornerInfield: {"Third Base", "First Base"},
}

// ExpandPosition returns the literal positions a position name stands for.
// Literal positions expand to themselves.
func ExpandPosition(position string) []string {
	if members, ok := syntheticPositions[position]; ok {
		out := make([]string, len(members))
		copy(out, members)
		return out
	}
	return []string{position}
}

// SyntheticPositions returns the aggregate position names in display order.
func SyntheticPositions() []string {
	return []string{MiddleInfield, CornerInfield}
}

// Athlete is one row of the reference dataset.
type Athlete struct {
	FirstName string
	LastName  string
	Level     Level
	// Age is valid only when HasAge is true.
	Age      float64
	HasAge   bool
	Position string
	// Values holds zero-filled metrics; Horsepower is derived from the raw columns.
	Values Vector
	// Complete is false when any raw metric cell was missing or non-numeric.
	Complete bool
}

// FullName returns "First Last".
func (a Athlete) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// Value returns the zero-filled value for m.
func (a Athlete) Value(m Metric) float64 {
	return a.Values[m]
}

// Dataset is the read-only reference table.
type Dataset struct {
	rows []Athlete
}

// NewDataset copies rows into a new Dataset.
func NewDataset(rows []Athlete) *Dataset {
	cp := make([]Athlete, len(rows))
	copy(cp, rows)
	return &Dataset{rows: cp}
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.rows)
}

// Rows returns a copy of all rows in load order.
func (d *Dataset) Rows() []Athlete {
	if d == nil {
		return nil
	}
	out := make([]Athlete, len(d.rows))
	copy(out, d.rows)
	return out
}

// Filter returns the rows matching keep, in load order.
func (d *Dataset) Filter(keep func(Athlete) bool) []Athlete {
	if d == nil {
		return nil
	}
	var out []Athlete
	for _, r := range d.rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// CompleteCount returns the number of rows with every raw metric present.
func (d *Dataset) CompleteCount() int {
	return len(d.Filter(func(a Athlete) bool { return a.Complete }))
}

// Column extracts metric m from rows.
func Column(rows []Athlete, m Metric) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = r.Values[m]
	}
	return out
}
