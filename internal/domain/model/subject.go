package model

import (
	"math"
	"strconv"
	"strings"
)

// Subject is the athlete under evaluation as supplied by a presentation layer.
type Subject struct {
	Name         string
	GripBottom   float64
	GripTop      float64
	VerticalJump float64
	MedBallSitUp float64
	MedBallChest float64
}

// Vector returns the six-metric vector, deriving Horsepower on every call.
func (s Subject) Vector() Vector {
	return NewVector(s.GripBottom, s.GripTop, s.VerticalJump, s.MedBallSitUp, s.MedBallChest)
}

// Validation reports which subject inputs are still missing.
type Validation struct {
	Missing []string `json:"missing"`
}

// Complete reports whether every required input was supplied.
func (v Validation) Complete() bool { return len(v.Missing) == 0 }

// Field names reported by Validate.
const (
	FieldName = "Player Name"
)

// Validate checks that the name and the five metrics have been entered.
// A zero metric counts as not entered, matching the input form default.
func Validate(s Subject) Validation {
	var v Validation
	if strings.TrimSpace(s.Name) == "" {
		v.Missing = append(v.Missing, FieldName)
	}
	v.Missing = append(v.Missing, MissingMetrics(s)...)
	return v
}

// MissingMetrics returns the names of raw metrics that are zero or negative.
func MissingMetrics(s Subject) []string {
	raw := [RawMetricCount]float64{s.GripBottom, s.GripTop, s.VerticalJump, s.MedBallSitUp, s.MedBallChest}
	var out []string
	for i, val := range raw {
		if !(val > 0) {
			out = append(out, Metric(i).String())
		}
	}
	return out
}

// ParseNumber coerces free text to a finite number. Blank, non-numeric and
// non-finite text yield 0, false.
func ParseNumber(text string) (float64, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
