// Package types contains common types used across the application
package types

// Mode names one comparison mode.
type Mode string

// Supported comparison modes.
const (
	ModeLevel    Mode = "level"
	ModePlayer   Mode = "player"
	ModeClosest  Mode = "closest"
	ModePosition Mode = "position"
	ModeSpread   Mode = "spread"
)

// Modes lists every comparison mode.
func Modes() []Mode {
	return []Mode{ModeLevel, ModePlayer, ModeClosest, ModePosition, ModeSpread}
}

// Match identifies a single dataset row a subject was compared to.
type Match struct {
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Level     string   `json:"level"`
	Position  string   `json:"position,omitempty"`
	Distance  *float64 `json:"distance,omitempty"`
}

// Comparison is the bundle a presentation layer renders.
// Subject and Reference are six-element vectors in metric order. They hold
// percentiles in [0,1] for every mode except spread, where Subject holds
// value/mean ratios, Reference is fixed at 1 and Band holds std/mean.
type Comparison struct {
	Mode          Mode      `json:"mode"`
	Metrics       []string  `json:"metrics"`
	SubjectValues []float64 `json:"subject_values"`
	Subject       []float64 `json:"subject"`
	Reference     []float64 `json:"reference"`
	Band          []float64 `json:"band,omitempty"`
	Label         string    `json:"label"`
	GroupSize     int       `json:"group_size"`
	SubgroupSize  int       `json:"subgroup_size,omitempty"`
	Match         *Match    `json:"match,omitempty"`
}

// Options lists the choices a presentation layer offers for group selection.
type Options struct {
	Levels    []string `json:"levels"`
	Positions []string `json:"positions"`
	Metrics   []string `json:"metrics"`
	Modes     []Mode   `json:"modes"`
}
