// Package model contains domain models passed between layers.
package model

// Metric identifies one slot of the six-metric vector.
type Metric int

// Fixed metric order shared by subject vectors and dataset rows.
const (
	GripBottom Metric = iota
	GripTop
	VerticalJump
	MedBallSitUp
	MedBallChest
	Horsepower
)

// MetricCount is the length of every metric vector.
const MetricCount = 6

// RawMetricCount is the number of measured metrics; Horsepower is derived.
const RawMetricCount = 5

var metricNames = [MetricCount]string{
	"Grip Strength (Bottom Hand)",
	"Grip Strength (Top Hand)",
	"Vertical Jump",
	"Med Ball SitUp",
	"Med Ball Chest",
	"Horsepower",
}

// String returns the dataset column name of the metric.
func (m Metric) String() string {
	if m < 0 || int(m) >= MetricCount {
		return "unknown"
	}
	return metricNames[m]
}

// Metrics returns all metrics in vector order.
func Metrics() []Metric {
	return []Metric{GripBottom, GripTop, VerticalJump, MedBallSitUp, MedBallChest, Horsepower}
}

// MetricNames returns the column names in vector order.
func MetricNames() []string {
	out := make([]string, MetricCount)
	copy(out, metricNames[:])
	return out
}

// Vector is a six-metric vector in Metrics() order.
type Vector [MetricCount]float64

// DeriveHorsepower returns VerticalJump + MedBallSitUp + MedBallChest.
func DeriveHorsepower(vertical, situp, chest float64) float64 {
	return vertical + situp + chest
}

// NewVector builds a Vector from the five raw metrics, deriving Horsepower.
func NewVector(gripBottom, gripTop, vertical, situp, chest float64) Vector {
	return Vector{
		gripBottom,
		gripTop,
		vertical,
		situp,
		chest,
		DeriveHorsepower(vertical, situp, chest),
	}
}

// Slice returns the vector as a fresh slice.
func (v Vector) Slice() []float64 {
	out := make([]float64, MetricCount)
	copy(out, v[:])
	return out
}
