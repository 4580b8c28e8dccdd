package nn

// Range is a closed interval of admissible parameter values.
type Range struct {
	Low  float64
	High float64
}

// Contains reports whether v lies inside the interval, endpoints included.
func (r Range) Contains(v float64) bool {
	return v >= r.Low && v <= r.High
}

// Rescale maps a gene value in [0, 1] linearly onto the interval.
func (r Range) Rescale(gene float64) float64 {
	return gene*(r.High-r.Low) + r.Low
}

// Declared parameter ranges. These are part of the encoding contract: the
// genome decoder rescales genes into them, and the network constructor
// rejects anything outside them.
var (
	TimeConstantRange = Range{Low: 1.0, High: 20.0}
	GainRange         = Range{Low: 0.0, High: 0.5}
	BiasRange         = Range{Low: -10.0, High: 0.0}
	InputScalingRange = Range{Low: -10.0, High: 10.0}
	WeightRange       = Range{Low: -5.0, High: 5.0}
)
