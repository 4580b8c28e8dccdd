package nn

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidParameter = errors.New("invalid network parameter")
	ErrIndexOutOfRange  = errors.New("neuron index out of range")
)

// Params carries the decoded per-neuron parameters of a fully-interconnected
// continuous-time recurrent network. Weight[i][j] is the contribution of
// neuron j's activation to neuron i's derivative.
type Params struct {
	TimeConstant []float64
	Gain         []float64
	Bias         []float64
	InputScaling []float64
	Weight       [][]float64
}

// Network integrates the CTRNN dynamics one explicit Euler step at a time.
// Parameters are fixed at construction; state and input are the only mutable
// fields. A Network is not safe for concurrent mutation.
type Network struct {
	n            int
	timeConstant []float64
	gain         []float64
	bias         []float64
	inputScaling []float64
	weight       [][]float64

	state []float64
	input []float64
}

// New validates params against the declared ranges and returns a network with
// zeroed state and input. All parameter slices are deep-copied; the caller
// keeps no aliases into the network.
func New(n int, params Params) (*Network, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: neuron count must be positive, got %d", ErrInvalidParameter, n)
	}
	if err := validateVector("time constant", params.TimeConstant, n, TimeConstantRange); err != nil {
		return nil, err
	}
	if err := validateVector("gain", params.Gain, n, GainRange); err != nil {
		return nil, err
	}
	if err := validateVector("bias", params.Bias, n, BiasRange); err != nil {
		return nil, err
	}
	if err := validateVector("input scaling", params.InputScaling, n, InputScalingRange); err != nil {
		return nil, err
	}
	if params.Weight == nil {
		return nil, fmt.Errorf("%w: weight matrix is required", ErrInvalidParameter)
	}
	if len(params.Weight) != n {
		return nil, fmt.Errorf("%w: weight matrix has %d rows, want %d", ErrInvalidParameter, len(params.Weight), n)
	}
	weight := make([][]float64, n)
	for i, row := range params.Weight {
		if err := validateVector(fmt.Sprintf("weight row %d", i), row, n, WeightRange); err != nil {
			return nil, err
		}
		weight[i] = append([]float64(nil), row...)
	}

	return &Network{
		n:            n,
		timeConstant: append([]float64(nil), params.TimeConstant...),
		gain:         append([]float64(nil), params.Gain...),
		bias:         append([]float64(nil), params.Bias...),
		inputScaling: append([]float64(nil), params.InputScaling...),
		weight:       weight,
		state:        make([]float64, n),
		input:        make([]float64, n),
	}, nil
}

func validateVector(name string, values []float64, n int, r Range) error {
	if values == nil {
		return fmt.Errorf("%w: %s vector is required", ErrInvalidParameter, name)
	}
	if len(values) != n {
		return fmt.Errorf("%w: %s vector has length %d, want %d", ErrInvalidParameter, name, len(values), n)
	}
	for i, v := range values {
		if !r.Contains(v) {
			return fmt.Errorf("%w: %s[%d] = %v outside [%v, %v]", ErrInvalidParameter, name, i, v, r.Low, r.High)
		}
	}
	return nil
}

// NeuronCount returns the number of neurons in the network.
func (net *Network) NeuronCount() int {
	return net.n
}

// SetInput overwrites the externally supplied drive for neuron i. The value
// persists across updates until overwritten; setting an input does not by
// itself advance the simulation.
func (net *Network) SetInput(i int, value float64) error {
	if err := net.checkIndex(i); err != nil {
		return err
	}
	net.input[i] = value
	return nil
}

// GetState returns the current activation of neuron i.
func (net *Network) GetState(i int) (float64, error) {
	if err := net.checkIndex(i); err != nil {
		return 0, err
	}
	return net.state[i], nil
}

// GetInput mirrors the reference behavior of reading back the neuron state
// rather than the stored input value. Likely a defect in the reference, kept
// for compatibility; use GetState when the intent is the activation.
func (net *Network) GetInput(i int) (float64, error) {
	if err := net.checkIndex(i); err != nil {
		return 0, err
	}
	return net.state[i], nil
}

// States returns a copy of the activation vector.
func (net *Network) States() []float64 {
	return append([]float64(nil), net.state...)
}

// Params returns a deep copy of the decoded parameters.
func (net *Network) Params() Params {
	weight := make([][]float64, net.n)
	for i, row := range net.weight {
		weight[i] = append([]float64(nil), row...)
	}
	return Params{
		TimeConstant: append([]float64(nil), net.timeConstant...),
		Gain:         append([]float64(nil), net.gain...),
		Bias:         append([]float64(nil), net.bias...),
		InputScaling: append([]float64(nil), net.inputScaling...),
		Weight:       weight,
	}
}

// Update advances the simulation by exactly one discrete time step. All
// derivatives are computed from the pre-update state snapshot before any
// neuron is written, so the update is simultaneous rather than sequential;
// collapsing the two passes would turn the integrator into a Gauss-Seidel
// scheme and change results.
func (net *Network) Update() {
	derivative := make([]float64, net.n)
	for i := 0; i < net.n; i++ {
		sum := -net.state[i]
		for j := 0; j < net.n; j++ {
			sum += sigma(net.gain[j]*(net.state[j]+net.bias[j])) * net.weight[i][j]
		}
		sum += net.inputScaling[i] * net.input[i]
		derivative[i] = sum
	}
	for i := 0; i < net.n; i++ {
		net.state[i] += derivative[i] / net.timeConstant[i]
	}
}

// sigma is the activation used by the reference dynamics. Note the exponent
// sign: 1/(1+e^x) decreases in x, unlike the conventional logistic curve.
// The weight-range semantics assume this orientation.
func sigma(x float64) float64 {
	return 1 / (1 + math.Exp(x))
}

func (net *Network) checkIndex(i int) error {
	if i < 0 || i >= net.n {
		return fmt.Errorf("%w: %d (neuron count %d)", ErrIndexOutOfRange, i, net.n)
	}
	return nil
}
