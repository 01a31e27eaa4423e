// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/tdpad/detector"
	"github.com/katalvlaran/tdpad/embedding"
)

// Execution modes.
const (
	ExecutionTrain   = "train"
	ExecutionExecute = "execute"
)

// Default custom parameters.
const (
	DefaultRandomState = 123
	DefaultS           = 20
	DefaultH           = 0.75
)

var (
	// ErrInvalidConfig indicates malformed arguments or out-of-range parameters.
	ErrInvalidConfig = errors.New("config: invalid configuration")

	// ErrUnknownExecutionType indicates an executionType other than train/execute.
	ErrUnknownExecutionType = errors.New("config: unknown executionType")
)

// CustomParameters are the algorithm hyperparameters.
//
//   - RandomState: seed for the initial P/R templates.
//   - Alpha, Beta: row-sparsity weights on P and R.
//   - Lamda, W: decay rate and angular frequency of the temporal kernel.
//   - S: window length.
//   - MaxIt: exact number of solver rounds per window.
//   - H: reduced dimension as a fraction of the feature count.
type CustomParameters struct {
	RandomState int     `json:"random_state" yaml:"random_state"`
	Alpha       float64 `json:"alpha" yaml:"alpha"`
	Beta        float64 `json:"beta" yaml:"beta"`
	Lamda       float64 `json:"lamda" yaml:"lamda"`
	S           int     `json:"s" yaml:"s"`
	MaxIt       int     `json:"maxIt" yaml:"maxIt"`
	H           float64 `json:"h" yaml:"h"`
	W           float64 `json:"w" yaml:"w"`
}

// DefaultCustomParameters returns {123, 0.01, 0.01, 0.1, 20, 10, 0.75, 1}.
func DefaultCustomParameters() CustomParameters {
	solver := detector.DefaultOptions()
	kernel := embedding.DefaultOptions()

	return CustomParameters{
		RandomState: DefaultRandomState,
		Alpha:       solver.Alpha,
		Beta:        solver.Beta,
		Lamda:       kernel.Lambda,
		S:           DefaultS,
		MaxIt:       solver.MaxIt,
		H:           DefaultH,
		W:           kernel.Omega,
	}
}

// SolverOptions projects the parameters onto detector.Options.
func (c CustomParameters) SolverOptions() detector.Options {
	return detector.Options{Alpha: c.Alpha, Beta: c.Beta, MaxIt: c.MaxIt}
}

// KernelOptions projects the parameters onto embedding.Options.
func (c CustomParameters) KernelOptions() embedding.Options {
	return embedding.Options{Lambda: c.Lamda, Omega: c.W}
}

// Validate checks every parameter range. The window length against the
// series length is checked once the data is loaded.
func (c CustomParameters) Validate() error {
	floats := []struct {
		name string
		v    float64
	}{{"alpha", c.Alpha}, {"beta", c.Beta}, {"lamda", c.Lamda}, {"h", c.H}, {"w", c.W}}
	for _, f := range floats {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s=%v is not finite", ErrInvalidConfig, f.name, f.v)
		}
	}
	switch {
	case c.Alpha < 0:
		return fmt.Errorf("%w: alpha=%v must be >= 0", ErrInvalidConfig, c.Alpha)
	case c.Beta < 0:
		return fmt.Errorf("%w: beta=%v must be >= 0", ErrInvalidConfig, c.Beta)
	case c.Lamda <= 0:
		return fmt.Errorf("%w: lamda=%v must be > 0", ErrInvalidConfig, c.Lamda)
	case c.S < 1:
		return fmt.Errorf("%w: s=%d must be >= 1", ErrInvalidConfig, c.S)
	case c.MaxIt < 1:
		return fmt.Errorf("%w: maxIt=%d must be >= 1", ErrInvalidConfig, c.MaxIt)
	case c.H <= 0:
		return fmt.Errorf("%w: h=%v must be > 0", ErrInvalidConfig, c.H)
	}

	return nil
}

// AlgorithmArgs is the full invocation.
type AlgorithmArgs struct {
	DataInput        string           `json:"dataInput" yaml:"dataInput"`
	DataOutput       string           `json:"dataOutput" yaml:"dataOutput"`
	ExecutionType    string           `json:"executionType" yaml:"executionType"`
	CustomParameters CustomParameters `json:"customParameters" yaml:"customParameters"`
}

// Validate checks the execution mode and, for "execute", the locations and
// custom parameters.
func (a AlgorithmArgs) Validate() error {
	switch a.ExecutionType {
	case ExecutionTrain:
		return nil
	case ExecutionExecute:
	default:
		return fmt.Errorf("%w: %q (choose either %q or %q)",
			ErrUnknownExecutionType, a.ExecutionType, ExecutionTrain, ExecutionExecute)
	}
	if a.DataInput == "" {
		return fmt.Errorf("%w: dataInput is required", ErrInvalidConfig)
	}
	if a.DataOutput == "" {
		return fmt.Errorf("%w: dataOutput is required", ErrInvalidConfig)
	}

	return a.CustomParameters.Validate()
}

// withDefaults returns args whose custom parameters start from the defaults,
// so keys absent from the input keep their default values.
func withDefaults() AlgorithmArgs {
	return AlgorithmArgs{CustomParameters: DefaultCustomParameters()}
}

// ParseJSON decodes a JSON argument object and validates it.
//
// Errors: ErrInvalidConfig (syntax or type errors), ErrUnknownExecutionType,
// and the range errors of Validate.
func ParseJSON(raw []byte) (AlgorithmArgs, error) {
	args := withDefaults()
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&args); err != nil {
		return AlgorithmArgs{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := args.Validate(); err != nil {
		return AlgorithmArgs{}, err
	}

	return args, nil
}

// LoadYAML decodes YAML arguments from r and validates them.
func LoadYAML(r io.Reader) (AlgorithmArgs, error) {
	args := withDefaults()
	if err := yaml.NewDecoder(r).Decode(&args); err != nil {
		return AlgorithmArgs{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := args.Validate(); err != nil {
		return AlgorithmArgs{}, err
	}

	return args, nil
}

// LoadFile reads YAML (or JSON, which is valid YAML) arguments from path.
func LoadFile(path string) (AlgorithmArgs, error) {
	f, err := os.Open(path)
	if err != nil {
		return AlgorithmArgs{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	defer f.Close()

	return LoadYAML(f)
}
