package kernels

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Kernel is the forward contract shared by every operator.
type Kernel interface {
	Forward(ctx context.Context, out, in []float64) error
}

func checkLen(kind string, got, want int) error {
	if got != want {
		return fmt.Errorf("%s buffer has %d elements, want %d", kind, got, want)
	}
	return nil
}

// Linear projects in (in_features) to out (out_features): out = W·in + b.
type Linear struct {
	W        *mat.Dense // out_features × in_features
	Bias     []float64  // out_features, may be nil
	Schedule Schedule
}

// Forward implements Kernel. One unit computes one output feature.
func (k *Linear) Forward(ctx context.Context, out, in []float64) error {
	rows, cols := k.W.Dims()
	if err := checkLen("input", len(in), cols); err != nil {
		return err
	}
	if err := checkLen("output", len(out), rows); err != nil {
		return err
	}
	return k.Schedule.Run(ctx, rows, func(o int) {
		v := floats.Dot(k.W.RawRowView(o), in)
		if k.Bias != nil {
			v += k.Bias[o]
		}
		out[o] = v
	})
}

// LayerNorm normalizes hidden_dim values to zero mean and unit variance and
// applies an affine transform.
type LayerNorm struct {
	Gamma    []float64
	Beta     []float64
	Eps      float64
	Schedule Schedule
}

// Forward implements Kernel. Statistics are computed once; one unit
// normalizes one element.
func (k *LayerNorm) Forward(ctx context.Context, out, in []float64) error {
	n := len(k.Gamma)
	if err := checkLen("input", len(in), n); err != nil {
		return err
	}
	if err := checkLen("output", len(out), n); err != nil {
		return err
	}
	mean := floats.Sum(in) / float64(n)
	var variance float64
	for _, v := range in {
		d := v - mean
		variance += d * d
	}
	variance /= float64(n)
	inv := 1 / math.Sqrt(variance+k.Eps)
	return k.Schedule.Run(ctx, n, func(i int) {
		out[i] = (in[i]-mean)*inv*k.Gamma[i] + k.Beta[i]
	})
}

// Softmax normalizes n logits into a probability distribution.
type Softmax struct {
	N        int
	Schedule Schedule
}

// Forward implements Kernel.
func (k *Softmax) Forward(ctx context.Context, out, in []float64) error {
	if err := checkLen("input", len(in), k.N); err != nil {
		return err
	}
	if err := checkLen("output", len(out), k.N); err != nil {
		return err
	}
	if k.N == 0 {
		return nil
	}
	peak := floats.Max(in)
	if err := k.Schedule.Run(ctx, k.N, func(i int) {
		out[i] = math.Exp(in[i] - peak)
	}); err != nil {
		return err
	}
	sum := floats.Sum(out)
	return k.Schedule.Run(ctx, k.N, func(i int) {
		out[i] /= sum
	})
}

// Activation operators supported by Elementwise.
const (
	OpReLU    = "relu"
	OpSigmoid = "sigmoid"
	OpGELU    = "gelu"
)

// ActivationOps lists the Elementwise operators in canonical order.
var ActivationOps = []string{OpReLU, OpSigmoid, OpGELU}

func activation(op string) (func(float64) float64, error) {
	switch op {
	case OpReLU:
		return func(x float64) float64 { return math.Max(0, x) }, nil
	case OpSigmoid:
		return func(x float64) float64 { return 1 / (1 + math.Exp(-x)) }, nil
	case OpGELU:
		return func(x float64) float64 {
			return 0.5 * x * (1 + math.Tanh(math.Sqrt(2/math.Pi)*(x+0.044715*x*x*x)))
		}, nil
	default:
		return nil, fmt.Errorf("unsupported activation %q", op)
	}
}

// Elementwise applies an activation to n values.
type Elementwise struct {
	N        int
	Op       string
	Schedule Schedule
}

// Forward implements Kernel.
func (k *Elementwise) Forward(ctx context.Context, out, in []float64) error {
	f, err := activation(k.Op)
	if err != nil {
		return err
	}
	if err := checkLen("input", len(in), k.N); err != nil {
		return err
	}
	if err := checkLen("output", len(out), k.N); err != nil {
		return err
	}
	return k.Schedule.Run(ctx, k.N, func(i int) {
		out[i] = f(in[i])
	})
}

// Reduction operators supported by Reduce.
const (
	OpSum  = "sum"
	OpMean = "mean"
	OpMax  = "max"
	OpMin  = "min"
)

// ReduceOps lists the Reduce operators in canonical order.
var ReduceOps = []string{OpSum, OpMean, OpMax, OpMin}

// reduceChunk is the width of one partial reduction unit.
const reduceChunk = 64

// Reduce folds n values into out[0].
type Reduce struct {
	N        int
	Op       string
	Schedule Schedule
}

// Forward implements Kernel. One unit reduces one chunk; partials are then
// combined in chunk order so every tier rounds identically.
func (k *Reduce) Forward(ctx context.Context, out, in []float64) error {
	var fold func([]float64) float64
	switch k.Op {
	case OpSum, OpMean:
		fold = floats.Sum
	case OpMax:
		fold = floats.Max
	case OpMin:
		fold = floats.Min
	default:
		return fmt.Errorf("unsupported reduction %q", k.Op)
	}
	if err := checkLen("input", len(in), k.N); err != nil {
		return err
	}
	if err := checkLen("output", len(out), 1); err != nil {
		return err
	}
	if k.N == 0 {
		return fmt.Errorf("cannot reduce an empty input")
	}

	chunks := (k.N + reduceChunk - 1) / reduceChunk
	partials := make([]float64, chunks)
	if err := k.Schedule.Run(ctx, chunks, func(c int) {
		lo := c * reduceChunk
		hi := min(lo+reduceChunk, k.N)
		partials[c] = fold(in[lo:hi])
	}); err != nil {
		return err
	}

	result := fold(partials)
	if k.Op == OpMean {
		result /= float64(k.N)
	}
	out[0] = result
	return nil
}

// BatchNorm applies inference-time batch normalization to channel-major
// input of Channels × Spatial values using running statistics.
type BatchNorm struct {
	Channels int
	Spatial  int // 1 for BatchNorm1d, width*height for BatchNorm2d
	Mean     []float64
	Var      []float64
	Gamma    []float64
	Beta     []float64
	Eps      float64
	Schedule Schedule
}

// Forward implements Kernel. One unit normalizes one channel.
func (k *BatchNorm) Forward(ctx context.Context, out, in []float64) error {
	size := k.Channels * k.Spatial
	if err := checkLen("input", len(in), size); err != nil {
		return err
	}
	if err := checkLen("output", len(out), size); err != nil {
		return err
	}
	return k.Schedule.Run(ctx, k.Channels, func(c int) {
		scale := k.Gamma[c] / math.Sqrt(k.Var[c]+k.Eps)
		shift := k.Beta[c] - k.Mean[c]*scale
		base := c * k.Spatial
		for s := 0; s < k.Spatial; s++ {
			out[base+s] = in[base+s]*scale + shift
		}
	})
}
