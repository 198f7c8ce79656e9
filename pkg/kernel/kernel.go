package kernel

import (
	"errors"
	"fmt"
	"math"
)

// DefaultMaxSize is the capacity of the cKernel uniform array in the
// convolution pass.
const DefaultMaxSize = 25

// Errors returned by the kernel builder
var (
	ErrInvalidParameter = errors.New("invalid kernel parameter")
	ErrKernelTooLarge   = errors.New("kernel too large")
)

// Spec describes the kernel to build
type Spec struct {
	Sigma   float64 // Standard deviation of the Gaussian, in texels
	MaxSize int     // Upper bound on the number of weights
}

// Kernel is a normalized, symmetric 1D Gaussian
type Kernel struct {
	sigma   float64
	weights []float64
}

// Build builds a Gaussian kernel for sigma bounded by DefaultMaxSize.
func Build(sigma float64) (Kernel, error) {
	return Spec{Sigma: sigma, MaxSize: DefaultMaxSize}.Build()
}

// Build computes the normalized weights described by s.
//
// The kernel covers three standard deviations on each side of the center
// sample, so its size is 2*ceil(3*sigma)+1. A sigma that needs more weights
// than MaxSize is rejected with ErrKernelTooLarge; the weights are never
// truncated.
func (s Spec) Build() (Kernel, error) {
	if math.IsNaN(s.Sigma) || math.IsInf(s.Sigma, 0) || s.Sigma <= 0 {
		return Kernel{}, fmt.Errorf("%w: sigma must be positive and finite, got %v", ErrInvalidParameter, s.Sigma)
	}
	if s.MaxSize < 1 || s.MaxSize%2 == 0 {
		return Kernel{}, fmt.Errorf("%w: max size must be a positive odd number, got %d", ErrInvalidParameter, s.MaxSize)
	}

	// Compare in float64 so a huge sigma cannot wrap the int conversion.
	if math.Ceil(3*s.Sigma) > float64((s.MaxSize-1)/2) {
		return Kernel{}, fmt.Errorf("%w: sigma %v needs %v weights, max is %d (largest sigma is %v)",
			ErrKernelTooLarge, s.Sigma, 2*math.Ceil(3*s.Sigma)+1, s.MaxSize, MaxSigma(s.MaxSize))
	}

	half := int(math.Ceil(3 * s.Sigma))
	size := 2*half + 1
	weights := make([]float64, size)
	sum := 0.0

	for i := range weights {
		// Scaling by sigma first keeps the center at exp(0) even when
		// sigma*sigma underflows.
		z := float64(i-half) / s.Sigma
		weights[i] = math.Exp(-z * z / 2)
		sum += weights[i]
	}

	for i := range weights {
		weights[i] /= sum
	}

	return Kernel{sigma: s.Sigma, weights: weights}, nil
}

// Size returns the natural kernel size for sigma: 2*ceil(3*sigma)+1.
// Sizes that do not fit in an int saturate to math.MaxInt.
func Size(sigma float64) int {
	half := math.Ceil(3 * sigma)
	if half >= float64(math.MaxInt/2) {
		return math.MaxInt
	}
	return 2*int(half) + 1
}

// MaxSigma returns the largest sigma whose kernel fits in maxSize weights.
func MaxSigma(maxSize int) float64 {
	if maxSize < 1 {
		return 0
	}
	return float64((maxSize-1)/2) / 3
}

// Sigma returns the standard deviation the kernel was built with
func (k Kernel) Sigma() float64 {
	return k.sigma
}

// Size returns the number of weights
func (k Kernel) Size() int {
	return len(k.weights)
}

// Center returns the index of the peak weight
func (k Kernel) Center() int {
	return len(k.weights) / 2
}

// At returns the weight at index i
func (k Kernel) At(i int) float64 {
	return k.weights[i]
}

// Weights returns a copy of the weights
func (k Kernel) Weights() []float64 {
	out := make([]float64, len(k.weights))
	copy(out, k.weights)
	return out
}

// Float32 returns the weights in single precision, the layout a float
// uniform array expects.
func (k Kernel) Float32() []float32 {
	out := make([]float32, len(k.weights))
	for i, w := range k.weights {
		out[i] = float32(w)
	}
	return out
}
