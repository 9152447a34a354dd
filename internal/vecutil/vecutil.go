// SPDX-License-Identifier: MIT

// Package vecutil wraps the small slice of gonum.org/v1/gonum/floats
// used by the admm package for infinity norms, elementwise vector
// arithmetic and dot products, keeping it free of a direct gonum
// import.
package vecutil

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// InfNorm returns max(|x[i]|) over x, or 0 for an empty slice.
func InfNorm(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return floats.Norm(x, math.Inf(1))
}

// Sub sets dst = a - b elementwise and returns dst. dst, a, b must have
// equal length.
func Sub(dst, a, b []float64) []float64 {
	copy(dst, a)
	floats.SubTo(dst, dst, b)
	return dst
}

// AddScaled sets dst = a + alpha*b elementwise and returns dst.
func AddScaled(dst, a []float64, alpha float64, b []float64) []float64 {
	copy(dst, a)
	floats.AddScaled(dst, alpha, b)
	return dst
}

// Scale sets dst = alpha*x elementwise and returns dst.
func Scale(dst []float64, alpha float64, x []float64) []float64 {
	copy(dst, x)
	floats.Scale(alpha, dst)
	return dst
}

// Dot returns the dot product of a and b.
func Dot(a, b []float64) float64 {
	return floats.Dot(a, b)
}
