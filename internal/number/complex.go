// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package number implements the complex value type used by the calculator.
package number

import (
	"errors"
	"math"
)

// Arithmetic errors.
var (
	ErrDivisionByZero     = errors.New("division by zero")
	ErrUndefinedPhase     = errors.New("phase of zero is undefined")
	ErrUndefinedLog       = errors.New("logarithm of zero is undefined")
	ErrNotANumber         = errors.New("operand is not a number")
	ErrIndeterminatePower = errors.New("zero to the power of zero is indeterminate")
)

// snapEpsilon is the distance under which a real trig factor is replaced by
// the integer it approximates.
const snapEpsilon = 1e-13

// Complex is an immutable complex number with float64 components.
// Two values are equal when both components match exactly.
type Complex struct {
	re float64
	im float64
}

// New returns re + j·im.
func New(re, im float64) Complex {
	return Complex{re: re, im: im}
}

// Real returns a complex number with a zero imaginary part.
func Real(re float64) Complex {
	return Complex{re: re}
}

// Zero returns 0 + j0.
func Zero() Complex { return Complex{} }

// One returns 1 + j0.
func One() Complex { return Complex{re: 1} }

// I returns the imaginary unit.
func I() Complex { return Complex{im: 1} }

// Re returns the real part.
func (c Complex) Re() float64 { return c.re }

// Im returns the imaginary part.
func (c Complex) Im() float64 { return c.im }

// IsZero reports whether both components are exactly zero.
func (c Complex) IsZero() bool { return c.re == 0 && c.im == 0 }

// IsNaN reports whether either component is NaN.
func (c Complex) IsNaN() bool { return math.IsNaN(c.re) || math.IsNaN(c.im) }

func checkNaN(cs ...Complex) error {
	for _, c := range cs {
		if c.IsNaN() {
			return ErrNotANumber
		}
	}
	return nil
}

// Add returns c + o.
func (c Complex) Add(o Complex) (Complex, error) {
	if err := checkNaN(c, o); err != nil {
		return Complex{}, err
	}
	return Complex{re: c.re + o.re, im: c.im + o.im}, nil
}

// Sub returns c - o.
func (c Complex) Sub(o Complex) (Complex, error) {
	if err := checkNaN(c, o); err != nil {
		return Complex{}, err
	}
	return Complex{re: c.re - o.re, im: c.im - o.im}, nil
}

// Mul returns c · o.
func (c Complex) Mul(o Complex) (Complex, error) {
	if err := checkNaN(c, o); err != nil {
		return Complex{}, err
	}
	return mul(c, o), nil
}

func mul(a, b Complex) Complex {
	return Complex{
		re: a.re*b.re - a.im*b.im,
		im: a.re*b.im + a.im*b.re,
	}
}

// Div returns c / o, normalizing by the conjugate of o.
func (c Complex) Div(o Complex) (Complex, error) {
	if err := checkNaN(c, o); err != nil {
		return Complex{}, err
	}
	if o.IsZero() {
		return Complex{}, ErrDivisionByZero
	}
	d := o.re*o.re + o.im*o.im
	return Complex{
		re: (c.re*o.re + c.im*o.im) / d,
		im: (c.im*o.re - c.re*o.im) / d,
	}, nil
}

// Neg returns the additive inverse -c.
func (c Complex) Neg() (Complex, error) {
	if err := checkNaN(c); err != nil {
		return Complex{}, err
	}
	return Complex{re: -c.re, im: -c.im}, nil
}

// Mod returns the modulus |c|.
func (c Complex) Mod() (float64, error) {
	if err := checkNaN(c); err != nil {
		return 0, err
	}
	return modulus(c), nil
}

func modulus(c Complex) float64 {
	return math.Sqrt(c.re*c.re + c.im*c.im)
}

// Arg returns the principal argument of c in (-π, π].
func (c Complex) Arg() (float64, error) {
	if err := checkNaN(c); err != nil {
		return 0, err
	}
	return argument(c)
}

func argument(c Complex) (float64, error) {
	switch {
	case c.re == 0 && c.im > 0:
		return math.Pi / 2, nil
	case c.re == 0 && c.im < 0:
		return -math.Pi / 2, nil
	case c.re > 0:
		return math.Atan(c.im / c.re), nil
	case c.re < 0 && c.im >= 0:
		return math.Atan(c.im/c.re) + math.Pi, nil
	case c.re < 0 && c.im < 0:
		return math.Atan(c.im/c.re) - math.Pi, nil
	}
	return 0, ErrUndefinedPhase
}

// snap replaces v by the nearest integer when it is within snapEpsilon of it,
// so that sin/cos of multiples of π/2 yield exact zeros and units.
func snap(v float64) float64 {
	if r := math.Round(v); math.Abs(v-r) < snapEpsilon {
		return r
	}
	return v
}

func cosR(x float64) float64 { return snap(math.Cos(x)) }
func sinR(x float64) float64 { return snap(math.Sin(x)) }

// polar builds r·(cos θ + j·sin θ).
func polar(r, theta float64) Complex {
	return Complex{re: r * cosR(theta), im: r * sinR(theta)}
}

// Sqrt returns the principal square root of c.
func (c Complex) Sqrt() (Complex, error) {
	if err := checkNaN(c); err != nil {
		return Complex{}, err
	}
	if c.IsZero() {
		return Complex{}, nil
	}
	theta, err := argument(c)
	if err != nil {
		return Complex{}, err
	}
	return polar(math.Sqrt(modulus(c)), theta/2), nil
}

// Pow raises c to a real exponent using the polar form.
func (c Complex) Pow(e float64) (Complex, error) {
	if err := checkNaN(c); err != nil {
		return Complex{}, err
	}
	if math.IsNaN(e) {
		return Complex{}, ErrNotANumber
	}
	if c.IsZero() {
		switch {
		case e == 0:
			return Complex{}, ErrIndeterminatePower
		case e < 0:
			return Complex{}, ErrDivisionByZero
		}
		return Complex{}, nil
	}
	switch e {
	case 0:
		return One(), nil
	case 1:
		return c, nil
	}
	theta, err := argument(c)
	if err != nil {
		return Complex{}, err
	}
	return polar(math.Pow(modulus(c), e), theta*e), nil
}

// Exp returns e^c.
func (c Complex) Exp() (Complex, error) {
	if err := checkNaN(c); err != nil {
		return Complex{}, err
	}
	r := math.Exp(c.re)
	if c.im == 0 {
		return Complex{re: r}, nil
	}
	return polar(r, c.im), nil
}

// Log returns the principal natural logarithm of c.
func (c Complex) Log() (Complex, error) {
	if err := checkNaN(c); err != nil {
		return Complex{}, err
	}
	if c.IsZero() {
		return Complex{}, ErrUndefinedLog
	}
	theta, err := argument(c)
	if err != nil {
		return Complex{}, err
	}
	return Complex{re: math.Log(modulus(c)), im: theta}, nil
}
