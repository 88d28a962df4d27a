package number

import "math"

// Cos returns cos(a+jb) = cos(a)cosh(b) - j·sin(a)sinh(b).
func (c Complex) Cos() (Complex, error) {
	if err := checkNaN(c); err != nil {
		return Complex{}, err
	}
	return cos(c), nil
}

func cos(c Complex) Complex {
	return Complex{
		re: cosR(c.re) * math.Cosh(c.im),
		im: -sinR(c.re) * math.Sinh(c.im),
	}
}

// Sin returns sin(a+jb) = sin(a)cosh(b) + j·cos(a)sinh(b).
func (c Complex) Sin() (Complex, error) {
	if err := checkNaN(c); err != nil {
		return Complex{}, err
	}
	return sin(c), nil
}

func sin(c Complex) Complex {
	return Complex{
		re: sinR(c.re) * math.Cosh(c.im),
		im: cosR(c.re) * math.Sinh(c.im),
	}
}

// Tan returns sin(c)/cos(c).
func (c Complex) Tan() (Complex, error) {
	if err := checkNaN(c); err != nil {
		return Complex{}, err
	}
	return sin(c).Div(cos(c))
}

// Asin returns j·log(sqrt(1-c²) - j·c).
func (c Complex) Asin() (Complex, error) {
	if err := checkNaN(c); err != nil {
		return Complex{}, err
	}
	return asin(c)
}

func asin(c Complex) (Complex, error) {
	root, err := One().Sub(mul(c, c))
	if err != nil {
		return Complex{}, err
	}
	if root, err = root.Sqrt(); err != nil {
		return Complex{}, err
	}
	arg, err := root.Sub(mul(I(), c))
	if err != nil {
		return Complex{}, err
	}
	l, err := arg.Log()
	if err != nil {
		return Complex{}, err
	}
	return mul(I(), l), nil
}

// Acos returns π/2 - asin(c).
func (c Complex) Acos() (Complex, error) {
	if err := checkNaN(c); err != nil {
		return Complex{}, err
	}
	a, err := asin(c)
	if err != nil {
		return Complex{}, err
	}
	return Real(math.Pi / 2).Sub(a)
}

// Atan returns -j/2·log((1+j·c)/(1-j·c)).
func (c Complex) Atan() (Complex, error) {
	if err := checkNaN(c); err != nil {
		return Complex{}, err
	}
	jc := mul(I(), c)
	num, err := One().Add(jc)
	if err != nil {
		return Complex{}, err
	}
	den, err := One().Sub(jc)
	if err != nil {
		return Complex{}, err
	}
	q, err := num.Div(den)
	if err != nil {
		return Complex{}, err
	}
	l, err := q.Log()
	if err != nil {
		return Complex{}, err
	}
	return mul(New(0, -0.5), l), nil
}
