package main

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ErrBadAngle is returned for angle expressions that are neither numbers nor
// pi forms.
var ErrBadAngle = errors.New("bad angle expression")

// angleExprRegex matches pi, 2pi, 2*pi, pi/2, 3pi/4, 3*pi/4 and their negations.
var angleExprRegex = regexp.MustCompile(`^(-?)(\d*\.?\d*)\s*\*?\s*pi(?:\s*/\s*(\d+\.?\d*))?$`)

// ParseAngle parses a rotation angle.
//
// Supported formats:
//   - Plain numbers: "1.5707", "-0.5", "3.14e-2"
//   - Pi and fractions: "pi", "pi/2", "3pi/4", "3*pi/4"
//   - Negative forms: "-pi", "-2*pi/3"
func ParseAngle(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrBadAngle)
	}
	if val, err := strconv.ParseFloat(s, 64); err == nil {
		return finite(val, s)
	}

	matches := angleExprRegex.FindStringSubmatch(strings.ToLower(s))
	if matches == nil {
		return 0, fmt.Errorf("%w: %q", ErrBadAngle, s)
	}

	coeff := 1.0
	if matches[2] != "" {
		var err error
		if coeff, err = strconv.ParseFloat(matches[2], 64); err != nil {
			return 0, fmt.Errorf("%w: %q", ErrBadAngle, s)
		}
	}
	result := coeff * math.Pi
	if matches[3] != "" {
		denom, err := strconv.ParseFloat(matches[3], 64)
		if err != nil || denom == 0 {
			return 0, fmt.Errorf("%w: %q", ErrBadAngle, s)
		}
		result /= denom
	}
	if matches[1] == "-" {
		result = -result
	}
	return finite(result, s)
}

// finite rejects NaN and infinities, which ParseFloat accepts.
func finite(val float64, s string) (float64, error) {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return 0, fmt.Errorf("%w: %q is not finite", ErrBadAngle, s)
	}
	return val, nil
}

// piForms lists the multiples of pi that FormatAngle writes symbolically.
var piForms = []struct {
	value   float64
	display string
}{
	{2 * math.Pi, "2*pi"},
	{math.Pi, "pi"},
	{math.Pi / 2, "pi/2"},
	{math.Pi / 3, "pi/3"},
	{math.Pi / 4, "pi/4"},
	{math.Pi / 6, "pi/6"},
	{math.Pi / 8, "pi/8"},
	{3 * math.Pi / 4, "3*pi/4"},
	{3 * math.Pi / 2, "3*pi/2"},
	{2 * math.Pi / 3, "2*pi/3"},
}

// FormatAngle writes val in pi notation when it is a common fraction of pi,
// and with %g otherwise.
func FormatAngle(val float64) string {
	for _, pf := range piForms {
		if math.Abs(val-pf.value) < 1e-10 {
			return pf.display
		}
		if math.Abs(val+pf.value) < 1e-10 {
			return "-" + pf.display
		}
	}
	return fmt.Sprintf("%g", val)
}
