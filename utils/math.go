// Package utils contains small numeric and parsing helpers shared by the bridge packages.
package utils

import (
	"math"
	"strconv"
	"strings"
)

// Float64AlmostEqual compares two float64s and returns if the difference between them is less than epsilon.
func Float64AlmostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) <= epsilon
}

// SpaceDelimitedStringToFloatSlice splits up space-delimited fields, such as the xyz or rpy
// attributes of a URDF element, and converts them to floats. Unparseable fields become NaN.
func SpaceDelimitedStringToFloatSlice(s string) []float64 {
	var converted []float64
	for _, value := range strings.Fields(s) {
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			f = math.NaN()
		}
		converted = append(converted, f)
	}
	return converted
}
