package util

import (
	"github.com/fogleman/ease"
)

// GenerateRamp builds a rising look-up table of length entries, eased from 0
// to 1 so that low intensities stay dim on the panel.
func GenerateRamp(length int) []float64 {
	lut := make([]float64, length)
	if length == 1 {
		lut[0] = 1.0
		return lut
	}

	increment := 1.0 / float64(length-1)
	for i := 0; i < length; i++ {
		lut[i] = ease.InOutQuad(float64(i) * increment)
	}
	return lut
}
