// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// DBToGain converts a level in decibels to a linear amplitude multiplier.
// -6 dB is roughly half amplitude; 0 dB is unity.
func DBToGain(db float64) float32 {
	return float32(math.Pow(10, db/20))
}
