// SPDX-License-Identifier: EPL-2.0

package utils

// Float32ToInt16 converts a sample in [-1,1] to 16-bit PCM.
// Values outside the range are clamped, never wrapped.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// 32767 for positive max to avoid overflow
	return int16(x * 32767.0)
}

// Int16ToFloat32 converts a 16-bit PCM sample to [-1,1).
func Int16ToFloat32(v int16) float32 {
	return float32(v) / 32768.0
}

// Float32sToInts converts src into dst as 16-bit PCM values held in ints,
// the layout go-audio buffers use. dst must be at least len(src) long.
func Float32sToInts(dst []int, src []float32) {
	for i, x := range src {
		dst[i] = int(Float32ToInt16(x))
	}
}
