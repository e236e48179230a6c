// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"encoding/binary"
	"math"
)

// WAVE format tags.
const (
	TagPCM        = 0x0001
	TagIEEEFloat  = 0x0003
	TagALaw       = 0x0006
	TagExtensible = 0xFFFE
)

// tail of the KSDATAFORMAT_SUBTYPE GUIDs that follows the format tag
var subFormatGUID = []byte{0x00, 0x00, 0x00, 0x00, 0x10, 0x00, 0x80, 0x00, 0x00, 0xAA, 0x00, 0x38, 0x9B, 0x71}

func riffWAV(sampleRate, channels, bits int, tag uint16, fmtExt, raw []byte) []byte {
	buf := new(bytes.Buffer)

	blockAlign := uint16(channels * bits / 8)
	fmtSize := uint32(16 + len(fmtExt))

	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, 4+(8+fmtSize)+(8+uint32(len(raw))))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, fmtSize)
	binary.Write(buf, binary.LittleEndian, tag)
	binary.Write(buf, binary.LittleEndian, uint16(channels))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate)*uint32(blockAlign))
	binary.Write(buf, binary.LittleEndian, blockAlign)
	binary.Write(buf, binary.LittleEndian, uint16(bits))
	buf.Write(fmtExt)

	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, uint32(len(raw)))
	buf.Write(raw)

	return buf.Bytes()
}

// RawWAV wraps raw little-endian sample bytes in a RIFF/WAVE file with a
// 16-byte fmt chunk carrying tag.
func RawWAV(sampleRate, channels, bits int, tag uint16, raw []byte) []byte {
	return riffWAV(sampleRate, channels, bits, tag, nil, raw)
}

// ExtensibleWAV is RawWAV with a WAVE_FORMAT_EXTENSIBLE fmt chunk whose
// SubFormat GUID names subFormat.
func ExtensibleWAV(sampleRate, channels, bits int, subFormat uint16, raw []byte) []byte {
	ext := new(bytes.Buffer)
	binary.Write(ext, binary.LittleEndian, uint16(22))   // cbSize
	binary.Write(ext, binary.LittleEndian, uint16(bits)) // valid bits
	binary.Write(ext, binary.LittleEndian, uint32(0))    // channel mask
	binary.Write(ext, binary.LittleEndian, subFormat)
	ext.Write(subFormatGUID)

	return riffWAV(sampleRate, channels, bits, TagExtensible, ext.Bytes(), raw)
}

// Float32Bytes encodes samples as little-endian IEEE 754 single precision.
func Float32Bytes(samples []float32) []byte {
	raw := make([]byte, 4*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint32(raw[4*i:], math.Float32bits(s))
	}
	return raw
}

// WAV16 builds a canonical 44-byte-header PCM 16-bit WAV file.
func WAV16(sampleRate, channels int, samples []int16) []byte {
	raw := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(raw[2*i:], uint16(s))
	}
	return RawWAV(sampleRate, channels, 16, TagPCM, raw)
}

// ToneWAV builds a WAV file holding a sine tone of the given length in frames.
// Every channel carries the same signal.
func ToneWAV(sampleRate, channels, frames int, frequency float64, amplitude float32) []byte {
	wave := Sine(sampleRate, frequency, amplitude)
	samples := make([]int16, frames*channels)
	for f := range frames {
		v := int16(math.Round(float64(wave(f, 0)) * 32767))
		for c := range channels {
			samples[f*channels+c] = v
		}
	}
	return WAV16(sampleRate, channels, samples)
}

// ConstantWAV builds a WAV file where every sample has value v.
func ConstantWAV(sampleRate, channels, frames int, v int16) []byte {
	samples := make([]int16, frames*channels)
	for i := range samples {
		samples[i] = v
	}
	return WAV16(sampleRate, channels, samples)
}
