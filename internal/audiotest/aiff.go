// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"encoding/binary"
	"math/bits"
)

// AIFF16 builds a minimal big-endian 16-bit AIFF file with COMM and SSND
// chunks.
func AIFF16(sampleRate, channels int, samples []int16) []byte {
	buf := new(bytes.Buffer)

	frames := len(samples) / channels
	ssndSize := uint32(8 + len(samples)*2)

	buf.WriteString("FORM")
	binary.Write(buf, binary.BigEndian, uint32(4+8+18+8)+ssndSize)
	buf.WriteString("AIFF")

	buf.WriteString("COMM")
	binary.Write(buf, binary.BigEndian, uint32(18))
	binary.Write(buf, binary.BigEndian, uint16(channels))
	binary.Write(buf, binary.BigEndian, uint32(frames))
	binary.Write(buf, binary.BigEndian, uint16(16))
	buf.Write(extended(sampleRate))

	buf.WriteString("SSND")
	binary.Write(buf, binary.BigEndian, ssndSize)
	binary.Write(buf, binary.BigEndian, uint32(0)) // offset
	binary.Write(buf, binary.BigEndian, uint32(0)) // block size
	binary.Write(buf, binary.BigEndian, samples)

	return buf.Bytes()
}

// extended encodes a positive integer as an 80-bit IEEE 754 extended float,
// the form AIFF uses for the sample rate.
func extended(v int) []byte {
	out := make([]byte, 10)
	if v <= 0 {
		return out
	}
	e := bits.Len64(uint64(v)) - 1
	binary.BigEndian.PutUint16(out, uint16(16383+e))
	binary.BigEndian.PutUint64(out[2:], uint64(v)<<(63-e))
	return out
}
