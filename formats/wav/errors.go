// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"

	"github.com/ik5/audmix/audio"
)

var (
	ErrNotWavFile           = errors.New("not a WAV file")
	ErrUnsupportedWavLayout = errors.New("unsupported WAV layout")
	ErrEmptyBuffer          = errors.New("nothing to encode")

	// Both wrap audio.ErrUnsupportedEncoding.
	ErrOnlyPCMSupported    = fmt.Errorf("%w: WAV data is neither integer PCM nor IEEE float", audio.ErrUnsupportedEncoding)
	ErrUnsupportedBitDepth = fmt.Errorf("%w: WAV bit depth", audio.ErrUnsupportedEncoding)
)
