// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"fmt"

	"github.com/ik5/audmix/audio"
)

// ErrUnsupportedChannels indicates a FLAC layout other than mono or stereo.
var ErrUnsupportedChannels = fmt.Errorf("%w: FLAC channel count", audio.ErrUnsupportedEncoding)
