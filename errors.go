// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"errors"
	"fmt"
)

// Input names used in errors and logs.
const (
	InputSpeech = "speech"
	InputMusic  = "music"
)

var (
	// ErrUnsupportedFormat indicates no decoder is registered for the detected format.
	ErrUnsupportedFormat = errors.New("unsupported audio format")

	// ErrUnknownEncoder indicates an output format with no encoder.
	ErrUnknownEncoder = errors.New("unknown output format")
)

// DecodeError reports that one of the two inputs could not be read as audio.
type DecodeError struct {
	// Input is InputSpeech or InputMusic.
	Input string
	// Format is the format key the engine tried, if any.
	Format string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Format != "" {
		return fmt.Sprintf("decoding %s (%s): %v", e.Input, e.Format, e.Err)
	}
	return fmt.Sprintf("decoding %s: %v", e.Input, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError reports that the mix could not be rendered to the output format.
type EncodeError struct {
	Format string
	Err    error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encoding %s: %v", e.Format, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// InvalidInputError reports a violated structural precondition, such as an
// empty input buffer or an out of range option.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
