// SPDX-License-Identifier: EPL-2.0

// Command audmix mixes a speech recording with background music.
package main

import (
	"os"

	"github.com/ik5/audmix/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
