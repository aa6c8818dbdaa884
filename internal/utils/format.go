package utils

import (
	"strings"

	"github.com/docker/go-units"
)

// bannerText is printed at startup by the interactive generator.
const bannerText = `
 ___ ___       _      _        ___                       _
/ __| _ ) __ _| |_ __| |_     / __|___ _ _  ___ _ _ __ _| |_ ___ _ _
\__ \ _ \/ _' |  _/ _| ' \   | (_ / -_) ' \/ -_) '_/ _' |  _/ _ \ '_|
|___/___/\__,_|\__\__|_||_|   \___\___|_||_\___|_| \__,_|\__\___/_|
`

// Banner returns the startup banner without trailing newlines.
func Banner() string {
	return strings.Trim(bannerText, "\n")
}

// FormatMemoryMB formats a size in megabytes into human-readable binary units
// (e.g. 8000 -> "7.812GiB").
func FormatMemoryMB(mb int64) string {
	if mb <= 0 {
		return "0B"
	}
	return units.BytesSize(float64(mb) * units.MiB)
}
