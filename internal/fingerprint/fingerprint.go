// Package fingerprint provides deterministic content checksums for loaded statutes.
package fingerprint

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

const prefix = "xxh64:"

// Text returns a stable checksum of the normalized text.
// Same text always yields the same checksum. Used to skip reloads that change nothing.
func Text(text string) string {
	return fmt.Sprintf("%s%016x", prefix, xxhash.Sum64String(text))
}
