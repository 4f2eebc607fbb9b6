package extract

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n", "\u00a0", " ")

// Normalize prepares text for segmentation: line endings become "\n", non-breaking spaces
// become plain spaces, accents are composed (NFC) and outer whitespace is trimmed.
func Normalize(text string) string {
	text = lineEndings.Replace(text)
	text = norm.NFC.String(text)
	return strings.TrimSpace(text)
}
