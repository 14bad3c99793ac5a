package mandala

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// PromptTemplate is the fixed generation prompt; %s is the trimmed seed.
const PromptTemplate = "A black and white mandala inspired by %s"

// MaxSeedLength is the longest seed, in characters, the input shells accept.
const MaxSeedLength = 50

// BuildPrompt returns the generation prompt for seed.
func BuildPrompt(seed string) string {
	return fmt.Sprintf(PromptTemplate, strings.TrimSpace(seed))
}

// SafeFilename lower-cases the trimmed seed and replaces each space with an
// underscore. No other characters are escaped.
func SafeFilename(seed string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(seed)), " ", "_")
}

// DownloadName returns the suggested file name for the JPEG of seed.
func DownloadName(seed string) string {
	return "mandala_" + SafeFilename(seed) + ".jpg"
}

// ClampSeed truncates s to at most MaxSeedLength characters without
// splitting a UTF-8 sequence.
func ClampSeed(s string) string {
	if utf8.RuneCountInString(s) <= MaxSeedLength {
		return s
	}

	var n int
	for i := 0; i < MaxSeedLength && n < len(s); i++ {
		_, size := utf8.DecodeRuneInString(s[n:])
		n += size
	}
	return s[:n]
}
