package mandala

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt(t *testing.T) {
	assert.Equal(t, "A black and white mandala inspired by nature", BuildPrompt("nature"))
	assert.Equal(t, "A black and white mandala inspired by ocean waves", BuildPrompt("  ocean waves \n"))
}

func TestSafeFilename(t *testing.T) {
	tests := []struct {
		seed string
		want string
	}{
		{"nature", "nature"},
		{"Peace Love", "peace_love"},
		{"  Harmony  ", "harmony"},
		{"a  b", "a__b"},
		{"Ünïcode Wörd", "ünïcode_wörd"},
		{"tabs\tstay", "tabs\tstay"},
	}
	for _, tt := range tests {
		t.Run(tt.seed, func(t *testing.T) {
			assert.Equal(t, tt.want, SafeFilename(tt.seed))
		})
	}
}

func TestDownloadName(t *testing.T) {
	assert.Equal(t, "mandala_nature.jpg", DownloadName("nature"))
	assert.Equal(t, "mandala_peace_love.jpg", DownloadName(" Peace Love "))
}

func TestClampSeed(t *testing.T) {
	assert.Equal(t, "short", ClampSeed("short"))

	exact := strings.Repeat("a", MaxSeedLength)
	assert.Equal(t, exact, ClampSeed(exact))

	assert.Equal(t, exact, ClampSeed(exact+"bcd"))

	long := strings.Repeat("é", MaxSeedLength+10)
	clamped := ClampSeed(long)
	assert.True(t, utf8.ValidString(clamped))
	assert.Equal(t, MaxSeedLength, utf8.RuneCountInString(clamped))
}
