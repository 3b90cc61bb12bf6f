package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMemorySize(t *testing.T) {
	tests := []struct {
		input string
		want  MemorySize
	}{
		{"100", 100 * Byte},
		{"100B", 100 * Byte},
		{"1K", KB},
		{"1024K", MB},
		{"1.5M", MB + 512*KB},
		{"2G", 2 * GB},
		{"1T", TB},
		{" 9M ", 9 * MB},
	}
	for _, tt := range tests {
		got, err := ParseMemorySize(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}
}

func TestParseMemorySizeInvalid(t *testing.T) {
	for _, input := range []string{"", "abc", "1X2", "M"} {
		_, err := ParseMemorySize(input)
		assert.Error(t, err, input)
	}
}

func TestMustParseMemorySize(t *testing.T) {
	assert.Equal(t, 2*GB, MustParseMemorySize("2G"))
	assert.Panics(t, func() { MustParseMemorySize("nonsense") })
}

func TestMemorySizeString(t *testing.T) {
	assert.Equal(t, "0B", MemorySize(0).String())
	assert.Equal(t, "100B", MemorySize(100).String())
	assert.Equal(t, "1K", KB.String())
	assert.Equal(t, "1.50M", (MB + 512*KB).String())
	assert.Equal(t, "2G", (2 * GB).String())
	assert.Equal(t, "-1K", (-KB).String())
}

func TestMemorySizeRoundTrip(t *testing.T) {
	for _, s := range []string{"512B", "1K", "9M", "2G"} {
		assert.Equal(t, s, MustParseMemorySize(s).String())
	}
}
