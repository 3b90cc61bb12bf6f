package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetSizeChangeStyle(t *testing.T) {
	assert.Equal(t, CriticalColor, GetSizeChangeStyle(1).GetForeground())
	assert.Equal(t, GoodColor, GetSizeChangeStyle(-1).GetForeground())
	assert.Equal(t, MutedColor, GetSizeChangeStyle(0).GetForeground())
}

func TestGetTrendIcon(t *testing.T) {
	assert.Equal(t, "📈", GetTrendIcon(10))
	assert.Equal(t, "📉", GetTrendIcon(-10))
	assert.Equal(t, "➡️", GetTrendIcon(2))
	assert.Equal(t, "➡️", GetTrendIcon(-2))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", TruncateString("short", 10))
	assert.Equal(t, "long st...", TruncateString("long string here", 10))
	assert.Equal(t, "...", TruncateString("abcdef", 3))
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "7", FormatCount(7))
	assert.Equal(t, "999", FormatCount(999))
	assert.Equal(t, "1,000", FormatCount(1000))
	assert.Equal(t, "1,234,567", FormatCount(1234567))
}
