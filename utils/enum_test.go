package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type testEnum int

const (
	enumA testEnum = iota
	enumB
	enumC
)

func TestGetNextEnum(t *testing.T) {
	assert.Equal(t, enumB, GetNextEnum(enumA, enumC))
	assert.Equal(t, enumC, GetNextEnum(enumB, enumC))
	assert.Equal(t, enumA, GetNextEnum(enumC, enumC))
}

func TestGetPrevEnum(t *testing.T) {
	assert.Equal(t, enumC, GetPrevEnum(enumA, enumC))
	assert.Equal(t, enumA, GetPrevEnum(enumB, enumC))
	assert.Equal(t, enumB, GetPrevEnum(enumC, enumC))
}
