package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringPtr(t *testing.T) {
	p := StringPtr("hello")
	require.NotNil(t, p)
	assert.Equal(t, "hello", *p)
}

func TestFloat64Ptr(t *testing.T) {
	p := Float64Ptr(1)
	require.NotNil(t, p)
	assert.Equal(t, float64(1), *p)
}
