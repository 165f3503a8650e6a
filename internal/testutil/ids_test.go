package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixedIDGeneratorReturnsSameID(t *testing.T) {
	gen := NewFixedIDGenerator("exec-001")

	assert.Equal(t, "exec-001", gen.Generate())
	assert.Equal(t, "exec-001", gen.Generate())
}

func TestFixedIDGeneratorDefault(t *testing.T) {
	gen := NewFixedIDGenerator("")

	assert.Equal(t, "test-execution-default", gen.Generate())
}
