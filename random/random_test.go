package random

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrGlobal(t *testing.T) {
	assert.Equal(t, Global, OrGlobal(nil))

	r := rand.New(rand.NewSource(1))
	assert.Same(t, r, OrGlobal(r))
}

func TestGlobalRanges(t *testing.T) {
	for i := 0; i < 200; i++ {
		f := Global.Float64()
		assert.True(t, f >= 0 && f < 1)
		n := Global.Intn(7)
		assert.True(t, n >= 0 && n < 7)
	}
}
