package main

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	svg := render(rand.New(rand.NewPCG(1, 1)))

	assert.True(t, strings.HasPrefix(svg, `<svg width="500" height="500"`))
	assert.Contains(t, svg, `fill="#1B4D28"`)
	assert.Contains(t, svg, `opacity="0.95"`)

	start := strings.Index(svg, `d="`)
	require.Positive(t, start)
	path := svg[start+3:]
	path = path[:strings.Index(path, `"`)]

	assert.True(t, strings.HasPrefix(path, "M "))
	assert.True(t, strings.HasSuffix(path, " Z"))
	// Outer and inner edges, one segment per step each.
	assert.Equal(t, 2*(steps+1)-1, strings.Count(path, "L "))
}

func TestRenderDeterministicWithSeed(t *testing.T) {
	a := render(rand.New(rand.NewPCG(7, 7)))
	b := render(rand.New(rand.NewPCG(7, 7)))
	assert.Equal(t, a, b)

	c := render(rand.New(rand.NewPCG(8, 8)))
	assert.NotEqual(t, a, c)
}
