package registry

import (
	"testing"

	"github.com/khetguard/khetguard/internal/rendering"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGet(t *testing.T) {
	r := New(nil)
	assert.Nil(t, r.Config())

	_, ok := Get(r, RendererKey)
	assert.False(t, ok)

	renderer := rendering.NewUniversalRenderer()
	Set[rendering.Renderer](r, RendererKey, renderer)

	got, ok := Get(r, RendererKey)
	require.True(t, ok)
	assert.Same(t, renderer, got)
}

func TestGet_TypeMismatch(t *testing.T) {
	r := New(nil)
	Set(r, Key[string]("shared"), "value")

	_, ok := Get(r, Key[int]("shared"))
	assert.False(t, ok)
}

func TestMustGet_Panics(t *testing.T) {
	r := New(nil)
	assert.PanicsWithValue(t, "service not found for key: core.publisher", func() {
		MustGet(r, PublisherKey)
	})
}
