package app

import (
	"testing"

	"github.com/khetguard/khetguard/internal/pubsub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(deps Dependencies) []string {
	var out []string
	for _, m := range NewModules(deps) {
		out = append(out, m.Name())
	}
	return out
}

func TestNewModules(t *testing.T) {
	bridge := pubsub.NewWatermillBridge()
	t.Cleanup(func() { _ = bridge.Close() })

	assert.Equal(t, []string{"audit", "dashboard"}, names(Dependencies{Subscriber: bridge}))
}

func TestNewModules_WithoutSubscriber(t *testing.T) {
	got := names(Dependencies{})
	require.Len(t, got, 1)
	assert.Equal(t, "dashboard", got[0])
}
