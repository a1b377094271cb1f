package nbcover

import (
	"testing"

	"github.com/nbgo/nbcover/coverage"
	"github.com/stretchr/testify/assert"
)

func TestHostRecorder(t *testing.T) {
	t.Parallel()

	t.Run("plugin not registered", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, hostRecorder(&fakeConfig{}))
	})

	t.Run("plugin has unexpected shape", func(t *testing.T) {
		t.Parallel()

		cfg := &fakeConfig{plugins: fakePlugins{_coverPluginName: "not a plugin"}}
		assert.Nil(t, hostRecorder(cfg))
	})

	t.Run("plugin registered but not recording", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, hostRecorder(configWithRecorder(nil)))
	})

	t.Run("active recorder", func(t *testing.T) {
		t.Parallel()

		rec := newTestRecorder(t, coverage.SuffixMode{})
		assert.Same(t, rec, hostRecorder(configWithRecorder(rec)))
	})
}
