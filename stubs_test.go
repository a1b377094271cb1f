package nbcover

import "github.com/nbgo/nbcover/coverage"

// Hand-rolled test doubles for the configuration surface. The kernel side
// uses gomock instead; see kerneltest.

type warning struct {
	code, message string
	loc           Location
}

type fakeConfig struct {
	covSource []string
	covConfig string
	plugins   fakePlugins
	warnings  []warning
}

var _ Config = (*fakeConfig)(nil)

func (c *fakeConfig) CovSource() []string { return c.covSource }

func (c *fakeConfig) CovConfig() string { return c.covConfig }

func (c *fakeConfig) Warn(code, message string, loc Location) {
	c.warnings = append(c.warnings, warning{code, message, loc})
}

func (c *fakeConfig) PluginManager() PluginManager { return c.plugins }

type fakePlugins map[string]any

func (p fakePlugins) HasPlugin(name string) bool {
	_, ok := p[name]
	return ok
}

func (p fakePlugins) Plugin(name string) any { return p[name] }

type coverPlugin struct{ rec *coverage.Recorder }

func (p *coverPlugin) ActiveRecorder() *coverage.Recorder { return p.rec }

// configWithRecorder builds a configuration whose plugin manager reports a
// host-level coverage plugin with the given recorder.
func configWithRecorder(rec *coverage.Recorder) *fakeConfig {
	return &fakeConfig{
		plugins: fakePlugins{_coverPluginName: &coverPlugin{rec: rec}},
	}
}
