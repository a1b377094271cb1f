package nbcover

import "github.com/nbgo/nbcover/coverage"

// _coverPluginName is the name under which a host-level coverage plugin
// registers itself.
const _coverPluginName = "cover"

// CoverPlugin is the shape of the host-level coverage plugin's object. The
// plugin exposes the recorder that spans the whole test run, or nil when it
// is configured but not recording.
type CoverPlugin interface {
	ActiveRecorder() *coverage.Recorder
}

// hostRecorder returns the host session's recorder, or nil if no coverage
// plugin is registered or it has no active recorder.
//
// Probe with HasPlugin before fetching: fetching an unregistered plugin is
// allowed to panic in older plugin managers.
func hostRecorder(cfg Config) *coverage.Recorder {
	pm := cfg.PluginManager()
	if pm == nil || !pm.HasPlugin(_coverPluginName) {
		return nil
	}

	plugin, ok := pm.Plugin(_coverPluginName).(CoverPlugin)
	if !ok {
		return nil
	}
	return plugin.ActiveRecorder()
}
