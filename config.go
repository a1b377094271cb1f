package nbcover

// Location identifies where in a test run a warning originated.
type Location struct {
	// File is the notebook file being executed.
	File string

	// Cell is the index of the cell under execution, if known.
	Cell int
}

// Config is the slice of the test-run configuration that nbcover consumes.
type Config interface {
	// CovSource reports the configured source path filters.
	CovSource() []string

	// CovConfig reports the path to an external coverage configuration
	// file, or an empty string.
	CovConfig() string

	// Warn emits a categorized warning tied to a location.
	Warn(code, message string, loc Location)

	// PluginManager answers questions about optional integrations.
	PluginManager() PluginManager
}

// PluginManager resolves optional plugins by name.
type PluginManager interface {
	// HasPlugin reports whether a plugin with the given name is
	// registered.
	HasPlugin(name string) bool

	// Plugin fetches the named plugin's object. Only valid for names
	// that HasPlugin reported true for.
	Plugin(name string) any
}
