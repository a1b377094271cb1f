package coverage

// SuffixMode selects how a recorder names its data file relative to the
// configured base path.
//
// The zero value means no suffix: the recorder writes to the base path
// as-is.
type SuffixMode struct {
	// Auto directs the recorder to generate its own unique suffix
	// (hostname, pid, and a random component). Data files produced this
	// way cannot be found again by name; they are meant for a later
	// multi-file combine step.
	Auto bool

	// Value is an explicit suffix, appended to the base path after a dot.
	// Ignored when Auto is set.
	Value string
}

// None reports whether no suffixing is configured.
func (m SuffixMode) None() bool {
	return !m.Auto && m.Value == ""
}

func (m SuffixMode) String() string {
	if m.Auto {
		return "auto"
	}
	return m.Value
}
