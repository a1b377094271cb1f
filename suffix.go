package nbcover

import "github.com/nbgo/nbcover/coverage"

// _suffixTag marks data files written by nbcover's kernel-side recorders, so
// they stay distinguishable from stray coverage files and findable at merge
// time.
const _suffixTag = "nbcover"

// resolveSuffix computes the suffix for the kernel recorder's data file from
// the host session's suffixing mode. It is called once at setup and again at
// merge time, and must return the same value both times for the same
// recorder state.
//
//   - No host recorder, or no suffix configured: the tag alone.
//   - Explicit suffix "S": "S.nbcover", unique and still ours to find.
//   - Auto-generate: propagated unchanged. The kernel recorder picks its own
//     unique name, which this core cannot know; merging is skipped and the
//     file is left for an external combine step.
func resolveSuffix(rec *coverage.Recorder) coverage.SuffixMode {
	if rec == nil {
		return coverage.SuffixMode{Value: _suffixTag}
	}

	mode := rec.SuffixMode()
	switch {
	case mode.Auto:
		return mode
	case mode.Value != "":
		return coverage.SuffixMode{Value: mode.Value + "." + _suffixTag}
	default:
		return coverage.SuffixMode{Value: _suffixTag}
	}
}
