package nbcover

import (
	"os"
	"sort"

	"github.com/nbgo/nbcover/coverage"
	"github.com/nbgo/nbcover/internal/log"
)

// mergeKernelData folds the kernel recorder's on-disk data file into the
// host session's in-memory aggregate and removes the file.
//
// Most ways this can come up short are deliberately silent: no host session
// means there is nothing to merge into, an auto-generated suffix means the
// file is meant for an external combine step, and a missing or unreadable
// file means the kernel produced no coverage (it may have failed before
// running any code). None of those are failures of the notebook under test.
func mergeKernelData(rec *coverage.Recorder, lg *log.Logger) error {
	if rec == nil {
		return nil
	}

	suffix := resolveSuffix(rec)
	if suffix.Auto {
		lg.Debug("kernel data file has an auto-generated suffix, leaving it for combine")
		return nil
	}

	filename := rec.DataFile() + "." + suffix.Value

	fresh := coverage.NewSet()
	if err := fresh.ReadFile(filename); err != nil {
		lg.Debug("no kernel coverage data to merge", "file", filename)
		return nil
	}

	if err := rec.Data().Update(fresh, pathAliases(rec)); err != nil {
		lg.Debug("discarding unmergeable kernel coverage data",
			"file", filename, "error", err)
		return nil
	}

	lg.Debug("merged kernel coverage data", "file", filename)

	// The data now lives in the host aggregate; the transient file must
	// not be picked up again by a later combine.
	return os.Remove(filename)
}

// pathAliases builds the alias table from the host recorder's path-mapping
// rules, mirroring how the host recorder itself normalizes distributed
// data: the first entry of each rule set is the canonical form, the rest
// are patterns rewritten to it.
func pathAliases(rec *coverage.Recorder) *coverage.PathAliases {
	paths := rec.Paths()
	if len(paths) == 0 {
		return nil
	}

	names := make([]string, 0, len(paths))
	for name := range paths {
		names = append(names, name)
	}
	sort.Strings(names)

	var aliases coverage.PathAliases
	for _, name := range names {
		rules := paths[name]
		if len(rules) < 2 {
			continue
		}
		result := rules[0]
		for _, pattern := range rules[1:] {
			aliases.Add(pattern, result)
		}
	}
	return &aliases
}
