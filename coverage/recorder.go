package coverage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const _defaultDataFile = ".coverage"

// Options configures a Recorder.
type Options struct {
	// DataFile is the base path of the data file. Defaults to ".coverage"
	// in the current directory. The effective on-disk path also depends
	// on Suffix.
	DataFile string

	// Source restricts recording to files under any of these paths.
	// Empty means record everything.
	Source []string

	// ConfigFile is an optional external coverage configuration file.
	// Values from the file fill in options left unset here.
	ConfigFile string

	// Suffix controls the data file's name relative to DataFile.
	Suffix SuffixMode

	// AutoData makes Save append to pre-existing data in the data file
	// instead of replacing it.
	AutoData bool

	// Mode is the coverage mode (set, count, atomic). Defaults to set.
	Mode string

	// Debug enables diagnostics in collaborators that honor it.
	Debug bool
}

// Recorder is one coverage recording session. The host test process owns one
// for the whole run; the code injected into a kernel owns one per notebook.
//
// A Recorder only accepts data between Start and Stop. It does not observe
// execution by itself; the runtime hosting it feeds it through Record.
type Recorder struct {
	opts  Options
	file  string // effective on-disk path, suffix applied
	paths map[string][]string
	data  *Set

	started bool
	loaded  bool

	warnNoData           bool
	warnUnimportedSource bool
}

// New builds a Recorder from the given options, consulting the external
// configuration file if one is named.
func New(opts Options) (*Recorder, error) {
	var paths map[string][]string
	if opts.ConfigFile != "" {
		cfg, err := loadFileConfig(opts.ConfigFile)
		if err != nil {
			return nil, err
		}
		if opts.DataFile == "" {
			opts.DataFile = cfg.DataFile
		}
		if len(opts.Source) == 0 {
			opts.Source = cfg.Source
		}
		paths = cfg.Paths
	}

	if opts.DataFile == "" {
		opts.DataFile = _defaultDataFile
	}
	base, err := filepath.Abs(opts.DataFile)
	if err != nil {
		return nil, fmt.Errorf("resolve data file: %w", err)
	}
	opts.DataFile = base

	file := base
	switch {
	case opts.Suffix.Auto:
		file = base + "." + autoSuffix()
	case opts.Suffix.Value != "":
		file = base + "." + opts.Suffix.Value
	}

	data := NewSet()
	if opts.Mode != "" {
		data.mode = opts.Mode
	}

	return &Recorder{
		opts:                 opts,
		file:                 file,
		paths:                paths,
		data:                 data,
		warnNoData:           true,
		warnUnimportedSource: true,
	}, nil
}

// autoSuffix builds a suffix unique across hosts, processes, and sessions.
func autoSuffix() string {
	host, err := os.Hostname()
	if err != nil {
		host = "unknown"
	}
	rand := uuid.NewString()
	if i := strings.IndexByte(rand, '-'); i > 0 {
		rand = rand[:i]
	}
	return fmt.Sprintf("%v.%v.%v", host, os.Getpid(), rand)
}

// Load reads any pre-existing data for this recorder's data file into
// memory. A missing file is not an error.
func (r *Recorder) Load() error {
	r.loaded = true
	if _, err := os.Stat(r.file); err != nil {
		return nil
	}
	return r.data.ReadFile(r.file)
}

// Start begins accepting recorded data.
func (r *Recorder) Start() { r.started = true }

// Stop ends the recording. Data already recorded is retained.
func (r *Recorder) Stop() { r.started = false }

// Started reports whether the recorder is currently accepting data.
func (r *Recorder) Started() bool { return r.started }

// Record feeds one executed block into the recorder. Calls before Start or
// after Stop are ignored, as are files excluded by the source filter.
func (r *Recorder) Record(file string, blk Block, count uint32) {
	if !r.started || !r.inSource(file) {
		return
	}
	r.data.Add(file, blk, count)
}

func (r *Recorder) inSource(file string) bool {
	if len(r.opts.Source) == 0 {
		return true
	}
	cf := cleanSlash(file)
	for _, src := range r.opts.Source {
		cs := cleanSlash(src)
		if cf == cs || strings.HasPrefix(cf, cs+"/") {
			return true
		}
	}
	return false
}

// Save persists the in-memory data to the recorder's data file. With
// AutoData, pre-existing data in the file is folded in first rather than
// overwritten.
func (r *Recorder) Save() error {
	if r.opts.AutoData && !r.loaded {
		if err := r.Load(); err != nil {
			return fmt.Errorf("load existing data: %w", err)
		}
	}
	if err := r.data.WriteFile(r.file); err != nil {
		return fmt.Errorf("save coverage data: %w", err)
	}
	return nil
}

// Warnings reports session-level anomalies: no data collected, or source
// filters that matched nothing. Both can be silenced with the SetWarn
// methods; partial notebook runs produce them routinely.
func (r *Recorder) Warnings() []string {
	var warns []string
	if r.warnNoData && r.data.Empty() {
		warns = append(warns, "no coverage data collected")
	}
	if r.warnUnimportedSource {
		for _, src := range r.opts.Source {
			if !r.sourceSeen(src) {
				warns = append(warns, fmt.Sprintf("source %q was never recorded", src))
			}
		}
	}
	return warns
}

func (r *Recorder) sourceSeen(src string) bool {
	cs := cleanSlash(src)
	for _, file := range r.data.Files() {
		cf := cleanSlash(file)
		if cf == cs || strings.HasPrefix(cf, cs+"/") {
			return true
		}
	}
	return false
}

// SetWarnNoData controls whether Warnings reports an empty dataset.
func (r *Recorder) SetWarnNoData(warn bool) { r.warnNoData = warn }

// SetWarnUnimportedSource controls whether Warnings reports unmatched source
// filters.
func (r *Recorder) SetWarnUnimportedSource(warn bool) { r.warnUnimportedSource = warn }

// DataFile reports the configured base data file path, without any suffix.
func (r *Recorder) DataFile() string { return r.opts.DataFile }

// FilePath reports the effective on-disk path, with the suffix applied.
func (r *Recorder) FilePath() string { return r.file }

// SuffixMode reports how this recorder suffixes its data file.
func (r *Recorder) SuffixMode() SuffixMode { return r.opts.Suffix }

// Source reports the configured source filters.
func (r *Recorder) Source() []string { return r.opts.Source }

// ConfigFile reports the configured external configuration file, if any.
func (r *Recorder) ConfigFile() string { return r.opts.ConfigFile }

// Debug reports whether diagnostics were requested.
func (r *Recorder) Debug() bool { return r.opts.Debug }

// Paths reports the path alias rule sets from the external configuration
// file. Within each set, the first entry is the canonical form.
func (r *Recorder) Paths() map[string][]string { return r.paths }

// Data is the live in-memory aggregate for this session. Merging another
// session's data happens through Data().Update.
func (r *Recorder) Data() *Set { return r.data }
