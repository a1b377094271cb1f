package coverage

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"golang.org/x/tools/cover"
)

// Supported coverage modes. They match the modes of the cover tool: "set"
// records whether a block ran, "count" and "atomic" record how often.
const (
	ModeSet    = "set"
	ModeCount  = "count"
	ModeAtomic = "atomic"
)

// Block identifies a range of statements within a source file.
type Block struct {
	StartLine, StartCol int
	EndLine, EndCol     int
	NumStmt             int
}

// Set is an in-memory aggregate of coverage recordings, keyed by file name.
// A Set starts empty and accumulates data through Add, ReadFile, and Update.
//
// Set is not safe for concurrent use.
type Set struct {
	mode  string
	files map[string]*fileCover
}

type fileCover struct {
	blocks   []Block
	counters []uint32
	index    map[Block]int
}

// NewSet builds a new, empty coverage aggregate.
func NewSet() *Set {
	return &Set{files: make(map[string]*fileCover)}
}

// Mode reports the coverage mode of the data held by this set, or an empty
// string if the set has seen no data yet.
func (s *Set) Mode() string { return s.mode }

// Empty reports whether the set holds no coverage data.
func (s *Set) Empty() bool { return len(s.files) == 0 }

// Files returns the names of all files with recorded data, sorted.
func (s *Set) Files() []string {
	names := make([]string, 0, len(s.files))
	for name := range s.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Add records an execution count for a block of the given file. Counts for
// a block already present accumulate according to the set's mode.
func (s *Set) Add(file string, blk Block, count uint32) {
	if s.mode == "" {
		s.mode = ModeSet
	}
	s.add(file, blk, count)
}

func (s *Set) add(file string, blk Block, count uint32) {
	fc := s.files[file]
	if fc == nil {
		fc = &fileCover{index: make(map[Block]int)}
		s.files[file] = fc
	}

	i, ok := fc.index[blk]
	if !ok {
		fc.index[blk] = len(fc.blocks)
		fc.blocks = append(fc.blocks, blk)
		fc.counters = append(fc.counters, count)
		return
	}

	if s.mode == ModeCount || s.mode == ModeAtomic {
		fc.counters[i] += count
	} else {
		fc.counters[i] |= count
	}
}

// Count reports the execution count recorded for an exact block of the
// given file, or zero if the block is unknown.
func (s *Set) Count(file string, blk Block) uint32 {
	fc := s.files[file]
	if fc == nil {
		return 0
	}
	i, ok := fc.index[blk]
	if !ok {
		return 0
	}
	return fc.counters[i]
}

// Covered reports whether the given line of the given file lies inside a
// block that was executed at least once.
func (s *Set) Covered(file string, line int) bool {
	fc := s.files[file]
	if fc == nil {
		return false
	}
	for i, blk := range fc.blocks {
		if fc.counters[i] > 0 && blk.StartLine <= line && line <= blk.EndLine {
			return true
		}
	}
	return false
}

// Stmts reports the total and executed statement counts for the given file.
func (s *Set) Stmts(file string) (total, covered int) {
	fc := s.files[file]
	if fc == nil {
		return 0, 0
	}
	for i, blk := range fc.blocks {
		total += blk.NumStmt
		if fc.counters[i] > 0 {
			covered += blk.NumStmt
		}
	}
	return total, covered
}

// Update merges another set into this one. File names of the incoming data
// are rewritten through the alias table, if one is given, before merging.
// Counters for blocks present on both sides accumulate according to mode.
func (s *Set) Update(other *Set, aliases *PathAliases) error {
	if other == nil || other.Empty() {
		return nil
	}
	if s.mode == "" {
		s.mode = other.mode
	} else if other.mode != "" && other.mode != s.mode {
		return fmt.Errorf("merge coverage data: mode %q does not match %q", other.mode, s.mode)
	}

	for _, name := range other.Files() {
		fc := other.files[name]
		mapped := aliases.Map(name)
		for i, blk := range fc.blocks {
			s.add(mapped, blk, fc.counters[i])
		}
	}
	return nil
}

// ReadFile loads a coverage profile in the standard cover format into this
// set, merging with any data already held.
func (s *Set) ReadFile(path string) error {
	profiles, err := cover.ParseProfiles(path)
	if err != nil {
		return err
	}

	for _, p := range profiles {
		if s.mode == "" {
			s.mode = p.Mode
		} else if p.Mode != s.mode {
			return fmt.Errorf("%v: unexpected coverage mode %q, expected %q", path, p.Mode, s.mode)
		}
		for _, blk := range p.Blocks {
			s.add(p.FileName, Block{
				StartLine: blk.StartLine,
				StartCol:  blk.StartCol,
				EndLine:   blk.EndLine,
				EndCol:    blk.EndCol,
				NumStmt:   blk.NumStmt,
			}, uint32(blk.Count))
		}
	}
	return nil
}

// WriteFile writes the set to the given path in the standard cover profile
// format, replacing the file if it exists.
func (s *Set) WriteFile(path string) error {
	var sb strings.Builder
	mode := s.mode
	if mode == "" {
		mode = ModeSet
	}
	fmt.Fprintf(&sb, "mode: %v\n", mode)

	for _, name := range s.Files() {
		fc := s.files[name]
		for i, blk := range fc.blocks {
			fmt.Fprintf(&sb, "%v:%v.%v,%v.%v %v %v\n",
				name,
				blk.StartLine, blk.StartCol,
				blk.EndLine, blk.EndCol,
				blk.NumStmt, fc.counters[i])
		}
	}

	return os.WriteFile(path, []byte(sb.String()), 0o644)
}
