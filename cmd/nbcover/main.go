// nbcover is a small companion CLI for notebook coverage data files.
//
// When the host session's suffix mode is auto-generate, each kernel leaves
// behind a uniquely named data file that the test process cannot merge by
// name. "nbcover combine" picks those up afterwards; "nbcover report" prints
// statement coverage for a combined file.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-shellwords"
	"github.com/nbgo/nbcover/coverage"
	"github.com/nbgo/nbcover/internal/log"
	"go.uber.org/multierr"
)

func main() {
	cmd := mainCmd{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	if err := cmd.Run(os.Args[1:]); err != nil && err != flag.ErrHelp {
		fmt.Fprintln(cmd.Stderr, err)
		os.Exit(1)
	}
}

type mainCmd struct {
	Stdout io.Writer
	Stderr io.Writer
}

const _usage = `usage: %v [options] command

Commands:

	combine [-data FILE] [-keep]
		merge every data file named FILE.<suffix> into FILE and
		delete the merged parts.
		-data defaults to .coverage in the current directory.
		-keep retains the parts after merging.
	report [-data FILE] [-source FILTERS]
		print per-file and total statement coverage for FILE.
		FILTERS is a space-separated list of path prefixes limiting
		the report; quote entries containing spaces.

The following flags are available:

	-verbose
		log more output.
`

func (cmd *mainCmd) Run(args []string) error {
	flag := flag.NewFlagSet("nbcover", flag.ContinueOnError)
	flag.SetOutput(cmd.Stderr)
	flag.Usage = func() {
		fmt.Fprintf(flag.Output(), _usage, flag.Name())
	}

	verbose := flag.Bool("verbose", false, "")
	if err := flag.Parse(args); err != nil {
		return err
	}

	logger := log.New(cmd.Stderr)
	if *verbose {
		logger = logger.WithLevel(log.Debug)
	}

	args = flag.Args()
	if len(args) == 0 {
		flag.Usage()
		return fmt.Errorf("no command given")
	}

	switch args[0] {
	case "combine":
		return cmd.combine(logger, args[1:])
	case "report":
		return cmd.report(args[1:])
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

// combine merges every sibling data file of the base file into it. This is
// the collection step for auto-suffixed recordings.
func (cmd *mainCmd) combine(logger *log.Logger, args []string) (err error) {
	flag := flag.NewFlagSet("nbcover combine", flag.ContinueOnError)
	flag.SetOutput(cmd.Stderr)
	data := flag.String("data", ".coverage", "")
	keep := flag.Bool("keep", false, "")
	if err := flag.Parse(args); err != nil {
		return err
	}

	base, err := filepath.Abs(*data)
	if err != nil {
		return fmt.Errorf("resolve data file: %w", err)
	}

	parts, err := filepath.Glob(base + ".*")
	if err != nil {
		return fmt.Errorf("find data files: %w", err)
	}
	if len(parts) == 0 {
		return fmt.Errorf("no data files found for %v", base)
	}

	combined := coverage.NewSet()
	if _, serr := os.Stat(base); serr == nil {
		if err := combined.ReadFile(base); err != nil {
			return err
		}
	}

	var merged []string
	for _, part := range parts {
		fresh := coverage.NewSet()
		if rerr := fresh.ReadFile(part); rerr != nil {
			logger.Debug("skipping unreadable data file", "file", part)
			continue
		}
		if uerr := combined.Update(fresh, nil); uerr != nil {
			err = multierr.Append(err, fmt.Errorf("%v: %w", part, uerr))
			continue
		}
		logger.Debug("combined data file", "file", part)
		merged = append(merged, part)
	}
	if err != nil {
		return err
	}

	if err := combined.WriteFile(base); err != nil {
		return err
	}

	if !*keep {
		for _, part := range merged {
			err = multierr.Append(err, os.Remove(part))
		}
	}

	fmt.Fprintf(cmd.Stdout, "combined %v data files into %v\n", len(merged), base)
	return err
}

// report prints statement coverage for the base data file, optionally
// limited to files under the given source prefixes.
func (cmd *mainCmd) report(args []string) error {
	flag := flag.NewFlagSet("nbcover report", flag.ContinueOnError)
	flag.SetOutput(cmd.Stderr)
	data := flag.String("data", ".coverage", "")
	source := flag.String("source", "", "")
	if err := flag.Parse(args); err != nil {
		return err
	}

	filters, err := shellwords.Parse(*source)
	if err != nil {
		return fmt.Errorf("parse source filters: %w", err)
	}

	set := coverage.NewSet()
	if err := set.ReadFile(*data); err != nil {
		return err
	}

	var total, covered int
	for _, file := range set.Files() {
		if !matchesAny(file, filters) {
			continue
		}
		ft, fc := set.Stmts(file)
		total += ft
		covered += fc
		fmt.Fprintf(cmd.Stdout, "%v\t%v\n", file, percent(fc, ft))
	}
	fmt.Fprintf(cmd.Stdout, "total\t%v\n", percent(covered, total))
	return nil
}

func matchesAny(file string, filters []string) bool {
	if len(filters) == 0 {
		return true
	}
	for _, f := range filters {
		if file == f || strings.HasPrefix(file, strings.TrimSuffix(f, "/")+"/") {
			return true
		}
	}
	return false
}

func percent(covered, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", 100*float64(covered)/float64(total))
}
