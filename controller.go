package nbcover

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nbgo/nbcover/internal/log"
	"github.com/nbgo/nbcover/kernel"
)

const (
	// How long to wait for the kernel to finish executing an injected
	// snippet. A minute is plenty to start or flush a recorder.
	_defaultTimeout = 60 * time.Second

	// Language family we can measure.
	_supportedLanguage = "go"

	// Warning category for kernels we cannot measure.
	_categoryUnsupportedLanguage = "C1"
)

// Controller brackets the execution of one notebook with a coverage
// recording session inside its kernel.
type Controller struct {
	// Logger for diagnostics. Defaults to no logging.
	Log *log.Logger

	// Bound on waiting for the kernel to execute an injected snippet.
	// Defaults to a minute.
	Timeout time.Duration
}

// Setup starts a coverage recorder inside the kernel.
//
// Kernels outside the supported language family get a single warning through
// the configuration and are otherwise skipped; that is not an error. A
// kernel that does not become idle within the timeout is, and the caller
// should fail the enclosing test item.
func (c *Controller) Setup(cfg Config, k kernel.Kernel, loc Location, outputDir string) error {
	language := k.Language()
	if !strings.HasPrefix(language, _supportedLanguage) {
		cfg.Warn(_categoryUnsupportedLanguage,
			fmt.Sprintf("coverage is currently not supported for language %q", language),
			loc)
		return nil
	}

	rec := hostRecorder(cfg)

	var dataFile string
	if rec != nil {
		// Share the host session's file so the two recordings merge
		// into one place.
		dataFile = rec.DataFile()
	} else {
		dir := outputDir
		if dir == "" {
			wd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("determine output directory: %w", err)
			}
			dir = wd
		}
		abs, err := filepath.Abs(filepath.Join(dir, ".coverage"))
		if err != nil {
			return fmt.Errorf("resolve data file: %w", err)
		}
		dataFile = abs
	}

	suffix := resolveSuffix(rec)
	if suffix.Auto && rec != nil {
		// The kernel's data ends up in a file we cannot name, collected
		// by an external combine step instead of merged here. Without
		// this the host recorder would complain about collecting
		// nothing.
		rec.SetWarnNoData(false)
	}

	c.logger().Debug("starting kernel coverage",
		"dataFile", dataFile,
		"suffix", suffix.String(),
		"notebook", loc.File)

	code := setupSnippet(dataFile, cfg.CovSource(), cfg.CovConfig(), suffix)
	if err := c.execute(k, code); err != nil {
		return fmt.Errorf("start kernel coverage: %w", err)
	}
	return nil
}

// Teardown stops the kernel's recorder, persists its data, and merges the
// resulting file into the host session, if there is one.
func (c *Controller) Teardown(cfg Config, k kernel.Kernel, outputDir string) error {
	if !strings.HasPrefix(k.Language(), _supportedLanguage) {
		// Setup already warned for this kernel.
		return nil
	}

	if err := c.execute(k, teardownSnippet()); err != nil {
		return fmt.Errorf("stop kernel coverage: %w", err)
	}

	return mergeKernelData(hostRecorder(cfg), c.logger())
}

// execute submits a snippet and blocks until the kernel reports idle,
// bounded by the controller's timeout.
func (c *Controller) execute(k kernel.Kernel, code string) error {
	msgID, err := k.Execute(code)
	if err != nil {
		return err
	}

	timeout := c.Timeout
	if timeout == 0 {
		timeout = _defaultTimeout
	}
	return k.AwaitIdle(msgID, timeout)
}

func (c *Controller) logger() *log.Logger {
	if c.Log == nil {
		return log.Discard
	}
	return c.Log
}

// Setup starts a coverage recorder inside the kernel with default settings.
// See [Controller.Setup].
func Setup(cfg Config, k kernel.Kernel, loc Location, outputDir string) error {
	return (&Controller{}).Setup(cfg, k, loc, outputDir)
}

// Teardown stops the kernel's recorder and merges its data with default
// settings. See [Controller.Teardown].
func Teardown(cfg Config, k kernel.Kernel, outputDir string) error {
	return (&Controller{}).Teardown(cfg, k, outputDir)
}
