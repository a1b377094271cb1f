package nbcover

import (
	"fmt"

	"github.com/nbgo/nbcover/coverage"
)

// Setup and teardown code to run inside the kernel. Go-family kernels
// execute statements cell-style, so these read like notebook cells: bind a
// recorder to the computed data file, load whatever is already there, and
// record until the teardown cell stops it. Partial notebook runs are
// expected, so the recorder's own warnings are switched off.
const (
	_kernelSetup = `import __nbcov "github.com/nbgo/nbcover/coverage"

__cov, __cov_err := __nbcov.New(__nbcov.Options{
	DataFile:   %q,
	Source:     %#v,
	ConfigFile: %q,
	Suffix:     __nbcov.SuffixMode{Auto: %v, Value: %q},
	AutoData:   true,
})
__cov_err = __cov.Load()
__cov.Start()
__cov.SetWarnNoData(false)
__cov.SetWarnUnimportedSource(false)
`

	_kernelTeardown = `__cov.Stop()
__cov_err = __cov.Save()
`
)

// setupSnippet builds the source to start a recorder inside the kernel.
func setupSnippet(dataFile string, source []string, configFile string, suffix coverage.SuffixMode) string {
	return fmt.Sprintf(_kernelSetup,
		dataFile, source, configFile, suffix.Auto, suffix.Value)
}

// teardownSnippet builds the source to stop the kernel's recorder and
// persist its data.
func teardownSnippet() string {
	return _kernelTeardown
}
