package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/nbgo/nbcover/coverage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProfile(t testing.TB, path, file string, count uint32) {
	t.Helper()

	set := coverage.NewSet()
	set.Add(file, coverage.Block{
		StartLine: 1, StartCol: 1,
		EndLine: 3, EndCol: 2,
		NumStmt: 2,
	}, count)
	require.NoError(t, set.WriteFile(path))
}

func writeGarbage(path string) error {
	return os.WriteFile(path, []byte("not a profile\n"), 0o644)
}

func runMain(t testing.TB, args ...string) (stdout string, err error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := mainCmd{Stdout: &out, Stderr: &errOut}
	err = cmd.Run(args)
	return out.String(), err
}

func TestMainNoCommand(t *testing.T) {
	t.Parallel()

	_, err := runMain(t)
	require.Error(t, err)
	assert.ErrorContains(t, err, "no command given")
}

func TestMainUnknownCommand(t *testing.T) {
	t.Parallel()

	_, err := runMain(t, "frobnicate")
	require.Error(t, err)
	assert.ErrorContains(t, err, `unknown command "frobnicate"`)
}

func TestCombine(t *testing.T) {
	t.Parallel()

	base := filepath.Join(t.TempDir(), ".coverage")
	writeProfile(t, base+".host1.42.abcd", "example.com/foo/foo.go", 1)
	writeProfile(t, base+".host1.43.ef01", "example.com/foo/bar.go", 1)

	out, err := runMain(t, "-verbose", "combine", "-data", base)
	require.NoError(t, err)
	assert.Contains(t, out, "combined 2 data files")

	combined := coverage.NewSet()
	require.NoError(t, combined.ReadFile(base))
	assert.Equal(t,
		[]string{"example.com/foo/bar.go", "example.com/foo/foo.go"},
		combined.Files())

	assert.NoFileExists(t, base+".host1.42.abcd")
	assert.NoFileExists(t, base+".host1.43.ef01")
}

func TestCombineKeepsParts(t *testing.T) {
	t.Parallel()

	base := filepath.Join(t.TempDir(), ".coverage")
	writeProfile(t, base+".nbcover", "example.com/foo/foo.go", 1)

	_, err := runMain(t, "combine", "-data", base, "-keep")
	require.NoError(t, err)

	assert.FileExists(t, base)
	assert.FileExists(t, base+".nbcover")
}

func TestCombineFoldsIntoExistingBase(t *testing.T) {
	t.Parallel()

	base := filepath.Join(t.TempDir(), ".coverage")
	writeProfile(t, base, "example.com/foo/foo.go", 1)
	writeProfile(t, base+".nbcover", "example.com/foo/bar.go", 1)

	_, err := runMain(t, "combine", "-data", base)
	require.NoError(t, err)

	combined := coverage.NewSet()
	require.NoError(t, combined.ReadFile(base))
	assert.Equal(t,
		[]string{"example.com/foo/bar.go", "example.com/foo/foo.go"},
		combined.Files())
}

func TestCombineNoFiles(t *testing.T) {
	t.Parallel()

	_, err := runMain(t, "combine",
		"-data", filepath.Join(t.TempDir(), ".coverage"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "no data files found")
}

func TestCombineSkipsUnreadableParts(t *testing.T) {
	t.Parallel()

	base := filepath.Join(t.TempDir(), ".coverage")
	writeProfile(t, base+".nbcover", "example.com/foo/foo.go", 1)
	require.NoError(t,
		writeGarbage(base+".stray"))

	_, err := runMain(t, "combine", "-data", base)
	require.NoError(t, err)

	combined := coverage.NewSet()
	require.NoError(t, combined.ReadFile(base))
	assert.Equal(t, []string{"example.com/foo/foo.go"}, combined.Files())
	assert.FileExists(t, base+".stray", "unreadable files are left alone")
}

func TestReport(t *testing.T) {
	t.Parallel()

	base := filepath.Join(t.TempDir(), ".coverage")
	set := coverage.NewSet()
	set.Add("example.com/foo/foo.go", coverage.Block{
		StartLine: 1, StartCol: 1, EndLine: 3, EndCol: 2, NumStmt: 2,
	}, 1)
	set.Add("example.com/foo/foo.go", coverage.Block{
		StartLine: 5, StartCol: 1, EndLine: 7, EndCol: 2, NumStmt: 2,
	}, 0)
	set.Add("example.com/bar/bar.go", coverage.Block{
		StartLine: 1, StartCol: 1, EndLine: 2, EndCol: 2, NumStmt: 1,
	}, 1)
	require.NoError(t, set.WriteFile(base))

	out, err := runMain(t, "report", "-data", base)
	require.NoError(t, err)
	assert.Contains(t, out, "example.com/foo/foo.go\t50.0%")
	assert.Contains(t, out, "example.com/bar/bar.go\t100.0%")
	assert.Contains(t, out, "total\t60.0%")
}

func TestReportSourceFilter(t *testing.T) {
	t.Parallel()

	base := filepath.Join(t.TempDir(), ".coverage")
	set := coverage.NewSet()
	set.Add("example.com/foo/foo.go", coverage.Block{
		StartLine: 1, StartCol: 1, EndLine: 3, EndCol: 2, NumStmt: 2,
	}, 1)
	set.Add("example.com/bar/bar.go", coverage.Block{
		StartLine: 1, StartCol: 1, EndLine: 2, EndCol: 2, NumStmt: 1,
	}, 0)
	require.NoError(t, set.WriteFile(base))

	out, err := runMain(t, "report", "-data", base, "-source", "example.com/foo")
	require.NoError(t, err)
	assert.Contains(t, out, "example.com/foo/foo.go\t100.0%")
	assert.NotContains(t, out, "example.com/bar/bar.go")
	assert.Contains(t, out, "total\t100.0%")
}

func TestReportMissingData(t *testing.T) {
	t.Parallel()

	_, err := runMain(t, "report",
		"-data", filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}
