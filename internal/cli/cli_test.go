package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	gdalext "github.com/contriboss/gdal-extension-go"
)

// emptyPath leaves nothing but the test's own scripts on PATH.
func emptyPath(t *testing.T) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("shell script fixtures are not supported on Windows")
	}
	dir := t.TempDir()
	t.Setenv("PATH", dir)
	return dir
}

func writeFile(t *testing.T, path, content string, mode os.FileMode) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), mode))
}

func newProject(t *testing.T, repo bool) string {
	t.Helper()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "fiona", "__init__.py"), "__version__ = \"1.0.3\"\n", 0o644)
	writeFile(t, filepath.Join(root, "src", "fiona", "ogrinit.pyx"), "", 0o644)
	writeFile(t, filepath.Join(root, "src", "fiona", "ogrext.pyx"), "", 0o644)
	for _, name := range []string{"README.rst", "CHANGES.txt", "CREDITS.txt"} {
		writeFile(t, filepath.Join(root, name), name, 0o644)
	}
	if repo {
		writeFile(t, filepath.Join(root, "MANIFEST.in"), "", 0o644)
	}
	return root
}

func fakeGDALConfig(t *testing.T, dir string) {
	t.Helper()

	writeFile(t, filepath.Join(dir, "gdal-config"), `#!/bin/sh
case "$1" in
--cflags) echo "-I/usr/include/gdal -O2" ;;
--libs) echo "-L/usr/lib -lgdal -lgeos" ;;
--version) echo "3.6.2" ;;
esac
`, 0o755)
}

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestFlagsCommand(t *testing.T) {
	bin := emptyPath(t)
	fakeGDALConfig(t, bin)

	stdout, _, err := run(t, "flags", "-C", t.TempDir(), "-o", "json")
	require.NoError(t, err)

	var opts gdalext.BuildOptions
	require.NoError(t, json.Unmarshal([]byte(stdout), &opts))
	assert.Equal(t, []string{"/usr/include/gdal"}, opts.IncludeDirs)
	assert.Equal(t, []string{"/usr/lib"}, opts.LibraryDirs)
	assert.Equal(t, []string{"gdal", "geos"}, opts.Libraries)
}

func TestFlagsCommandText(t *testing.T) {
	bin := emptyPath(t)
	fakeGDALConfig(t, bin)

	stdout, _, err := run(t, "flags", "-C", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, stdout, "cflags: -I/usr/include/gdal\n")
	assert.Contains(t, stdout, "libs: -L/usr/lib -lgdal -lgeos\n")
}

func TestFlagsCommandWithoutHelper(t *testing.T) {
	emptyPath(t)

	stdout, stderr, err := run(t, "flags", "-C", t.TempDir(), "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, stderr, "failed to get options via gdal-config")

	var opts gdalext.BuildOptions
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &opts))
	assert.True(t, opts.IsEmpty())
}

func TestFlagsCommandHelperOverride(t *testing.T) {
	bin := emptyPath(t)
	writeFile(t, filepath.Join(bin, "gdal-config-3.8"), `#!/bin/sh
case "$1" in
--cflags) echo "-I/opt/gdal/include" ;;
--libs) echo "-lgdal" ;;
esac
`, 0o755)

	stdout, _, err := run(t, "flags", "-C", t.TempDir(), "--helper", "gdal-config-3.8", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, stdout, "/opt/gdal/include")
}

func TestPlanCommandDistribution(t *testing.T) {
	emptyPath(t)
	root := newProject(t, false)

	stdout, stderr, err := run(t, "plan", "-C", root)
	require.NoError(t, err)
	assert.Contains(t, stderr, "level=warning")

	var plan struct {
		Metadata   gdalext.Metadata `json:"metadata"`
		Mode       string           `json:"mode"`
		Extensions []struct {
			Name    string   `json:"name"`
			Sources []string `json:"sources"`
		} `json:"extensions"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &plan))

	assert.Equal(t, "distribution", plan.Mode)
	assert.Equal(t, "1.0.3", plan.Metadata.Version)
	require.Len(t, plan.Extensions, 2)
	assert.Equal(t, "fiona.ogrinit", plan.Extensions[0].Name)
	assert.Equal(t, []string{filepath.Join("src", "fiona", "ogrinit.c")}, plan.Extensions[0].Sources)
	assert.Equal(t, "fiona.ogrext", plan.Extensions[1].Name)
}

func TestPlanCommandRepositoryWithoutCython(t *testing.T) {
	emptyPath(t)
	root := newProject(t, true)

	stdout, stderr, err := run(t, "plan", "-C", root)
	require.Error(t, err)
	assert.True(t, errors.Is(err, gdalext.ErrGeneratorMissing))
	assert.Equal(t, 1, ExitCode(err))
	assert.True(t, Reported(err))
	assert.Empty(t, stdout, "no targets may be declared")
	assert.Contains(t, stderr, "severity=critical")
}

func TestPlanCommandRepositoryWithCython(t *testing.T) {
	bin := emptyPath(t)
	writeFile(t, filepath.Join(bin, "cython"), `#!/bin/sh
echo "/* c */" > "$2"
`, 0o755)
	root := newProject(t, true)

	stdout, _, err := run(t, "plan", "-C", root, "-o", "yaml")
	require.NoError(t, err)

	var plan struct {
		Mode       string              `yaml:"mode"`
		Extensions []gdalext.Extension `yaml:"extensions"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &plan))
	assert.Equal(t, "repository", plan.Mode)
	require.Len(t, plan.Extensions, 2)
	assert.Equal(t, []string{filepath.Join("src", "fiona", "ogrext.c")}, plan.Extensions[1].Generated)
	assert.FileExists(t, filepath.Join(root, "src", "fiona", "ogrext.c"))
}

func TestCheckCommand(t *testing.T) {
	bin := emptyPath(t)
	fakeGDALConfig(t, bin)

	root := newProject(t, false)
	writeFile(t, filepath.Join(root, gdalext.DefaultConfigFile), "min_gdal_version: \"4.0\"\n", 0o644)

	stdout, _, err := run(t, "check", "-C", root)
	require.NoError(t, err)
	assert.Contains(t, stdout, "mode: distribution")
	assert.Contains(t, stdout, "reports GDAL 3.6.2")
	assert.Contains(t, stdout, "older than required 4.0")
	assert.Contains(t, stdout, "generator: not needed")
}

func TestCheckCommandRepositoryWithoutCython(t *testing.T) {
	emptyPath(t)

	stdout, _, err := run(t, "check", "-C", newProject(t, true))
	require.Error(t, err)
	assert.Equal(t, 1, ExitCode(err))
	assert.Contains(t, stdout, "helper: gdal-config unavailable")
	assert.Contains(t, stdout, "generator: missing")
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "gdalext version "+Version+"\n", stdout)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(errors.New("boom")))
	assert.False(t, Reported(errors.New("boom")))
}
