package gdalext

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// fakeCall describes how fakeRunner answers one invocation.
type fakeCall struct {
	stdout string
	stderr string
	ran    bool
	err    error
}

// fakeRunner answers invocations by their joined arguments, e.g. "--cflags".
type fakeRunner struct {
	calls   map[string]fakeCall
	invoked []string
}

func (f *fakeRunner) Exec(ctx context.Context, dir string, stdout, stderr io.Writer, name string, args ...string) (bool, error) {
	key := strings.Join(args, " ")
	f.invoked = append(f.invoked, name+" "+key)

	call, ok := f.calls[key]
	if !ok {
		return false, fmt.Errorf("exec: %q: executable file not found in $PATH", name)
	}
	if stdout != nil {
		_, _ = io.WriteString(stdout, call.stdout)
	}
	if stderr != nil {
		_, _ = io.WriteString(stderr, call.stderr)
	}
	return call.ran, call.err
}

// missingRunner behaves like a helper that is not installed.
type missingRunner struct{}

func (missingRunner) Exec(context.Context, string, io.Writer, io.Writer, string, ...string) (bool, error) {
	return false, errors.New(`exec: "gdal-config": executable file not found in $PATH`)
}

// writeScript creates an executable shell script in dir.
func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// isolatedPath points PATH at a fresh directory holding only /bin/sh
// helpers the test writes itself, and returns that directory.
func isolatedPath(t *testing.T) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("shell script fixtures are not supported on Windows")
	}
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("/bin/sh not available")
	}

	dir := t.TempDir()
	t.Setenv("PATH", dir)
	return dir
}

// sleepCommand returns the absolute path of sleep(1). Call it before
// isolatedPath, which hides it from PATH.
func sleepCommand(t *testing.T) string {
	t.Helper()

	path, err := exec.LookPath("sleep")
	if err != nil {
		t.Skip("sleep not available")
	}
	return path
}

// writeProject lays out a minimal Fiona-style project in a temp dir.
func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	defaults := map[string]string{
		"src/fiona/__init__.py": "# Fiona\n__version__ = \"1.0.3\"\n",
		"README.rst":            "Fiona",
		"CHANGES.txt":           "Changes",
		"CREDITS.txt":           "Credits",
		"src/fiona/ogrinit.pyx": "# ogrinit",
		"src/fiona/ogrext.pyx":  "# ogrext",
	}
	for name, content := range files {
		defaults[name] = content
	}

	for name, content := range defaults {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create directory for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return root
}
