package gdalext

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/mod/semver"
)

// DefaultHelper is the conventional name of the GDAL configuration helper.
const DefaultHelper = "gdal-config"

// Helper queries, one per invocation.
const (
	helperCFlags  = "--cflags"
	helperLibs    = "--libs"
	helperVersion = "--version"
)

// ErrHelperFailed is returned by ProbeVersion when the helper cannot be run
// or exits non-zero.
var ErrHelperFailed = errors.New("configuration helper failed")

// FlagResolver discovers compiler and linker flags through an external
// configuration helper such as gdal-config.
//
// The resolver is deliberately forgiving: a missing or broken helper is an
// expected condition on systems where the flags come from somewhere else, so
// Resolve never returns an error. Problems are reported as diagnostics and
// the resulting options are empty.
//
// # Example
//
//	r := &gdalext.FlagResolver{}
//	res := r.Resolve(ctx)
//	for _, d := range res.Diagnostics {
//	    fmt.Println(d)
//	}
//	fmt.Println(res.Options.IncludeDirs)
type FlagResolver struct {
	// Helper is the program name looked up on PATH, or a path to it.
	// Defaults to DefaultHelper.
	Helper string

	// Runner executes the helper. Defaults to ShellRunner.
	Runner CommandRunner

	// TempDir is where the capture artifact is created. Defaults to os.TempDir().
	TempDir string

	// KeepArtifact leaves the capture artifact on disk and reports its path.
	KeepArtifact bool
}

func (r *FlagResolver) helper() string {
	if r.Helper == "" {
		return DefaultHelper
	}
	return r.Helper
}

func (r *FlagResolver) runner() CommandRunner {
	if r.Runner == nil {
		return ShellRunner{}
	}
	return r.Runner
}

// Resolve runs the helper for compiler flags and then for linker flags, and
// parses the captured output into BuildOptions.
func (r *FlagResolver) Resolve(ctx context.Context) *Resolution {
	res := &Resolution{}

	opts, err := r.resolve(ctx, res)
	if err != nil {
		res.Diagnostics.add(SeverityWarning, "failed to get options via %s: %v", r.helper(), err)
		res.Options = BuildOptions{}.Clone()
		return res
	}

	res.Options = opts
	res.Diagnostics.add(SeverityDebug, "%s: %d include dirs, %d library dirs, %d libraries",
		r.helper(), len(opts.IncludeDirs), len(opts.LibraryDirs), len(opts.Libraries))
	return res
}

func (r *FlagResolver) resolve(ctx context.Context, res *Resolution) (opts BuildOptions, err error) {
	artifact, err := os.CreateTemp(r.TempDir, "gdal-config-*.txt")
	if err != nil {
		return opts, fmt.Errorf("creating capture file: %w", err)
	}
	path := artifact.Name()
	defer func() {
		if r.KeepArtifact {
			res.Artifact = path
			return
		}
		_ = os.Remove(path)
	}()

	for _, query := range []string{helperCFlags, helperLibs} {
		line, qerr := r.query(ctx, query, res)
		if qerr != nil {
			_ = artifact.Close()
			return opts, qerr
		}
		if _, werr := artifact.WriteString(line + "\n"); werr != nil {
			_ = artifact.Close()
			return opts, fmt.Errorf("writing capture file: %w", werr)
		}
	}

	if err := artifact.Close(); err != nil {
		return opts, fmt.Errorf("closing capture file: %w", err)
	}

	captured, err := os.Open(path)
	if err != nil {
		return opts, fmt.Errorf("reading capture file: %w", err)
	}
	defer captured.Close()

	return ParseFlagOutput(captured)
}

// query runs a single helper invocation and returns its stdout as one line.
//
// A helper that cannot be started is an error for the whole resolution. A
// helper that runs but fails only loses this invocation's flags.
func (r *FlagResolver) query(ctx context.Context, flag string, res *Resolution) (string, error) {
	var stdout, stderr bytes.Buffer

	ran, err := r.runner().Exec(ctx, "", &stdout, &stderr, r.helper(), flag)
	if !ran {
		if err == nil {
			err = fmt.Errorf("%s %s did not run", r.helper(), flag)
		}
		return "", err
	}
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		res.Diagnostics.add(SeverityWarning, "%s %s exited with status %d, ignoring its output: %s",
			r.helper(), flag, ExitStatus(err), msg)
		return "", nil
	}

	return strings.Join(strings.Fields(stdout.String()), " "), nil
}

// ProbeVersion asks the helper for the version of the library it describes.
func (r *FlagResolver) ProbeVersion(ctx context.Context) (string, error) {
	var stdout, stderr bytes.Buffer

	ran, err := r.runner().Exec(ctx, "", &stdout, &stderr, r.helper(), helperVersion)
	if err != nil || !ran {
		if err == nil {
			err = fmt.Errorf("%s did not run", r.helper())
		}
		return "", fmt.Errorf("%w: %s %s: %v", ErrHelperFailed, r.helper(), helperVersion, err)
	}

	version := strings.TrimSpace(stdout.String())
	if version == "" {
		return "", fmt.Errorf("%w: %s %s printed nothing", ErrHelperFailed, r.helper(), helperVersion)
	}
	return version, nil
}

// CheckMinimumVersion reports an error if found is older than minimum.
//
// Both are dotted release numbers such as "3.6.2" or "1.8"; a leading "v" is
// optional. Pre-release suffixes like "3.7.0dev" are compared on their
// numeric part only.
func CheckMinimumVersion(found, minimum string) error {
	if minimum == "" {
		return nil
	}
	f, m := canonicalVersion(found), canonicalVersion(minimum)
	if !semver.IsValid(m) {
		return fmt.Errorf("invalid minimum version %q", minimum)
	}
	if !semver.IsValid(f) {
		return fmt.Errorf("cannot compare version %q", found)
	}
	if semver.Compare(f, m) < 0 {
		return fmt.Errorf("version %s is older than required %s", found, minimum)
	}
	return nil
}

func canonicalVersion(v string) string {
	v = strings.TrimPrefix(strings.TrimSpace(v), "v")
	end := 0
	for end < len(v) && (v[end] == '.' || (v[end] >= '0' && v[end] <= '9')) {
		end++
	}
	return "v" + strings.TrimRight(v[:end], ".")
}
