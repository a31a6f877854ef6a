package gdalext

import (
	"fmt"
	"strings"
)

// BuildOptions holds the compile and link configuration of a native extension.
//
// The three fields mirror what a packaging tool needs to compile and link
// against GDAL:
//   - IncludeDirs: header search paths (from -I flags)
//   - LibraryDirs: library search paths (from -L flags)
//   - Libraries: library names without lib prefix or platform suffix (from -l flags)
//
// Order is significant and duplicates are kept. A BuildOptions value is
// produced once and then only copied; use Clone before handing it to code
// that might append to the slices.
type BuildOptions struct {
	IncludeDirs []string `json:"include_dirs" yaml:"include_dirs"`
	LibraryDirs []string `json:"library_dirs" yaml:"library_dirs"`
	Libraries   []string `json:"libraries" yaml:"libraries"`
}

// IsEmpty reports whether no include dir, library dir or library is set.
func (o BuildOptions) IsEmpty() bool {
	return len(o.IncludeDirs) == 0 && len(o.LibraryDirs) == 0 && len(o.Libraries) == 0
}

// Clone returns a deep copy. Empty fields come back as non-nil empty slices.
func (o BuildOptions) Clone() BuildOptions {
	return BuildOptions{
		IncludeDirs: append([]string{}, o.IncludeDirs...),
		LibraryDirs: append([]string{}, o.LibraryDirs...),
		Libraries:   append([]string{}, o.Libraries...),
	}
}

// Merge returns a new BuildOptions with other's entries appended after o's.
func (o BuildOptions) Merge(other BuildOptions) BuildOptions {
	merged := o.Clone()
	merged.IncludeDirs = append(merged.IncludeDirs, other.IncludeDirs...)
	merged.LibraryDirs = append(merged.LibraryDirs, other.LibraryDirs...)
	merged.Libraries = append(merged.Libraries, other.Libraries...)
	return merged
}

// Severity classifies a Diagnostic.
type Severity int

const (
	// SeverityDebug records detail such as how many flags a helper produced.
	SeverityDebug Severity = iota
	// SeverityInfo records normal progress, such as the selected source mode.
	SeverityInfo
	// SeverityWarning records a degraded but usable result, such as a missing helper.
	SeverityWarning
	// SeverityCritical records a failure that stops planning, such as a missing generator.
	SeverityCritical
)

// String returns the lower-case severity name, e.g. "warning".
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityCritical:
		return "critical"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// MarshalText lets diagnostics render as "warning" rather than 2 in JSON/YAML output.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Diagnostic is a message produced while resolving or planning a build.
//
// The library never writes to a logger. Callers decide how to surface
// diagnostics (the gdalext CLI routes them to logrus).
type Diagnostic struct {
	Severity Severity `json:"severity" yaml:"severity"`
	Message  string   `json:"message" yaml:"message"`
}

// String formats the diagnostic as "severity: message".
func (d Diagnostic) String() string {
	return d.Severity.String() + ": " + d.Message
}

// Diagnostics is an ordered list of diagnostics.
type Diagnostics []Diagnostic

func (d *Diagnostics) add(sev Severity, format string, args ...any) {
	*d = append(*d, Diagnostic{Severity: sev, Message: fmt.Sprintf(format, args...)})
}

// Has reports whether any diagnostic is at least sev.
func (d Diagnostics) Has(sev Severity) bool {
	for _, diag := range d {
		if diag.Severity >= sev {
			return true
		}
	}
	return false
}

// String returns one formatted diagnostic per line.
func (d Diagnostics) String() string {
	lines := make([]string, 0, len(d))
	for _, diag := range d {
		lines = append(lines, diag.String())
	}
	return strings.Join(lines, "\n")
}

// Resolution is the outcome of FlagResolver.Resolve.
//
// Options is always usable: when the helper is missing or broken it is the
// all-empty default and Diagnostics explains why.
type Resolution struct {
	Options     BuildOptions `json:"options" yaml:"options"`
	Diagnostics Diagnostics  `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`

	// Artifact is the path of the captured helper output. Only set when
	// FlagResolver.KeepArtifact is true.
	Artifact string `json:"artifact,omitempty" yaml:"artifact,omitempty"`
}

// SourceMode tells how extension sources are obtained.
type SourceMode int

const (
	// SourceModeDistribution uses pre-generated native sources (source archive build).
	SourceModeDistribution SourceMode = iota
	// SourceModeRepository regenerates native sources from intermediate-language files.
	SourceModeRepository
)

// String returns "distribution" or "repository".
func (m SourceMode) String() string {
	if m == SourceModeRepository {
		return "repository"
	}
	return "distribution"
}

// MarshalText renders the mode by name.
func (m SourceMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Extension is a declared native extension build target.
//
// Sources are the files handed to the packaging tool: intermediate-language
// files in repository mode, pre-generated native files otherwise. Generated
// lists the native files produced from Sources during planning, if any.
type Extension struct {
	Name      string       `json:"name" yaml:"name"`
	Sources   []string     `json:"sources" yaml:"sources"`
	Generated []string     `json:"generated,omitempty" yaml:"generated,omitempty"`
	Options   BuildOptions `json:"options" yaml:"options"`
}

// GenerateResult contains the output and status of a source generation step.
type GenerateResult struct {
	Success   bool     // True if generation completed successfully
	Source    string   // Intermediate-language file that was translated
	Generated []string // Native source files written
	Output    []string // Lines of output from the generator
	Error     error    // Error if generation failed, nil otherwise
}

// BuildPlan is everything a packaging tool needs to build the package.
type BuildPlan struct {
	Metadata    Metadata     `json:"metadata" yaml:"metadata"`
	Mode        SourceMode   `json:"mode" yaml:"mode"`
	Options     BuildOptions `json:"options" yaml:"options"`
	Extensions  []Extension  `json:"extensions" yaml:"extensions"`
	Diagnostics Diagnostics  `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}
