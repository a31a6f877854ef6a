package gdalext

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrVersionNotFound is returned when a version file has no marker line.
var ErrVersionNotFound = errors.New("version marker not found")

// Metadata is the package metadata declared alongside the extensions.
type Metadata struct {
	Name            string   `json:"name" yaml:"name"`
	Version         string   `json:"version" yaml:"version,omitempty"`
	Description     string   `json:"description" yaml:"description"`
	LongDescription string   `json:"long_description,omitempty" yaml:"long_description,omitempty"`
	License         string   `json:"license" yaml:"license"`
	Keywords        string   `json:"keywords" yaml:"keywords"`
	Author          string   `json:"author" yaml:"author"`
	AuthorEmail     string   `json:"author_email" yaml:"author_email"`
	Maintainer      string   `json:"maintainer" yaml:"maintainer"`
	MaintainerEmail string   `json:"maintainer_email" yaml:"maintainer_email"`
	URL             string   `json:"url" yaml:"url"`
	PackageDir      string   `json:"package_dir" yaml:"package_dir"`
	Packages        []string `json:"packages" yaml:"packages"`
	InstallRequires []string `json:"install_requires" yaml:"install_requires"`
	TestsRequire    []string `json:"tests_require" yaml:"tests_require"`
	TestSuite       string   `json:"test_suite" yaml:"test_suite"`
	Classifiers     []string `json:"classifiers" yaml:"classifiers"`
}

// DefaultMetadata returns Fiona's package metadata. Version and
// LongDescription are filled in from files at plan time.
func DefaultMetadata() Metadata {
	return Metadata{
		Name:            "Fiona",
		Description:     "Fiona reads and writes spatial data files",
		License:         "BSD",
		Keywords:        "gis vector feature data",
		Author:          "Sean Gillies",
		AuthorEmail:     "sean.gillies@gmail.com",
		Maintainer:      "Sean Gillies",
		MaintainerEmail: "sean.gillies@gmail.com",
		URL:             "http://github.com/Toblerity/Fiona",
		PackageDir:      "src",
		Packages:        []string{"fiona"},
		InstallRequires: []string{},
		TestsRequire:    []string{"nose"},
		TestSuite:       "nose.collector",
		Classifiers: []string{
			"Development Status :: 4 - Beta",
			"Intended Audience :: Developers",
			"Intended Audience :: Science/Research",
			"License :: OSI Approved :: BSD License",
			"Operating System :: OS Independent",
			"Programming Language :: Python",
			"Topic :: Scientific/Engineering :: GIS",
		},
	}
}

// ReadVersion extracts a version string from the first line of path that
// contains marker.
//
// The value is the text between the first and second "=" on that line, up to
// any "#" comment, trimmed of whitespace and then of double and single quotes:
//
//	__version__ = "1.0.3"             ->  1.0.3
//	__version__ = "1.0.3"  # rc=2     ->  1.0.3
func ReadVersion(path, marker string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("reading version: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(line, marker) {
			continue
		}
		fields := strings.Split(line, "=")
		if len(fields) < 2 {
			continue
		}
		value, _, _ := strings.Cut(fields[1], "#")
		version := strings.TrimSpace(value)
		version = strings.Trim(version, `"`)
		version = strings.Trim(version, `'`)
		return version, nil
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("reading version: %w", err)
	}

	return "", fmt.Errorf("%w: %s in %s", ErrVersionNotFound, marker, path)
}

// ReadLongDescription concatenates the given files, separated by newlines.
func ReadLongDescription(paths ...string) (string, error) {
	parts := make([]string, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading description: %w", err)
		}
		parts = append(parts, string(data))
	}
	return strings.Join(parts, "\n"), nil
}
