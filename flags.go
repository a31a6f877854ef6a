package gdalext

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
)

// Flag markers recognised in helper output.
const (
	IncludeMarker     = "-I"
	LibraryDirMarker  = "-L"
	LinkLibraryMarker = "-l"
)

// ParseCompilerFlags extracts include directories from a compiler-flags line.
//
// Each -I token is stripped of its marker and split on the platform path-list
// separator; every non-empty segment is kept, in order, duplicates included.
// All other tokens are ignored.
//
// # Example
//
//	ParseCompilerFlags("-I/usr/include/gdal -O2")
//	// ["/usr/include/gdal"]
func ParseCompilerFlags(line string) []string {
	includeDirs := []string{}
	for _, token := range strings.Fields(line) {
		if strings.HasPrefix(token, IncludeMarker) {
			includeDirs = appendPathList(includeDirs, token[len(IncludeMarker):])
		}
	}
	return includeDirs
}

// ParseLinkerFlags extracts library search paths and library names from a
// linker-flags line.
//
// -L tokens are split on the path-list separator like -I tokens. -l tokens
// name exactly one library and are not split. Anything else is ignored.
//
// # Example
//
//	dirs, libs := ParseLinkerFlags("-L/usr/lib -lgdal -lgeos")
//	// dirs: ["/usr/lib"], libs: ["gdal", "geos"]
func ParseLinkerFlags(line string) (libraryDirs, libraries []string) {
	libraryDirs = []string{}
	libraries = []string{}
	for _, token := range strings.Fields(line) {
		switch {
		case strings.HasPrefix(token, LibraryDirMarker):
			libraryDirs = appendPathList(libraryDirs, token[len(LibraryDirMarker):])
		case strings.HasPrefix(token, LinkLibraryMarker):
			if name := token[len(LinkLibraryMarker):]; name != "" {
				libraries = append(libraries, name)
			}
		}
	}
	return libraryDirs, libraries
}

// ParseFlags builds BuildOptions from a compiler-flags line and a linker-flags line.
func ParseFlags(cflags, libs string) BuildOptions {
	libraryDirs, libraries := ParseLinkerFlags(libs)
	return BuildOptions{
		IncludeDirs: ParseCompilerFlags(cflags),
		LibraryDirs: libraryDirs,
		Libraries:   libraries,
	}
}

// ParseFlagOutput reads captured helper output: the compiler-flags line
// followed by the linker-flags line. Anything after the second line is not
// read. A missing line counts as an empty one.
func ParseFlagOutput(r io.Reader) (BuildOptions, error) {
	br := bufio.NewReader(r)

	cflags, err := readLine(br)
	if err != nil {
		return BuildOptions{}.Clone(), err
	}
	libs, err := readLine(br)
	if err != nil {
		return BuildOptions{}.Clone(), err
	}

	return ParseFlags(cflags, libs), nil
}

// readLine returns the next line without its terminator, or "" at EOF.
func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func appendPathList(dst []string, list string) []string {
	for _, segment := range strings.Split(list, string(os.PathListSeparator)) {
		if segment != "" {
			dst = append(dst, segment)
		}
	}
	return dst
}
