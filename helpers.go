package gdalext

import (
	"fmt"
	"path/filepath"
	"strings"
)

// MatchesExtension checks if a filename has any of the given extensions.
//
// This is a case-insensitive suffix check; extensions may be given with or
// without the leading dot.
//
// # Example
//
//	if MatchesExtension(source, ".pyx") {
//	    // Cython module
//	}
func MatchesExtension(filename string, extensions ...string) bool {
	lower := strings.ToLower(filename)
	for _, ext := range extensions {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

// SwapExtension replaces the extension of path with ext.
//
//	SwapExtension("src/fiona/ogrext.pyx", ".c") // "src/fiona/ogrext.c"
func SwapExtension(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// GenerateError creates a standardized generation error with output context.
//
// # Format
//
// With error and output:
//
//	Cython generation of src/fiona/ogrext.pyx failed: exit status 1
//
//	Generator output:
//	ogrext.pyx:12:4: undeclared name not builtin: foo
//
// Without output only the first line is produced.
func GenerateError(generator, source string, output []string, err error) error {
	outputStr := strings.TrimSpace(strings.Join(output, "\n"))

	var prefix string
	if err != nil {
		prefix = fmt.Sprintf("%s generation of %s failed: %v", generator, source, err)
	} else {
		prefix = fmt.Sprintf("%s generation of %s failed", generator, source)
	}

	if outputStr != "" {
		return fmt.Errorf("%s\n\nGenerator output:\n%s", prefix, outputStr)
	}

	return fmt.Errorf("%s", prefix)
}
