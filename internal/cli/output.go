package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	gdalext "github.com/contriboss/gdal-extension-go"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// writeOptionsText prints options the way a build script would splice them
// into compiler and linker command lines.
func writeOptionsText(w io.Writer, opts gdalext.BuildOptions) error {
	var cflags, libs []string
	for _, dir := range opts.IncludeDirs {
		cflags = append(cflags, gdalext.IncludeMarker+dir)
	}
	for _, dir := range opts.LibraryDirs {
		libs = append(libs, gdalext.LibraryDirMarker+dir)
	}
	for _, lib := range opts.Libraries {
		libs = append(libs, gdalext.LinkLibraryMarker+lib)
	}

	_, err := fmt.Fprintf(w, "include_dirs: %s\nlibrary_dirs: %s\nlibraries: %s\ncflags: %s\nlibs: %s\n",
		strings.Join(opts.IncludeDirs, " "),
		strings.Join(opts.LibraryDirs, " "),
		strings.Join(opts.Libraries, " "),
		strings.Join(cflags, " "),
		strings.Join(libs, " "))
	return err
}
