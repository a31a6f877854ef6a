package gdalext

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestReadVersion(t *testing.T) {
	testCases := []struct {
		name     string
		content  string
		expected string
	}{
		{"double quotes", "__version__ = \"1.0.3\"\n", "1.0.3"},
		{"single quotes", "__version__ = '1.0b1'\n", "1.0b1"},
		{"no spaces", "__version__='2.0'\n", "2.0"},
		{"after other lines", "import logging\n\n__version__ = \"1.1\"\n", "1.1"},
		{"first match wins", "__version__ = \"1.0\"\n__version__ = \"9.9\"\n", "1.0"},
		{"trailing comment with assignment", "__version__ = \"1.0.3\"  # bumped by release=auto\n", "1.0.3"},
		{"comment without assignment skipped", "# bump __version__ on release\n__version__ = \"1.2\"\n", "1.2"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "__init__.py")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatal(err)
			}

			version, err := ReadVersion(path, "__version__")
			if err != nil {
				t.Fatalf("ReadVersion returned error: %v", err)
			}
			if version != tc.expected {
				t.Errorf("ReadVersion = %q, expected %q", version, tc.expected)
			}
		})
	}
}

func TestReadVersionErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "__init__.py")
	if err := os.WriteFile(path, []byte("import os\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadVersion(path, "__version__"); !errors.Is(err, ErrVersionNotFound) {
		t.Errorf("Expected ErrVersionNotFound, got %v", err)
	}

	if _, err := ReadVersion(filepath.Join(t.TempDir(), "missing.py"), "__version__"); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestReadLongDescription(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{"README.rst": "readme", "CHANGES.txt": "changes", "CREDITS.txt": "credits"}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	long, err := ReadLongDescription(
		filepath.Join(dir, "README.rst"),
		filepath.Join(dir, "CHANGES.txt"),
		filepath.Join(dir, "CREDITS.txt"),
	)
	if err != nil {
		t.Fatalf("ReadLongDescription returned error: %v", err)
	}
	if long != "readme\nchanges\ncredits" {
		t.Errorf("long description = %q", long)
	}

	if _, err := ReadLongDescription(filepath.Join(dir, "NOPE.txt")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestDefaultMetadata(t *testing.T) {
	m := DefaultMetadata()
	if m.Name != "Fiona" || m.License != "BSD" || m.PackageDir != "src" {
		t.Errorf("unexpected defaults: %+v", m)
	}
	if len(m.Classifiers) != 7 {
		t.Errorf("Expected 7 classifiers, got %d", len(m.Classifiers))
	}
}
