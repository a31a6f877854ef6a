package gdalext

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the project file looked up in the project root.
const DefaultConfigFile = "gdalext.yaml"

// ExtensionConfig declares one native extension and its sources.
//
// Sources are listed in their intermediate-language form (e.g. ogrext.pyx);
// source archive builds swap them for the pre-generated native files.
type ExtensionConfig struct {
	Name    string   `yaml:"name"`
	Sources []string `yaml:"sources"`
}

// Config describes a project whose native extensions link against GDAL.
//
// Paths are relative to Root unless absolute.
type Config struct {
	// Root is the project directory. Not read from the file.
	Root string `yaml:"-"`

	Metadata Metadata `yaml:"metadata"`

	// Version and long description sources
	VersionFile      string   `yaml:"version_file"`
	VersionMarker    string   `yaml:"version_marker"`
	DescriptionFiles []string `yaml:"description_files"`

	// Flag resolution
	Helper         string       `yaml:"helper"`
	BuildOptions   BuildOptions `yaml:"build_options"`
	MinGDALVersion string       `yaml:"min_gdal_version"`
	KeepArtifact   bool         `yaml:"keep_artifact"`

	// Source selection and generation
	MarkerFile    string            `yaml:"marker_file"`
	GeneratorArgs []string          `yaml:"generator_args"`
	Extensions    []ExtensionConfig `yaml:"extensions"`
	StopOnFailure bool              `yaml:"stop_on_failure"`
}

// DefaultConfig returns the configuration of the Fiona package.
func DefaultConfig() *Config {
	return &Config{
		Root:             ".",
		Metadata:         DefaultMetadata(),
		VersionFile:      filepath.Join("src", "fiona", "__init__.py"),
		VersionMarker:    "__version__",
		DescriptionFiles: []string{"README.rst", "CHANGES.txt", "CREDITS.txt"},
		Helper:           DefaultHelper,
		MarkerFile:       "MANIFEST.in",
		Extensions: []ExtensionConfig{
			{Name: "fiona.ogrinit", Sources: []string{filepath.Join("src", "fiona", "ogrinit.pyx")}},
			{Name: "fiona.ogrext", Sources: []string{filepath.Join("src", "fiona", "ogrext.pyx")}},
		},
		StopOnFailure: true,
	}
}

// LoadConfig reads a project file. Fields absent from the file keep their
// DefaultConfig values. A missing file yields DefaultConfig.
//
// If path is empty, DefaultConfigFile in root is used. Root of the returned
// config is set to root.
func LoadConfig(root, path string) (*Config, error) {
	if root == "" {
		root = "."
	}
	if path == "" {
		path = filepath.Join(root, DefaultConfigFile)
	}

	cfg := DefaultConfig()
	cfg.Root = root

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.Root = root

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveConfig writes cfg as YAML to path.
func SaveConfig(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Validate checks that every extension has a name and at least one source.
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Extensions))
	for i, ext := range c.Extensions {
		if ext.Name == "" {
			return fmt.Errorf("extension %d has no name", i)
		}
		if seen[ext.Name] {
			return fmt.Errorf("extension %s declared twice", ext.Name)
		}
		seen[ext.Name] = true
		if len(ext.Sources) == 0 {
			return fmt.Errorf("extension %s has no sources", ext.Name)
		}
	}
	return nil
}

// Path resolves p against the project root.
func (c *Config) Path(p string) string {
	if filepath.IsAbs(p) || c.Root == "" {
		return p
	}
	return filepath.Join(c.Root, p)
}
