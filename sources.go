package gdalext

import (
	"context"
	"fmt"
	"os"
)

// ExtensionSources pairs an extension with the sources selected for it.
type ExtensionSources struct {
	Name string

	// Sources are the files handed to the build target.
	Sources []string

	// Pending maps intermediate-language sources to the native file their
	// generator will write. Empty in distribution mode.
	Pending map[string]string
}

// SourceSelection is the outcome of SelectSources.
type SourceSelection struct {
	Mode       SourceMode
	Extensions []ExtensionSources
}

// PendingSources returns every intermediate-language source that still needs
// generating, in declaration order.
func (s *SourceSelection) PendingSources() []string {
	var pending []string
	for _, ext := range s.Extensions {
		for _, src := range ext.Sources {
			if _, ok := ext.Pending[src]; ok {
				pending = append(pending, src)
			}
		}
	}
	return pending
}

// DetectSourceMode reports SourceModeRepository if marker exists in root and
// SourceModeDistribution otherwise.
func DetectSourceMode(root, marker string) (SourceMode, error) {
	cfg := &Config{Root: root}
	_, err := os.Stat(cfg.Path(marker))
	switch {
	case err == nil:
		return SourceModeRepository, nil
	case os.IsNotExist(err):
		return SourceModeDistribution, nil
	default:
		return SourceModeDistribution, fmt.Errorf("checking for %s: %w", marker, err)
	}
}

// SelectSources decides which source files each configured extension is
// built from.
//
// In a repository checkout (marker file present) every intermediate-language
// source must have a registered generator whose tools are installed;
// otherwise a *GeneratorMissingError is returned and nothing is selected.
//
// In a source archive the pre-generated native file is used in place of each
// intermediate-language source. Generators are consulted only for naming:
// their tools are never checked or run.
func SelectSources(ctx context.Context, config *Config, registry *GeneratorRegistry) (*SourceSelection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mode, err := DetectSourceMode(config.Root, config.MarkerFile)
	if err != nil {
		return nil, err
	}

	selection := &SourceSelection{Mode: mode}
	checked := make(map[string]bool)

	for _, ext := range config.Extensions {
		selected := ExtensionSources{Name: ext.Name}

		for _, src := range ext.Sources {
			generator, lookupErr := registry.GeneratorFor(src)

			if mode == SourceModeDistribution {
				if lookupErr == nil {
					src = generator.OutputFor(src)
				}
				selected.Sources = append(selected.Sources, src)
				continue
			}

			if lookupErr != nil {
				if isNativeSource(src) {
					selected.Sources = append(selected.Sources, src)
					continue
				}
				return nil, &GeneratorMissingError{Source: src, Marker: config.MarkerFile, Err: lookupErr}
			}

			if checker, ok := generator.(ToolChecker); ok && !checked[generator.Name()] {
				if err := checker.CheckTools(); err != nil {
					return nil, &GeneratorMissingError{
						Generator: generator.Name(),
						Source:    src,
						Marker:    config.MarkerFile,
						Err:       err,
					}
				}
				checked[generator.Name()] = true
			}

			if selected.Pending == nil {
				selected.Pending = make(map[string]string)
			}
			selected.Pending[src] = generator.OutputFor(src)
			selected.Sources = append(selected.Sources, src)
		}

		selection.Extensions = append(selection.Extensions, selected)
	}

	return selection, nil
}

func isNativeSource(path string) bool {
	return MatchesExtension(path, ".c", ".cc", ".cpp", ".cxx")
}
