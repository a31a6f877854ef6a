package gdalext

import (
	"context"
	"fmt"
	"path/filepath"
)

// GeneratorRegistry manages the registration and selection of source generators.
//
// # Generator Selection
//
// When looking up a source, the registry:
//  1. Extracts the filename from the source path
//  2. Calls CanGenerate() on each registered generator in order
//  3. Uses the first generator that returns true
//
// # Thread Safety
//
// GeneratorRegistry is NOT thread-safe for registration.
// Register all generators before concurrent use.
type GeneratorRegistry struct {
	generators []Generator
}

// NewGeneratorRegistry creates a registry with the standard generators
// registered. Currently that is only CythonGenerator.
func NewGeneratorRegistry() *GeneratorRegistry {
	registry := &GeneratorRegistry{}
	registry.Register(&CythonGenerator{})
	return registry
}

// Register adds a generator. Generators are checked in registration order.
func (r *GeneratorRegistry) Register(generator Generator) {
	r.generators = append(r.generators, generator)
}

// GeneratorFor returns the first generator that handles source, or an error
// if none does.
func (r *GeneratorRegistry) GeneratorFor(source string) (Generator, error) {
	filename := filepath.Base(source)

	for _, generator := range r.generators {
		if generator.CanGenerate(filename) {
			return generator, nil
		}
	}

	return nil, fmt.Errorf("no generator found for source file: %s", filename)
}

// ListGenerators returns a copy of all registered generators.
func (r *GeneratorRegistry) ListGenerators() []Generator {
	return append([]Generator{}, r.generators...)
}

// GenerateAll generates native sources for each source in order.
//
// Even if an error is returned, the results slice holds one result per source
// processed so far, failures included. With config.StopOnFailure set,
// processing stops after the first failure; otherwise every source is
// attempted and the first error is returned. A canceled context stops
// processing immediately.
func (r *GeneratorRegistry) GenerateAll(ctx context.Context, config *Config, sources []string) ([]*GenerateResult, error) {
	if len(sources) == 0 {
		return nil, nil
	}

	var (
		results  []*GenerateResult
		firstErr error
	)
	for _, source := range sources {
		canceled := ctx.Err()

		var result *GenerateResult
		if canceled != nil {
			result = &GenerateResult{Source: source, Error: canceled}
		} else {
			result = r.generate(ctx, config, source)
		}
		results = append(results, result)

		if result.Error != nil && firstErr == nil {
			firstErr = result.Error
		}
		if canceled != nil || (!result.Success && config.StopOnFailure) {
			break
		}
	}

	return results, firstErr
}

// generate runs the matching generator for source. The returned result is
// never nil and carries any failure in its Error field.
func (r *GeneratorRegistry) generate(ctx context.Context, config *Config, source string) *GenerateResult {
	generator, err := r.GeneratorFor(source)
	if err != nil {
		return &GenerateResult{Source: source, Error: err}
	}

	result, err := generator.Generate(ctx, config, source)
	if result == nil {
		result = &GenerateResult{Source: source}
	}
	if err != nil && result.Error == nil {
		result.Error = err
	}
	return result
}
