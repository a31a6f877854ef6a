package gdalext

import (
	"context"
)

// Generator translates intermediate-language sources into native sources.
//
// Generators are only used for repository checkouts; source archives ship
// their native sources pre-generated.
//
// # Generator Lifecycle
//
//  1. CanGenerate() - The registry calls this to find the generator for a source
//  2. OutputFor() - Names the native file, used in both source modes
//  3. Generate() - Writes the native file (repository mode only)
//
// # Example Implementation
//
//	type SwigGenerator struct{}
//
//	func (g *SwigGenerator) Name() string { return "SWIG" }
//
//	func (g *SwigGenerator) CanGenerate(source string) bool {
//	    return MatchesExtension(source, ".i")
//	}
//
//	func (g *SwigGenerator) OutputFor(source string) string {
//	    return SwapExtension(source, "_wrap.c")
//	}
//
//	func (g *SwigGenerator) Generate(ctx context.Context, config *Config, source string) (*GenerateResult, error) {
//	    // run swig
//	}
//
// Generators should be stateless; the same instance may be used for several sources.
type Generator interface {
	// Name returns the human-readable name used in errors and diagnostics.
	Name() string

	// CanGenerate reports whether this generator handles the given source file.
	CanGenerate(source string) bool

	// OutputFor returns the native source path generated from source.
	// It must not touch the filesystem.
	OutputFor(source string) string

	// Generate writes the native source for source. The path is relative to
	// config.Root.
	//
	// Returns:
	//   - GenerateResult with Success=true and Generated on success
	//   - GenerateResult with Success=false and Error on failure
	Generate(ctx context.Context, config *Config, source string) (*GenerateResult, error)
}
