// Package gdalext computes the build configuration of native extensions that
// link against the GDAL/OGR library.
//
// It is the Go counterpart of a setup script for a GDAL binding such as
// Fiona: it asks gdal-config for compiler and linker flags, decides whether
// the extension sources must be regenerated from Cython or are shipped
// pre-generated, and declares the resulting extension targets together with
// the package metadata. Compiling the targets is left to the packaging tool
// that consumes the plan.
//
// # Basic Usage
//
//	cfg, err := gdalext.LoadConfig(".", "")
//	if err != nil {
//	    return err
//	}
//
//	plan, err := gdalext.NewPlanner(cfg).Plan(ctx, gdalext.PlanOptions{})
//	for _, d := range plan.Diagnostics {
//	    log.Println(d)
//	}
//	if err != nil {
//	    return err // e.g. errors.Is(err, gdalext.ErrGeneratorMissing)
//	}
//
// Resolving flags on its own:
//
//	res := (&gdalext.FlagResolver{}).Resolve(ctx)
//	fmt.Println(res.Options.IncludeDirs, res.Options.Libraries)
//
// # Failure Policies
//
// Flag resolution never fails: a missing or broken helper yields empty
// BuildOptions and a warning diagnostic, and any resulting problem surfaces
// later at compile or link time.
//
// Source selection fails hard: a repository checkout (MANIFEST.in present)
// without cython returns an error matching ErrGeneratorMissing and no targets
// are declared. The package never exits the process itself.
//
// # Architecture
//
//	Planner
//	├── FlagResolver (gdal-config --cflags / --libs)
//	├── SelectSources (MANIFEST.in probe)
//	└── GeneratorRegistry
//	    └── CythonGenerator (.pyx → .c)
package gdalext
