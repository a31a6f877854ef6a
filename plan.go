package gdalext

import (
	"context"
	"errors"
)

// PlanOptions tunes a single Plan call.
type PlanOptions struct {
	// SkipGeneration declares repository-mode targets without running the
	// generator. The generator must still be installed.
	SkipGeneration bool
}

// Planner turns a Config into a BuildPlan.
//
// # Process Flow
//
//  1. Metadata: read the version and long description (hard failure)
//  2. Flags: resolve BuildOptions through the helper (soft failure)
//  3. Sources: pick repository or distribution sources (hard failure)
//  4. Generate: translate intermediate sources, repository mode only (hard failure)
//  5. Declare: one Extension per configured extension
//
// Soft failures only add diagnostics. Hard failures return an error wrapped
// in *PlanError together with the partial plan, which declares no extensions.
type Planner struct {
	Config     *Config
	Resolver   *FlagResolver
	Generators *GeneratorRegistry
}

// NewPlanner creates a planner with a resolver and generator registry
// configured from config.
func NewPlanner(config *Config) *Planner {
	return &Planner{
		Config: config,
		Resolver: &FlagResolver{
			Helper:       config.Helper,
			KeepArtifact: config.KeepArtifact,
		},
		Generators: NewGeneratorRegistry(),
	}
}

// Plan runs every planning step and returns the resulting plan.
//
// The returned plan is never nil, so its Diagnostics can be reported even
// when err is non-nil.
func (p *Planner) Plan(ctx context.Context, opts PlanOptions) (*BuildPlan, error) {
	plan := &BuildPlan{Extensions: []Extension{}}

	metadata, err := p.metadata()
	if err != nil {
		return p.fail(plan, "metadata", err)
	}
	plan.Metadata = metadata

	plan.Options = p.resolveOptions(ctx, plan)

	selection, err := SelectSources(ctx, p.Config, p.Generators)
	if err != nil {
		return p.fail(plan, "sources", err)
	}
	plan.Mode = selection.Mode
	plan.Diagnostics.add(SeverityInfo, "building from %s sources", selection.Mode)

	generated := make(map[string][]string)
	if selection.Mode == SourceModeRepository && !opts.SkipGeneration {
		results, err := p.Generators.GenerateAll(ctx, p.Config, selection.PendingSources())
		if err != nil {
			return p.fail(plan, "generate", err)
		}
		for _, res := range results {
			generated[res.Source] = append(generated[res.Source], res.Generated...)
		}
	}

	for _, ext := range selection.Extensions {
		declared := Extension{
			Name:    ext.Name,
			Sources: append([]string{}, ext.Sources...),
			Options: plan.Options.Clone(),
		}
		for _, src := range ext.Sources {
			declared.Generated = append(declared.Generated, generated[src]...)
		}
		plan.Extensions = append(plan.Extensions, declared)
	}

	return plan, nil
}

func (p *Planner) metadata() (Metadata, error) {
	metadata := p.Config.Metadata

	version, err := ReadVersion(p.Config.Path(p.Config.VersionFile), p.Config.VersionMarker)
	if err != nil {
		return metadata, err
	}
	metadata.Version = version

	paths := make([]string, 0, len(p.Config.DescriptionFiles))
	for _, f := range p.Config.DescriptionFiles {
		paths = append(paths, p.Config.Path(f))
	}
	if len(paths) > 0 {
		long, err := ReadLongDescription(paths...)
		if err != nil {
			return metadata, err
		}
		metadata.LongDescription = long
	}

	return metadata, nil
}

// resolveOptions runs the helper and appends the configured build options.
func (p *Planner) resolveOptions(ctx context.Context, plan *BuildPlan) BuildOptions {
	res := p.Resolver.Resolve(ctx)
	plan.Diagnostics = append(plan.Diagnostics, res.Diagnostics...)
	if res.Artifact != "" {
		plan.Diagnostics.add(SeverityDebug, "helper output kept in %s", res.Artifact)
	}

	if p.Config.MinGDALVersion != "" && !res.Options.IsEmpty() {
		version, err := p.Resolver.ProbeVersion(ctx)
		if err == nil {
			err = CheckMinimumVersion(version, p.Config.MinGDALVersion)
		}
		if err != nil {
			plan.Diagnostics.add(SeverityWarning, "GDAL version check: %v", err)
		}
	}

	return res.Options.Merge(p.Config.BuildOptions)
}

func (p *Planner) fail(plan *BuildPlan, step string, err error) (*BuildPlan, error) {
	plan.Extensions = []Extension{}
	if errors.Is(err, ErrGeneratorMissing) {
		plan.Diagnostics.add(SeverityCritical, "%v", err)
	}
	return plan, &PlanError{Step: step, Err: err}
}
