package gdalext

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CythonGenerator translates .pyx sources to C with the cython compiler.
type CythonGenerator struct {
	// Runner executes cython. Defaults to ShellRunner.
	Runner CommandRunner
}

// Name returns the generator name
func (g *CythonGenerator) Name() string {
	return "Cython"
}

// RequiredTools returns the tools needed to generate C from .pyx files
func (g *CythonGenerator) RequiredTools() []ToolRequirement {
	return []ToolRequirement{
		{
			Name:         "cython",
			Alternatives: []string{"cython3", "cython.exe"},
			Purpose:      "Cython is required to build from a repository checkout",
		},
	}
}

// CheckTools verifies that cython is available
func (g *CythonGenerator) CheckTools() error {
	return CheckRequiredTools(g.RequiredTools())
}

// CanGenerate checks if the source is a Cython module
func (g *CythonGenerator) CanGenerate(source string) bool {
	return MatchesExtension(source, ".pyx")
}

// OutputFor returns the C file cython writes next to the .pyx source
func (g *CythonGenerator) OutputFor(source string) string {
	return SwapExtension(source, ".c")
}

// Generate runs cython -o <output> <source> with the project root as its
// working directory
func (g *CythonGenerator) Generate(ctx context.Context, config *Config, source string) (*GenerateResult, error) {
	result := &GenerateResult{Source: source, Output: []string{}}

	tool := LookupTool(g.RequiredTools()[0])
	if tool == "" {
		result.Error = &GeneratorMissingError{Generator: g.Name(), Source: source, Err: g.CheckTools()}
		return result, result.Error
	}

	srcPath := config.Path(source)
	if _, err := os.Stat(srcPath); err != nil {
		result.Error = GenerateError(g.Name(), source, nil, err)
		return result, result.Error
	}

	// cython runs inside Root, so relative paths would resolve twice.
	absSrc, err := filepath.Abs(srcPath)
	if err != nil {
		result.Error = GenerateError(g.Name(), source, nil, err)
		return result, result.Error
	}
	output, err := filepath.Abs(config.Path(g.OutputFor(source)))
	if err != nil {
		result.Error = GenerateError(g.Name(), source, nil, err)
		return result, result.Error
	}
	args := append([]string{}, config.GeneratorArgs...)
	args = append(args, "-o", output, absSrc)

	var out bytes.Buffer
	runner := g.Runner
	if runner == nil {
		runner = ShellRunner{}
	}
	_, err = runner.Exec(ctx, config.Root, &out, &out, tool, args...)
	result.Output = append(result.Output, strings.Split(strings.TrimRight(out.String(), "\n"), "\n")...)

	if err != nil {
		result.Error = GenerateError(g.Name(), source, result.Output, err)
		return result, result.Error
	}

	if _, err := os.Stat(output); err != nil {
		result.Error = GenerateError(g.Name(), source, result.Output, fmt.Errorf("%s not generated", output))
		return result, result.Error
	}

	result.Generated = []string{g.OutputFor(source)}
	result.Success = true
	return result, nil
}
