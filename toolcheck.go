package gdalext

import (
	"fmt"
	"os/exec"
	"strings"
)

// ToolChecker is an optional interface for generators that require external tools.
//
// Generators implement it to declare their tool dependencies so source
// selection can fail fast, before anything is generated, when a repository
// checkout cannot be built.
//
// # Consumer Usage
//
//	if checker, ok := gen.(ToolChecker); ok {
//	    if err := checker.CheckTools(); err != nil {
//	        return fmt.Errorf("generator tools missing: %w", err)
//	    }
//	}
type ToolChecker interface {
	// RequiredTools returns the list of tools this generator needs.
	RequiredTools() []ToolRequirement

	// CheckTools returns nil if all required tools are found, or an error
	// naming the missing ones. Optional tools never cause an error.
	CheckTools() error
}

// ToolRequirement describes an external tool dependency.
//
// # Examples
//
// Required tool with alternatives:
//
//	ToolRequirement{
//	    Name:         "cython",
//	    Alternatives: []string{"cython3"},
//	    Purpose:      "Cython source generator",
//	}
//
// Optional tool:
//
//	ToolRequirement{
//	    Name:     "gdal-config",
//	    Optional: true,
//	    Purpose:  "GDAL build flags",
//	}
type ToolRequirement struct {
	// Name is the primary tool binary name (e.g., "cython", "gdal-config").
	Name string

	// Alternatives are other names that satisfy the requirement.
	Alternatives []string

	// Optional tools are reported but never cause an error when missing.
	Optional bool

	// Purpose is a human-readable description of why this tool is needed.
	Purpose string
}

// CheckToolAvailable checks if a tool is available in the system PATH.
//
// This is a thin wrapper around exec.LookPath with a consistent error message.
func CheckToolAvailable(tool string) error {
	_, err := exec.LookPath(tool)
	if err != nil {
		return fmt.Errorf("%s not found in PATH", tool)
	}
	return nil
}

// LookupTool returns the first available name for req: the primary name,
// then each alternative in order. It returns "" if none is found.
func LookupTool(req ToolRequirement) string {
	for _, name := range append([]string{req.Name}, req.Alternatives...) {
		if CheckToolAvailable(name) == nil {
			return name
		}
	}
	return ""
}

// CheckRequiredTools verifies all required tools are available.
//
// # Behavior
//
//   - Checks the primary tool name first, then each alternative
//   - Optional tools are checked but don't cause errors
//   - Returns all missing required tools in a single error
//
// # Error Format
//
// Single missing tool:
//
//	cython (Cython source generator) not found in PATH
//
// Multiple missing tools:
//
//	missing required tools: cython (Cython source generator), cc (C compiler)
func CheckRequiredTools(requirements []ToolRequirement) error {
	var missingTools []string

	for _, req := range requirements {
		if LookupTool(req) != "" || req.Optional {
			continue
		}
		if req.Purpose != "" {
			missingTools = append(missingTools, fmt.Sprintf("%s (%s)", req.Name, req.Purpose))
		} else {
			missingTools = append(missingTools, req.Name)
		}
	}

	if len(missingTools) == 0 {
		return nil
	}

	if len(missingTools) == 1 {
		return fmt.Errorf("%s not found in PATH", missingTools[0])
	}

	return fmt.Errorf("missing required tools: %s", strings.Join(missingTools, ", "))
}
