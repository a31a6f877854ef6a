package gdalext

import (
	"errors"
	"fmt"
)

// ErrGeneratorMissing indicates a repository checkout cannot be built because
// the source generator is unavailable. It is not recoverable: no compilable
// native source exists without the generator.
var ErrGeneratorMissing = errors.New("source generator not available")

// GeneratorMissingError is returned when a repository build needs a
// generator that is not installed, or no generator handles a source.
//
// It matches ErrGeneratorMissing with errors.Is.
type GeneratorMissingError struct {
	Generator string // Generator name, empty if no generator handles Source
	Source    string // Intermediate-language source that needed generating
	Marker    string // Marker file that selected repository mode
	Err       error  // Underlying tool check error
}

func (e *GeneratorMissingError) Error() string {
	msg := ErrGeneratorMissing.Error()
	if e.Generator != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Generator)
	}
	if e.Source != "" {
		msg = fmt.Sprintf("%s (needed for %s)", msg, e.Source)
	}
	if e.Marker != "" {
		msg = fmt.Sprintf("%s; %s found, building from a repository", msg, e.Marker)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *GeneratorMissingError) Is(target error) bool {
	return target == ErrGeneratorMissing
}

func (e *GeneratorMissingError) Unwrap() error {
	return e.Err
}

// PlanError wraps an error with the planning step that produced it.
type PlanError struct {
	Step string // metadata, sources, generate
	Err  error
}

func (e *PlanError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *PlanError) Unwrap() error {
	return e.Err
}
