//go:build mage

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"

	gdalext "github.com/contriboss/gdal-extension-go"
)

// Default target to run when none is specified.
var Default = Test

// Vet runs go vet on every package.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Test runs the test suite.
func Test() error {
	mg.Deps(Vet)
	return sh.RunV("go", "test", "-race", "./...")
}

// Install builds and installs the gdalext command.
func Install() error {
	mg.Deps(Test)
	return sh.RunV("go", "install", "./cmd/gdalext")
}

// Plan prints the build plan of the project in $GDALEXT_DIR (default ".").
func Plan(ctx context.Context) error {
	root := os.Getenv("GDALEXT_DIR")
	if root == "" {
		root = "."
	}

	cfg, err := gdalext.LoadConfig(root, "")
	if err != nil {
		return err
	}

	plan, err := gdalext.NewPlanner(cfg).Plan(ctx, gdalext.PlanOptions{SkipGeneration: true})
	for _, d := range plan.Diagnostics {
		fmt.Println(d)
	}
	if err != nil {
		return mg.Fatal(1, err)
	}

	for _, ext := range plan.Extensions {
		fmt.Printf("%s: %v\n", ext.Name, ext.Sources)
	}
	return nil
}
