package cli

import (
	"errors"

	"github.com/spf13/cobra"

	gdalext "github.com/contriboss/gdal-extension-go"
	"github.com/contriboss/gdal-extension-go/internal/log"
)

func newPlanCommand(root *rootOptions) *cobra.Command {
	var (
		format       string
		skipGenerate bool
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Resolve flags, select sources and print the extension build plan",
		Long: `Plan reads the package metadata, resolves GDAL build flags, selects the
extension sources and, in a repository checkout, generates C sources with
Cython. The resulting plan is printed for the packaging tool.

A repository checkout (MANIFEST.in present) without Cython is fatal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}

			plan, err := gdalext.NewPlanner(cfg).Plan(cmd.Context(), gdalext.PlanOptions{
				SkipGeneration: skipGenerate,
			})
			log.Report(log.G(cmd.Context()), plan.Diagnostics)
			if err != nil {
				if errors.Is(err, gdalext.ErrGeneratorMissing) {
					return &exitError{code: 1, err: err}
				}
				return err
			}

			return writeStructured(cmd.OutOrStdout(), format, plan)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "o", formatJSON, "output format: json or yaml")
	cmd.Flags().BoolVar(&skipGenerate, "skip-generate", false, "do not run the source generator in a repository checkout")

	return cmd
}

// exitError marks an error whose diagnostics were already logged.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// ExitCode returns the process exit status for an error returned by Execute.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	return 1
}

// Reported reports whether err was already logged by the command.
func Reported(err error) bool {
	var exitErr *exitError
	return errors.As(err, &exitErr)
}
