package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	gdalext "github.com/contriboss/gdal-extension-go"
	"github.com/contriboss/gdal-extension-go/internal/log"
)

func newCheckCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check that the tools needed for this checkout are installed",
		Long: `Check reports the source mode, whether the configuration helper and the
source generator can be found, and the GDAL version against min_gdal_version.

Only a missing generator in a repository checkout makes check fail; a
missing helper is reported but tolerated, as it is during planning.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			mode, err := gdalext.DetectSourceMode(cfg.Root, cfg.MarkerFile)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "mode: %s\n", mode)

			resolver := &gdalext.FlagResolver{Helper: cfg.Helper}
			version, err := resolver.ProbeVersion(cmd.Context())
			switch {
			case err != nil:
				fmt.Fprintf(out, "helper: %s unavailable (%v)\n", cfg.Helper, err)
			default:
				fmt.Fprintf(out, "helper: %s reports GDAL %s\n", cfg.Helper, version)
				if verr := gdalext.CheckMinimumVersion(version, cfg.MinGDALVersion); verr != nil {
					fmt.Fprintf(out, "warning: %v\n", verr)
				}
			}

			if mode != gdalext.SourceModeRepository {
				fmt.Fprintln(out, "generator: not needed")
				return nil
			}

			_, err = gdalext.SelectSources(cmd.Context(), cfg, gdalext.NewGeneratorRegistry())
			if err != nil {
				if errors.Is(err, gdalext.ErrGeneratorMissing) {
					fmt.Fprintln(out, "generator: missing")
					log.Report(log.G(cmd.Context()), gdalext.Diagnostics{
						{Severity: gdalext.SeverityCritical, Message: err.Error()},
					})
					return &exitError{code: 1, err: err}
				}
				return err
			}
			fmt.Fprintln(out, "generator: ok")
			return nil
		},
	}
}
