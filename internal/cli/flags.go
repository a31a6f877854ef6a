package cli

import (
	"github.com/spf13/cobra"

	gdalext "github.com/contriboss/gdal-extension-go"
	"github.com/contriboss/gdal-extension-go/internal/log"
)

func newFlagsCommand(root *rootOptions) *cobra.Command {
	var (
		format       string
		keepArtifact bool
	)

	cmd := &cobra.Command{
		Use:   "flags",
		Short: "Print the include dirs, library dirs and libraries reported by gdal-config",
		Long: `Flags runs the configuration helper for compiler and linker flags and
prints the parsed build options. A missing helper is not an error: the
options are then empty and a warning is logged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}

			resolver := &gdalext.FlagResolver{
				Helper:       cfg.Helper,
				KeepArtifact: keepArtifact || cfg.KeepArtifact,
			}
			res := resolver.Resolve(cmd.Context())
			log.Report(log.G(cmd.Context()), res.Diagnostics)
			if res.Artifact != "" {
				log.G(cmd.Context()).Infof("helper output kept in %s", res.Artifact)
			}

			opts := res.Options.Merge(cfg.BuildOptions)
			if format == formatText {
				return writeOptionsText(cmd.OutOrStdout(), opts)
			}
			return writeStructured(cmd.OutOrStdout(), format, opts)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "o", formatText, "output format: text, json or yaml")
	cmd.Flags().BoolVar(&keepArtifact, "keep-artifact", false, "keep the captured helper output on disk")

	return cmd
}
