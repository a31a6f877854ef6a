package cli

import (
	"github.com/spf13/cobra"

	gdalext "github.com/contriboss/gdal-extension-go"
	"github.com/contriboss/gdal-extension-go/internal/log"
)

// Version is set at build time.
var Version = "0.1.0"

// rootOptions holds the flags shared by every command.
type rootOptions struct {
	dir     string
	cfgFile string
	helper  string
	debug   bool
}

// NewRootCommand builds the gdalext command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "gdalext",
		Short: "Resolve the build configuration of GDAL native extensions",
		Long: `gdalext discovers the compiler and linker flags of a GDAL installation
through gdal-config, decides whether extension sources must be generated with
Cython or are shipped pre-generated, and prints the resulting build plan.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := "info"
			if opts.debug {
				level = "debug"
			}
			logger, err := log.New(cmd.ErrOrStderr(), level)
			if err != nil {
				return err
			}
			cmd.SetContext(log.WithLogger(cmd.Context(), logger))
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.dir, "dir", "C", ".", "project root directory")
	cmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is <dir>/"+gdalext.DefaultConfigFile+")")
	cmd.PersistentFlags().StringVar(&opts.helper, "helper", "", "configuration helper to run (default gdal-config)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(newFlagsCommand(opts))
	cmd.AddCommand(newPlanCommand(opts))
	cmd.AddCommand(newCheckCommand(opts))
	cmd.AddCommand(newVersionCommand())

	return cmd
}

// loadConfig reads the project config and applies flag overrides.
func (o *rootOptions) loadConfig() (*gdalext.Config, error) {
	cfg, err := gdalext.LoadConfig(o.dir, o.cfgFile)
	if err != nil {
		return nil, err
	}
	if o.helper != "" {
		cfg.Helper = o.helper
	}
	return cfg, nil
}

// Execute runs the command tree against the process arguments.
// This is called by main.main().
func Execute() error {
	return NewRootCommand().Execute()
}
