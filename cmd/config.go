package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/http-observer/internal/app"
)

var (
	//nolint:gochecknoglobals // Cobra command requires a global definition.
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Configuration management commands",
		// Overrides the root pre-run: the file these commands write may not exist yet.
		PersistentPreRun: func(*cobra.Command, []string) {},
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition.
	configInitCmd = &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with default values",
		Long: `Writes a YAML configuration file populated with default values
to the path given by --config, or to the default location.

An existing file is kept unless --force is given.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			force, _ := cmd.Flags().GetBool("force")

			app.ExecuteConfigInitCommand(cmd.Context(), configFilenameFromFlag, force)
		},
	}
)

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	configInitCmd.Flags().BoolP("force", "f", false, "overwrite an existing configuration file.")

	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
