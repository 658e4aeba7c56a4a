package cmd

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jufengpp/signup/internal/config"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the signup config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default config file",
	Long: `Write the commented default config file.

The file goes to .signup/config.yaml unless a path is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.LocalConfigPath
		if len(args) == 1 {
			path = args[0]
		}
		if _, err := os.Stat(path); err == nil && !configForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := config.WriteDefaultConfig(path); err != nil {
			return err
		}
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return err
	},
}

var configUseCmd = &cobra.Command{
	Use:   "use <env>",
	Short: "Select the API environment in the config file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env := args[0]
		loaded, err := config.Load(viper.GetViper(), cfgFile)
		if err != nil {
			return err
		}
		names := loaded.EnvironmentNames()
		if !slices.Contains(names, env) {
			return fmt.Errorf("unknown environment %q (known: %s)", env, strings.Join(names, ", "))
		}

		path := viper.ConfigFileUsed()
		if path == "" {
			path = config.LocalConfigPath
		}
		if err := config.SaveEnv(path, env); err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "Using %s (%s)\n", env, loaded.Environments[env].BaseURL)
		return err
	},
}

func init() {
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd, configUseCmd)
	rootCmd.AddCommand(configCmd)
}
