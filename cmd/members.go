package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jufengpp/signup/internal/members"
)

var (
	membersOutput  string
	membersRefresh bool
)

var membersCmd = &cobra.Command{
	Use:   "members",
	Short: "Print the registration list",
	Long: `Fetch every registration from the API and print it once.

Examples:
  # Aligned table
  signup members

  # YAML for scripts
  signup members --output yaml`,
	RunE: runMembers,
}

func init() {
	membersCmd.Flags().StringVarP(&membersOutput, "output", "o", "table", "output format: table or yaml")
	membersCmd.Flags().BoolVar(&membersRefresh, "refresh", false, "bypass the member cache")
	rootCmd.AddCommand(membersCmd)
}

func runMembers(cmd *cobra.Command, _ []string) error {
	if membersOutput != "table" && membersOutput != "yaml" {
		return fmt.Errorf("unknown output format %q (want table or yaml)", membersOutput)
	}
	if err := loadConfig(); err != nil {
		return err
	}
	rt, err := newDeps(cfg)
	if err != nil {
		return err
	}
	defer rt.Close()

	records, err := rt.services.Members.List(context.Background(), membersRefresh)
	if err != nil {
		return fmt.Errorf("listing members: %w", err)
	}

	if membersOutput == "yaml" {
		return members.WriteYAML(cmd.OutOrStdout(), records)
	}
	return members.WriteTable(cmd.OutOrStdout(), records)
}
