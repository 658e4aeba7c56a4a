package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var slotsCmd = &cobra.Command{
	Use:   "slots",
	Short: "Print the remaining slots once",
	RunE:  runSlots,
}

func init() {
	rootCmd.AddCommand(slotsCmd)
}

func runSlots(cmd *cobra.Command, _ []string) error {
	if err := loadConfig(); err != nil {
		return err
	}
	rt, err := newDeps(cfg)
	if err != nil {
		return err
	}
	defer rt.Close()

	status, err := rt.services.Tracker.Poll(context.Background())
	if err != nil {
		return fmt.Errorf("fetching remaining slots: %w", err)
	}

	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(out, "剩余名额 %d / %d\n", status.RemainingSlots, cfg.Activity.Capacity); err != nil {
		return err
	}
	if status.IsFull {
		_, err = fmt.Fprintln(out, "报名名额已满")
	}
	return err
}
