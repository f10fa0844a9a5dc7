package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/worksheetai/internal/selfupdate"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("worksheetai", version)

		check, _ := cmd.Flags().GetBool("check")
		if !check {
			return nil
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()
		res, err := selfupdate.NewChecker().Check(ctx, &selfupdate.CheckInput{Version: version})
		if err != nil {
			return fmt.Errorf("check for updates: %w", err)
		}
		if res.UpdateAvailable {
			fmt.Printf("%s is available: %s\nRun: worksheetai update\n", res.LatestVersion, res.ReleaseURL)
		} else {
			fmt.Println("Up to date.")
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().Bool("check", false, "Also check GitHub for a newer release")
}
