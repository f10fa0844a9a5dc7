package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/worksheetai/internal/selfupdate"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Replace this binary with a newer worksheetai release",
	Example: `  worksheetai update
  worksheetai update --to v1.2.0`,
	RunE: func(cmd *cobra.Command, args []string) error {
		target, _ := cmd.Flags().GetString("to")
		timeout, _ := cmd.Flags().GetDuration("timeout")
		return runUpdate(cmd.Context(), cmd.OutOrStdout(), target, timeout)
	},
}

func runUpdate(ctx context.Context, out io.Writer, target string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	checker := selfupdate.NewChecker(selfupdate.WithTimeout(timeout))
	err := checker.Update(ctx, &selfupdate.UpdateInput{
		CurrentVersion: version,
		TargetVersion:  target,
	}, func(p selfupdate.UpdateProgress) {
		_, _ = fmt.Fprintf(out, "[%s] %s\n", p.Stage, p.Message)
	})

	switch {
	case errors.Is(err, selfupdate.ErrDevBuild):
		_, _ = fmt.Fprintln(out, "This is a source build; install a tagged release to use update.")
	case errors.Is(err, selfupdate.ErrAlreadyLatest):
		_, _ = fmt.Fprintf(out, "worksheetai %s is up to date.\n", version)
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w\n\nThe executable is not writable; rerun with sudo", err)
	default:
		return err
	}
	return nil
}

func init() {
	updateCmd.Flags().String("to", "", "Install this release tag instead of the newest one")
	updateCmd.Flags().Duration("timeout", 2*time.Minute, "Give up if the download takes longer than this")
}
