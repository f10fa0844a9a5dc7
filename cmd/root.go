package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/worksheetai/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "worksheetai",
	Short: "AI worksheet generator",
	Long:  "Worksheet AI turns a topic, grade level and question mix into a printable worksheet.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("log-file", "", "Log file path (overrides WORKSHEETAI_LOG_FILE env var)")
	rootCmd.Flags().String("out-dir", ".", "Directory exported worksheets are saved to")
	rootCmd.Flags().Bool("skip-welcome", false, "Start on the form instead of the splash screen")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveLogFile returns the log path using --log-file (highest priority),
// then WORKSHEETAI_LOG_FILE, then fallback. An empty result logs to stderr.
func resolveLogFile(cmd *cobra.Command, fallback string) string {
	if p, _ := cmd.Flags().GetString("log-file"); p != "" {
		return p
	}
	if p := os.Getenv("WORKSHEETAI_LOG_FILE"); p != "" {
		return p
	}
	return fallback
}

// newLogger builds the process logger from WORKSHEETAI_LOG_MODE.
func newLogger(cmd *cobra.Command, fallbackFile string) (*logger.Logger, error) {
	return logger.New(os.Getenv("WORKSHEETAI_LOG_MODE"), resolveLogFile(cmd, fallbackFile))
}

// tuiLogFile keeps log lines off the alternate screen.
func tuiLogFile() string {
	return filepath.Join(os.TempDir(), "worksheetai.log")
}
