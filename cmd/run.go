package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/worksheetai/internal/app"
	"github.com/abhisek/worksheetai/internal/form"
	"github.com/abhisek/worksheetai/internal/llm"
	"github.com/abhisek/worksheetai/internal/logger"
	"github.com/abhisek/worksheetai/internal/sheetgen"
)

// newGenerator creates the configured provider and the worksheet
// generator on top of it. A missing API key fails here, at startup.
func newGenerator(cmd *cobra.Command, log *logger.Logger) (*sheetgen.LLMGenerator, llm.Provider, error) {
	provider, err := llm.NewProviderFromEnv(cmd.Context(), log)
	if err != nil {
		return nil, nil, fmt.Errorf("LLM provider: %w", err)
	}
	return sheetgen.New(provider, sheetgen.DefaultConfig(), log), provider, nil
}

// runApp builds dependencies and launches the TUI.
func runApp(cmd *cobra.Command) error {
	log, err := newLogger(cmd, tuiLogFile())
	if err != nil {
		return err
	}
	defer log.Sync()

	gen, provider, err := newGenerator(cmd, log)
	if err != nil {
		return err
	}

	outDir, _ := cmd.Flags().GetString("out-dir")
	skipWelcome, _ := cmd.Flags().GetBool("skip-welcome")

	return app.Run(app.Options{
		Controller:  form.NewController(nil),
		Generator:   gen,
		Status:      provider.ModelID(),
		OutputDir:   outDir,
		SkipWelcome: skipWelcome,
		Log:         log,
	})
}
