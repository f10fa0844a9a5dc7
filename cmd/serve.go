package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/worksheetai/internal/form"
	"github.com/abhisek/worksheetai/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the worksheet form in a browser",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")

		log, err := newLogger(cmd, "")
		if err != nil {
			return err
		}
		defer log.Sync()

		gen, provider, err := newGenerator(cmd, log)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		srv := web.NewServer(web.Options{
			Controller: form.NewController(nil),
			Generator:  gen,
			Log:        log,
		})
		fmt.Printf("Worksheet AI (%s) on http://%s\n", provider.ModelID(), addr)
		return srv.ListenAndServe(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", web.DefaultAddr, "Listen address")
}
