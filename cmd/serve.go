package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/wondershelf/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the shelf as an HTTP/JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd, os.Stderr)
		if err != nil {
			return err
		}
		defer rt.Close()

		addr := rt.cfg.ServerAddr
		if v, _ := cmd.Flags().GetString("addr"); v != "" {
			addr = v
		}

		h := server.NewRouter(&server.Container{
			Activities:    rt.activities,
			Generator:     rt.generator,
			Shelves:       rt.shelves,
			Fallback:      rt.fallback(),
			QuestionCount: rt.cfg.QuestionCount,
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return server.ListenAndServe(ctx, addr, h)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides WONDERSHELF_ADDR, default :8080)")
}
