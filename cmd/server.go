package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/themegen/internal/server"
	"github.com/ziadkadry99/themegen/internal/studio"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the design studio in the browser",
	Long:  `Starts the studio web UI: submit a brief, watch progress, compare the three designs side by side and download them.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().Int("port", 0, "port to listen on (overrides config)")
	rootCmd.AddCommand(serverCmd)
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	port := cfg.Studio.Port
	if p, _ := cmd.Flags().GetInt("port"); p > 0 {
		port = p
	}

	gen, err := newGenerator(cfg)
	if err != nil {
		return err
	}

	database, store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	ws := studio.NewWorkspace(gen, store, studio.Options{
		Interval: cfg.ProgressInterval(),
		Provider: string(cfg.Provider),
		Logger:   log,
	})
	defer ws.Close()

	srv := server.New(server.Config{Port: port, AllowAll: cfg.Studio.AllowAll}, database, log)
	studio.New(ws, studio.Config{
		MaxAttachmentBytes: int64(cfg.Studio.MaxAttachmentMB) << 20,
		Logger:             log,
	}).RegisterRoutes(srv.Router())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("version", Version).
		Int("port", port).
		Str("database", database.Path()).
		Str("model", gen.Model()).
		Msg("studio starting")
	fmt.Fprintf(os.Stderr, "Open http://localhost:%d in your browser\n", port)

	if err := srv.Run(ctx); err != nil {
		return err
	}
	log.Info().Msg("studio stopped")
	return nil
}
