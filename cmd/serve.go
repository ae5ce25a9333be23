package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/user/clip-browser/clip"
	"github.com/user/clip-browser/config"
	"github.com/user/clip-browser/logging"
	"github.com/user/clip-browser/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the clip resolution API over HTTP",
	Long: `Serve a JSON API listing data sources and their rows and resolving table
selections to playback targets and embed addresses.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}

		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		s := server.New(cfg, clip.NewResolver(nil), logging.WithComponent("server"))
		srv := &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           s.Router(),
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Info().Str("addr", srv.Addr).Str("data_dir", cfg.DataDir).Msg("serving")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		log.Info().Msg("server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from config: 127.0.0.1:8050)")
	rootCmd.AddCommand(serveCmd)
}
