package cmd

import (
	"fmt"
	"os/exec"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/user/clip-browser/config"
	"github.com/user/clip-browser/logging"
	"github.com/user/clip-browser/mpv"
	"github.com/user/clip-browser/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse [source]",
	Short: "Browse a clip table in the terminal UI",
	Long: `Open the terminal browser on a data source (default: the configured default
source, or the first .db file in the data directory). Selecting a row plays its
segment in mpv; press ? inside the browser for keybindings.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		// The alt screen owns the terminal; send logs to a file instead.
		closer, err := logging.InitFile(cfg.LogFile, verbose)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer closer.Close()

		var source string
		if len(args) == 1 {
			source = args[0]
		}

		opts := tui.Options{
			Config: cfg,
			Source: source,
			Logger: logging.WithComponent("tui").With().Str("session", uuid.NewString()).Logger(),
		}

		noPlayer, _ := cmd.Flags().GetBool("no-player")
		var process *exec.Cmd
		if !noPlayer {
			client, p, err := connectPlayer(cfg)
			if err != nil {
				// Browsing works without playback.
				log.Warn().Err(err).Msg("no player, clips will resolve without playing")
			} else {
				defer client.Close()
				opts.Player = client
				if c, ok := p.(*exec.Cmd); ok {
					process = c
				}
			}
		}

		err = tui.Run(opts)

		if process != nil && process.Process != nil {
			process.Process.Kill()
			process.Wait()
		}
		return err
	},
}

func init() {
	browseCmd.Flags().Bool("no-player", false, "browse without starting or connecting to mpv")
	rootCmd.AddCommand(browseCmd)
}

var _ tui.Player = (*mpv.Client)(nil)
