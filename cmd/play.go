package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/user/clip-browser/clip"
	"github.com/user/clip-browser/config"
	"github.com/user/clip-browser/mpv"
	"github.com/user/clip-browser/pkg/timeutil"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <source> <row>",
	Short: "Resolve a table row to a playback target",
	Long: `Resolve row <row> (1-based, as numbered by 'rows' with the same flags) to a
playback target and print it with its embed address.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		target, err := resolveRow(cmd, cfg, args[0], args[1])
		if err != nil {
			return err
		}

		fmt.Printf("Media:  %s\n", target.MediaID)
		fmt.Printf("Start:  %s (%ds)\n", timeutil.FormatTime(float64(target.StartSeconds)), target.StartSeconds)
		fmt.Printf("End:    %s (%ds)\n", timeutil.FormatTime(float64(target.EndSeconds)), target.EndSeconds)
		fmt.Printf("Embed:  %s\n", clip.EmbedURL(cfg.Embed.EmbedBase, target))
		fmt.Printf("Watch:  %s\n", clip.WatchURL(cfg.Embed.WatchBase, target))
		return nil
	},
}

var playCmd = &cobra.Command{
	Use:   "play <source> <row>",
	Short: "Play a table row in mpv",
	Long: `Resolve row <row> (1-based) and load the segment into mpv. A running mpv with the
configured IPC socket is reused; otherwise one is started and this command waits for it to exit.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		target, err := resolveRow(cmd, cfg, args[0], args[1])
		if err != nil {
			return err
		}

		client, process, err := connectPlayer(cfg)
		if err != nil {
			return err
		}
		defer client.Close()

		if err := client.PlayTarget(cfg.Embed.WatchBase, target); err != nil {
			return fmt.Errorf("failed to play clip: %w", err)
		}
		fmt.Printf("Playing %s %s–%s\n", target.MediaID,
			timeutil.FormatTime(float64(target.StartSeconds)),
			timeutil.FormatTime(float64(target.EndSeconds)))

		if process != nil {
			return process.Wait()
		}
		return nil
	},
}

// resolveRow loads the view of source and resolves the 1-based row number in it.
func resolveRow(cmd *cobra.Command, cfg *config.Config, source, rowArg string) (clip.PlaybackTarget, error) {
	n, err := strconv.Atoi(rowArg)
	if err != nil {
		return clip.PlaybackTarget{}, fmt.Errorf("invalid row number: %s", rowArg)
	}

	_, rows, err := loadView(cmd, cfg, source)
	if err != nil {
		return clip.PlaybackTarget{}, err
	}

	cell := &clip.ActiveCell{Row: n - 1}
	target, ok, err := clip.NewResolver(nil).Resolve(cell, rows, nil)
	if err != nil {
		var fe *timeutil.FormatError
		if errors.As(err, &fe) {
			log.Warn().Str("input", fe.Input).Int("row", n).Msg("malformed timecode")
		}
		return clip.PlaybackTarget{}, err
	}
	if !ok {
		if n < 1 || n > len(rows) {
			return clip.PlaybackTarget{}, fmt.Errorf("row %d out of range (view has %d rows)", n, len(rows))
		}
		return clip.PlaybackTarget{}, fmt.Errorf("row %d has no media id or timecodes", n)
	}
	return target, nil
}

// connectPlayer connects to a running mpv, launching one when none is listening
// and the config allows it. The returned process is nil for a reused player.
func connectPlayer(cfg *config.Config) (*mpv.Client, processWaiter, error) {
	client := mpv.NewClient(cfg.Player.SocketPath)
	if err := client.Connect(); err == nil {
		return client, nil, nil
	} else if !cfg.Player.Launch {
		return nil, nil, fmt.Errorf("failed to connect to mpv: %w", err)
	}

	process, err := mpv.Launch(cfg.Player.SocketPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to launch mpv: %w", err)
	}
	if err := client.ConnectWithRetry(5 * time.Second); err != nil {
		if process.Process != nil {
			process.Process.Kill()
		}
		return nil, nil, fmt.Errorf("failed to connect to mpv: %w", err)
	}
	log.Debug().Str("socket", client.SocketPath()).Msg("mpv launched")
	return client, process, nil
}

// processWaiter is the part of *exec.Cmd the play command needs.
type processWaiter interface {
	Wait() error
}

func init() {
	addViewFlags(resolveCmd)
	addViewFlags(playCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(playCmd)
}
