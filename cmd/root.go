package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/user/clip-browser/config"
	"github.com/user/clip-browser/deps"
	"github.com/user/clip-browser/logging"
)

var Version = "0.1.0"

var (
	cfgFile string
	verbose bool
	dataDir string
)

var rootCmd = &cobra.Command{
	Use:   "clip-browser",
	Short: "Browse timecoded clip tables and play the selected clip",
	Long: `clip-browser reads tables of timecoded video segments from SQLite files
and plays the segment you select.

Features:
  - Browse, sort and filter clip tables in a terminal UI
  - Play the selected segment in mpv
  - Resolve selections over a JSON HTTP API
  - Import CSV clip lists into new data sources`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Init(verbose)

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if dataDir != "" {
			cfg.DataDir = dataDir
		}

		cmd.SetContext(config.WithConfig(cmd.Context(), cfg))
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("clip-browser version %s\n", Version)
	},
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check system dependencies",
	Long:  `Check that the playback dependencies (mpv, yt-dlp) are installed and available.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Checking dependencies...")
		fmt.Println()

		missing := map[string]*deps.DependencyError{}
		for _, err := range deps.CheckAll() {
			if de, ok := err.(*deps.DependencyError); ok {
				missing[de.Name] = de
			}
		}

		for _, name := range []string{"mpv", "yt-dlp"} {
			if de, ok := missing[name]; ok {
				fmt.Printf("✗ %s: NOT FOUND\n", name)
				fmt.Printf("  Install from: %s\n", de.InstallURL)
			} else {
				fmt.Printf("✓ %s: OK\n", name)
			}
		}

		fmt.Println()
		if len(missing) > 0 {
			return fmt.Errorf("%d dependencies missing; the browser still works without playback", len(missing))
		}
		fmt.Println("All dependencies are installed!")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./clipbrowser.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory holding the .db data sources")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(doctorCmd)
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
