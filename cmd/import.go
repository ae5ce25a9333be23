package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/user/clip-browser/config"
	"github.com/user/clip-browser/db"
)

var importCmd = &cobra.Command{
	Use:   "import <csv> <db>",
	Short: "Import a CSV clip list into a data source",
	Long: `Create (or extend) a SQLite data source from a CSV file. The header row names
the columns; every value is stored as text in the configured table.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open csv: %w", err)
		}
		defer f.Close()

		database, err := db.Create(args[1])
		if err != nil {
			return err
		}
		defer database.Close()

		n, err := db.ImportCSV(cmd.Context(), database, cfg.Table, f)
		if err != nil {
			return err
		}

		log.Debug().Str("csv", args[0]).Str("db", args[1]).Str("table", cfg.Table).Int("rows", n).Msg("imported")
		fmt.Printf("Imported %d rows into %s (table %s)\n", n, args[1], cfg.Table)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
