package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/user/clip-browser/clip"
	"github.com/user/clip-browser/config"
	"github.com/user/clip-browser/db"
	"github.com/user/clip-browser/view"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the data sources in the data directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		sources, err := db.ListSources(cfg.DataDir)
		if err != nil {
			return err
		}
		if len(sources) == 0 {
			fmt.Printf("No .db files in %s\n", cfg.DataDir)
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "Name\tSize")
		fmt.Fprintln(w, "----\t----")
		for _, s := range sources {
			fmt.Fprintf(w, "%s\t%d\n", s.Name, s.Size)
		}
		return w.Flush()
	},
}

var rowsCmd = &cobra.Command{
	Use:   "rows <source>",
	Short: "Print the clip table of a data source",
	Long: `Print the clip table of a data source as it would be displayed:
hidden columns dropped, filters and sort keys applied.`,
	Example: `  clip-browser rows clips.db --sort start_timecode --filter description=tackle
  clip-browser rows clips.db --sort -video_id`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		columns, rows, err := loadView(cmd, cfg, args[0])
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprint(w, "#")
		for _, c := range columns {
			fmt.Fprint(w, "\t"+c)
		}
		fmt.Fprintln(w)
		for i, r := range rows {
			fmt.Fprint(w, strconv.Itoa(i+1))
			for _, c := range columns {
				fmt.Fprint(w, "\t"+truncate(r.Value(c), 60))
			}
			fmt.Fprintln(w)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Printf("\n%d rows\n", len(rows))
		return nil
	},
}

// addViewFlags registers the --sort and --filter flags shared by rows, resolve and play.
func addViewFlags(c *cobra.Command) {
	c.Flags().StringArray("sort", nil, "sort by column, prefix with - for descending (repeatable)")
	c.Flags().StringArray("filter", nil, "keep rows matching COLUMN=TEXT or TEXT in any column (repeatable)")
}

// loadView loads a source and applies the view flags, returning the visible
// columns and the view rows.
func loadView(cmd *cobra.Command, cfg *config.Config, name string) ([]string, []clip.Row, error) {
	src, err := findSource(cfg, name)
	if err != nil {
		return nil, nil, err
	}

	table, err := db.LoadSource(cmd.Context(), src.Path, cfg.Table)
	if err != nil {
		return nil, nil, err
	}

	columns := cfg.VisibleColumns(table.Columns)

	spec := view.Spec{Columns: columns}
	sorts, _ := cmd.Flags().GetStringArray("sort")
	for _, s := range sorts {
		spec.Sort = append(spec.Sort, view.ParseSort(s))
	}
	filters, _ := cmd.Flags().GetStringArray("filter")
	for _, f := range filters {
		spec.Filters = append(spec.Filters, view.ParseFilter(f))
	}

	return columns, view.Apply(table.Rows(cfg.ColumnMap()), spec), nil
}

// findSource accepts either a source name in the data directory or a path to a .db file.
func findSource(cfg *config.Config, name string) (db.Source, error) {
	if info, err := os.Stat(name); err == nil && !info.IsDir() && filepath.Dir(name) != "." {
		return db.Source{Name: filepath.Base(name), Path: name, Size: info.Size()}, nil
	}
	sources, err := db.ListSources(cfg.DataDir)
	if err != nil {
		return db.Source{}, err
	}
	return db.FindSource(sources, name)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func init() {
	addViewFlags(rowsCmd)
	rootCmd.AddCommand(sourcesCmd)
	rootCmd.AddCommand(rowsCmd)
}
