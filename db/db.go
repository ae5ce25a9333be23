package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/user/clip-browser/clip"
	_ "modernc.org/sqlite"
)

// Source is one .db file that can back the clip table.
type Source struct {
	Name string
	Path string
	Size int64
}

// ListSources returns the regular *.db files in dir, sorted by name.
func ListSources(dir string) ([]Source, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read data dir: %w", err)
	}

	var sources []Source
	for _, e := range entries {
		if !e.Type().IsRegular() || !strings.HasSuffix(e.Name(), ".db") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		sources = append(sources, Source{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	sort.Slice(sources, func(i, j int) bool {
		return sources[i].Name < sources[j].Name
	})
	return sources, nil
}

// FindSource returns the source called name, or the first source when name is empty.
func FindSource(sources []Source, name string) (Source, error) {
	if len(sources) == 0 {
		return Source{}, fmt.Errorf("no .db files found")
	}
	if name == "" {
		return sources[0], nil
	}
	for _, s := range sources {
		if s.Name == name || s.Path == name {
			return s, nil
		}
	}
	return Source{}, fmt.Errorf("data source not found: %s", name)
}

// Open opens an existing SQLite file for reading.
// Unlike sql.Open it never creates the file; rows are never written back.
func Open(path string) (*sql.DB, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("open data source: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("data source is a directory: %s", path)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// One connection so the pragma below covers every query.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA query_only = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set query_only: %w", err)
	}
	return db, nil
}

// Create opens or creates a writable SQLite file, creating parent directories.
func Create(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Table is a loaded table: its columns in declared order and one record per row.
type Table struct {
	Columns []string
	Records []map[string]string
}

// Rows maps every record onto a clip row.
func (t *Table) Rows(cols clip.ColumnMap) []clip.Row {
	rows := make([]clip.Row, 0, len(t.Records))
	for _, rec := range t.Records {
		rows = append(rows, clip.FromRecord(rec, cols))
	}
	return rows
}

// Tables lists the tables in the database.
func Tables(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, SelectTablesSQL)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// LoadTable reads every row of table. Values are rendered as text; NULL becomes "".
func LoadTable(ctx context.Context, db *sql.DB, table string) (*Table, error) {
	names, err := Tables(ctx, db)
	if err != nil {
		return nil, err
	}
	found := false
	for _, n := range names {
		if n == table {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("table %q not found (have: %s)", table, strings.Join(names, ", "))
	}

	rows, err := db.QueryContext(ctx, "SELECT * FROM "+QuoteIdent(table))
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	t := &Table{Columns: columns}
	values := make([]interface{}, len(columns))
	ptrs := make([]interface{}, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", table, err)
		}
		rec := make(map[string]string, len(columns))
		for i, col := range columns {
			rec[col] = toText(values[i])
		}
		t.Records = append(t.Records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}
	return t, nil
}

// LoadSource opens the file at path and loads table from it.
func LoadSource(ctx context.Context, path, table string) (*Table, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return LoadTable(ctx, db, table)
}

// QuoteIdent quotes a SQLite identifier.
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func toText(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprint(x)
	}
}
