package db

import (
	_ "embed"
)

//go:embed sql/select_tables.sql
var SelectTablesSQL string
