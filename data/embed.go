package data

import (
	_ "embed"
)

//go:embed initdb/postgres/001-schema.sql
var InitdbPostgresSchema string
