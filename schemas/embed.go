// Package schemas provides embedded SQL migration files.
package schemas

import "embed"

// Migrations contains the SQL migration files applied in file name order.
// Statements must run on both SQLite and MySQL.
//
//go:embed migrations/*.sql
var Migrations embed.FS
