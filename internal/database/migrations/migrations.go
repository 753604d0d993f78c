package migrations

import "embed"

// Migrations содержит SQL-миграции схемы PostgreSQL (users, workouts),
// встроенные в бинарник и применяемые через golang-migrate.
//
//go:embed *.sql
var Migrations embed.FS
