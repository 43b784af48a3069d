// Package migrations ships the schema with the binary and applies it in
// lexical filename order. Files are expected to be idempotent so reruns
// against an existing database are safe.
package migrations

import "embed"

// PostgresFS holds the evaluation-run schema.
//
//go:embed postgres/*.sql
var PostgresFS embed.FS

// ClickhouseFS holds the trade-archive schema.
//
//go:embed clickhouse/*.sql
var ClickhouseFS embed.FS
