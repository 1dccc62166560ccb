package database

import "embed"

// Migrations holds the versioned schema for items and scraped_data.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations holding the SQL files.
const MigrationsDir = "migrations"
