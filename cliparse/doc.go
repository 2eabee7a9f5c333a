// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Database connection string (required)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - StoreBackend: sql or gorm (default: sql; gorm needs postgres)
  - EnvFile: .env file loaded before reading the environment

# CLI Flags

	-p          Server port
	-d          Database URL
	-t          Database type
	-store      Store backend
	-env-file   Path to .env file

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	STORE_BACKEND → -store
	ENV_FILE      → -env-file

CLI flags take precedence over environment variables, and variables
already in the environment take precedence over the .env file. A
missing .env file is not an error.

# Example

	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	conn, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)
*/
package cliparse
