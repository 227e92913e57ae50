// Package database handles database connections, migrations and schema
// inspection.
//
// It wraps GORM and configures either a MySQL connection (production) or a
// SQLite one (local use and tests) from the application's configuration.
//
// # Connect
//
// Connect opens the connection selected by Config.Driver, applies pool
// settings and pings the database before returning.
//
// # Schema
//
// Migrate runs GORM's AutoMigrate for the feature models. CheckSchema uses
// the column inspector to report expected columns that the live database is
// missing, which is what the start command logs when the schema drifted.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", zap.Error(err))
//	}
//
//	columns, err := database.GetTableColumns(db, "transactions")
package database
