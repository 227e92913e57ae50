// Package config provides configuration management for budget-core.
//
// It loads a .env file when present and then reads environment variables
// through Viper. Defaults come from the `default` struct tags of each
// section, so every key is registered for AutomaticEnv.
//
// # Configuration Structure
//
//   - Server: HTTP port, API key, body limit, shutdown timeout
//   - Storage: S3/MinIO credentials and bucket settings
//   - Log: logging level and format
//   - Database: driver and connection details
//   - Format: default number format and fraction display
//   - Events: AMQP broker URL and exchange
//   - Metrics: Prometheus endpoint toggle and path
//
// Nested keys map to upper-case variables with underscores, for example
// FORMAT_NUMBER_FORMAT=dot-comma or DATABASE_DRIVER=sqlite.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
