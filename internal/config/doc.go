// Package config manages configuration for the runningmate server and client.
//
// Configuration comes from environment variables. Load reads a .env file from
// the working directory first when one exists:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
//
// # Configuration Groups
//
//   - ServerConfig: HTTP server settings (port, timeouts, CORS)
//   - DatabaseConfig: storage driver and SurrealDB connection settings
//   - JWTConfig: token signing settings
//   - ClientConfig: API client transport, intent timeout and toast duration
//   - JobsConfig: background job intervals
//   - LogConfig: slog level and handler format
//
// # Environment Variables
//
//	SERVER_PORT            - HTTP server port (default: 8080)
//	DB_DRIVER              - memory or surreal (default: memory)
//	JWT_SECRET             - HMAC signing secret, required in production
//	CLIENT_API_URL         - API root used by the client
//	CLIENT_REQUEST_TIMEOUT - per-request timeout (default: 10s)
//	CLIENT_INTENT_TIMEOUT  - per-intent timeout (default: 15s)
//	LOG_LEVEL              - debug, info, warn or error
//	LOG_FORMAT             - json or text
package config
