// Package config loads and persists strand configuration.
//
// Configuration is merged from TOML files in precedence order
// (system < user < project < environment variables), with environment
// variables using the STRAND_ prefix (e.g. STRAND_SERVER_PORT).
package config

// Config represents the strand configuration
type Config struct {
	Server Server `mapstructure:"server"`
	Store  Store  `mapstructure:"store"`
	Log    Log    `mapstructure:"log"`
}

// Server configures the strand HTTP server
type Server struct {
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Store configures record persistence
type Store struct {
	// Driver selects the store implementation: "file" (whole-collection JSON
	// document) or "sqlite" (record-indexed table behind the same
	// load/save-shaped interface).
	Driver string `mapstructure:"driver"`
	// Path is the collection file (file driver) or database file (sqlite driver)
	Path string `mapstructure:"path"`
	// Watch reloads the collection when the file changes on disk (file driver only)
	Watch bool `mapstructure:"watch"`
}

// Log configures log output
type Log struct {
	Theme string `mapstructure:"theme"` // Color theme: gruvbox, everforest
	JSON  bool   `mapstructure:"json"`  // Structured JSON output
}

// Defaults
const (
	DefaultServerPort = 8710
	DefaultDriver     = "file"
)

// File system constants
const (
	DefaultDirPermissions  = 0755 // Standard directory permissions (rwxr-xr-x)
	DefaultFilePermissions = 0644 // Standard file permissions (rw-r--r--)
)
