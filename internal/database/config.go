package database

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// Supported dialects
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// sqlitePragmas turn on foreign keys so cart lines cascade with their menu item
const sqlitePragmas = "_foreign_keys=on&_busy_timeout=5000"

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	// Driver specifies the database driver (postgres, postgresql, sqlite)
	Driver string

	// PostgreSQL-specific configuration
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string

	// SQLite-specific configuration
	Path string
}

// Dialect normalizes Driver, returning "" for drivers we cannot open
func (c *DatabaseConfig) Dialect() string {
	switch strings.ToLower(strings.TrimSpace(c.Driver)) {
	case "postgres", "postgresql":
		return DialectPostgres
	case "sqlite", "":
		return DialectSQLite
	}
	return ""
}

// String returns a string representation with sensitive data masked
func (c *DatabaseConfig) String() string {
	return fmt.Sprintf("DatabaseConfig{Driver: %s, Host: %s, Port: %s, User: %s, Password: [REDACTED], Name: %s, SSLMode: %s, Path: %s}",
		c.Driver, c.Host, c.Port, c.User, c.Name, c.SSLMode, c.Path)
}

// DSN builds the connection string for the dialect. Postgres gets a URL so
// that credentials with spaces or symbols survive.
func (c *DatabaseConfig) DSN() string {
	switch c.Dialect() {
	case DialectPostgres:
		u := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(c.User, c.Password),
			Host:   net.JoinHostPort(c.Host, c.Port),
			Path:   "/" + c.Name,
		}
		if c.SSLMode != "" {
			u.RawQuery = url.Values{"sslmode": {c.SSLMode}}.Encode()
		}
		return u.String()
	case DialectSQLite:
		if c.Path == "" || strings.Contains(c.Path, ":memory:") || strings.Contains(c.Path, "?") {
			return c.Path
		}
		return "file:" + c.Path + "?" + sqlitePragmas
	}
	return ""
}
