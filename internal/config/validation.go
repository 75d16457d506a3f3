package config

import (
	"fmt"
	"strings"

	"github.com/dbsmedya/planbrowser/internal/sqlutil"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	var errors ValidationErrors

	errors = append(errors, c.validateStorage()...)
	errors = append(errors, c.validateSelection()...)
	errors = append(errors, c.validateLogging()...)

	if len(errors) > 0 {
		return errors
	}
	return nil
}

func (c *Config) validateStorage() ValidationErrors {
	var errors ValidationErrors

	if strings.TrimSpace(c.Storage.Key) == "" {
		errors = append(errors, ValidationError{
			Field:   "storage.key",
			Message: "key is required",
		})
	}

	switch c.Storage.Backend {
	case BackendMemory:
	case BackendFile:
		if strings.TrimSpace(c.Storage.File.Dir) == "" {
			errors = append(errors, ValidationError{
				Field:   "storage.file.dir",
				Message: "dir is required for the file backend",
			})
		}
	case BackendMySQL:
		errors = append(errors, c.validateDatabase("storage.mysql", &c.Storage.MySQL)...)
	default:
		errors = append(errors, ValidationError{
			Field:   "storage.backend",
			Message: "backend must be 'memory', 'file', or 'mysql'",
		})
	}

	return errors
}

func (c *Config) validateDatabase(prefix string, db *DatabaseConfig) ValidationErrors {
	var errors ValidationErrors

	if db.Host == "" {
		errors = append(errors, ValidationError{
			Field:   prefix + ".host",
			Message: "host is required",
		})
	}

	if db.Port <= 0 || db.Port > 65535 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".port",
			Message: "port must be between 1 and 65535",
		})
	}

	if db.User == "" {
		errors = append(errors, ValidationError{
			Field:   prefix + ".user",
			Message: "user is required",
		})
	}

	if db.Database == "" {
		errors = append(errors, ValidationError{
			Field:   prefix + ".database",
			Message: "database name is required",
		})
	}

	if !sqlutil.IsValidIdentifier(db.Table) {
		errors = append(errors, ValidationError{
			Field:   prefix + ".table",
			Message: "table must contain only letters, digits, and underscores",
		})
	}

	validTLS := map[string]bool{"disable": true, "preferred": true, "required": true, "": true}
	if !validTLS[db.TLS] {
		errors = append(errors, ValidationError{
			Field:   prefix + ".tls",
			Message: "tls must be 'disable', 'preferred', or 'required'",
		})
	}

	if db.MaxConnections < 0 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".max_connections",
			Message: "max_connections cannot be negative",
		})
	}

	if db.MaxIdleConnections < 0 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".max_idle_connections",
			Message: "max_idle_connections cannot be negative",
		})
	}

	return errors
}

func (c *Config) validateSelection() ValidationErrors {
	var errors ValidationErrors

	if !c.Selection.Persist {
		return errors
	}

	key := strings.TrimSpace(c.Selection.Key)
	if key == "" {
		errors = append(errors, ValidationError{
			Field:   "selection.key",
			Message: "key is required when persist is enabled",
		})
	} else if key == strings.TrimSpace(c.Storage.Key) {
		errors = append(errors, ValidationError{
			Field:   "selection.key",
			Message: "key must differ from storage.key",
		})
	}

	return errors
}

func (c *Config) validateLogging() ValidationErrors {
	var errors ValidationErrors

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "": true}
	if !validLevels[c.Logging.Level] {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Message: "level must be 'debug', 'info', 'warn', or 'error'",
		})
	}

	validFormats := map[string]bool{"json": true, "text": true, "": true}
	if !validFormats[c.Logging.Format] {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Message: "format must be 'json' or 'text'",
		})
	}

	return errors
}
