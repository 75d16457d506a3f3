// Package config provides configuration structures and loading for planbrowser.
package config

// Storage backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendMySQL  = "mysql"
)

// Config represents the complete application configuration.
type Config struct {
	Storage   StorageConfig   `yaml:"storage" mapstructure:"storage"`
	Selection SelectionConfig `yaml:"selection" mapstructure:"selection"`
	Display   DisplayConfig   `yaml:"display" mapstructure:"display"`
	Logging   LoggingConfig   `yaml:"logging" mapstructure:"logging"`
}

// StorageConfig selects and configures the durable medium.
type StorageConfig struct {
	Backend string         `yaml:"backend" mapstructure:"backend"` // memory, file, mysql
	Key     string         `yaml:"key" mapstructure:"key"`         // medium key holding the plan list
	File    FileConfig     `yaml:"file" mapstructure:"file"`
	MySQL   DatabaseConfig `yaml:"mysql" mapstructure:"mysql"`
}

// FileConfig configures the file medium.
type FileConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// DatabaseConfig represents a MySQL connection for the key-value medium.
type DatabaseConfig struct {
	Host               string `yaml:"host" mapstructure:"host"`
	Port               int    `yaml:"port" mapstructure:"port"`
	User               string `yaml:"user" mapstructure:"user"`
	Password           string `yaml:"password" mapstructure:"password"`
	Database           string `yaml:"database" mapstructure:"database"`
	Table              string `yaml:"table" mapstructure:"table"`
	TLS                string `yaml:"tls" mapstructure:"tls"` // disable, preferred, required
	MaxConnections     int    `yaml:"max_connections" mapstructure:"max_connections"`
	MaxIdleConnections int    `yaml:"max_idle_connections" mapstructure:"max_idle_connections"`
}

// SelectionConfig controls compare/favorite persistence between runs.
type SelectionConfig struct {
	Persist bool   `yaml:"persist" mapstructure:"persist"`
	Key     string `yaml:"key" mapstructure:"key"`
}

// DisplayConfig controls terminal output.
type DisplayConfig struct {
	Color bool `yaml:"color" mapstructure:"color"`
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: BackendFile,
			Key:     "plans",
			File: FileConfig{
				Dir: "${HOME}/.planbrowser",
			},
			MySQL: DatabaseConfig{
				Port:               3306,
				Table:              "planbrowser_kv",
				TLS:                "preferred",
				MaxConnections:     4,
				MaxIdleConnections: 2,
			},
		},
		Selection: SelectionConfig{
			Persist: true,
			Key:     "selection",
		},
		Display: DisplayConfig{
			Color: true,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
			Output: "stderr",
		},
	}
}
