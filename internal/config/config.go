// Package config provides configuration for the termichess binaries.
// The rules engine does not depend on it; presentation and networking
// components receive the sections they need at construction.
package config

import "github.com/impodog/termichess/internal/errors"

// DefaultFile is the configuration file looked up in the working directory.
const DefaultFile = "termichess.json"

// Config holds all program configuration.
type Config struct {
	Display DisplayConfig `json:"display"`
	Client  ClientConfig  `json:"client"`
	Server  ServerConfig  `json:"server"`
	SSH     SSHConfig     `json:"ssh"`

	// LogFile receives logs instead of stderr when set.
	LogFile string `json:"log_file"`
	// Verbose enables debug logging.
	Verbose bool `json:"verbose"`
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Display: *NewDisplayConfig(),
		Client:  *NewClientConfig(),
		Server:  *NewServerConfig(),
		SSH:     *NewSSHConfig(),
	}
}

// Validate checks value ranges. Errors wrap errors.ErrInvalidConfig.
func (c *Config) Validate() error {
	if c.Display.Spacing < MinSpacing || c.Display.Spacing > MaxSpacing {
		return invalid("display.spacing must be between %d and %d, got %d", MinSpacing, MaxSpacing, c.Display.Spacing)
	}
	if c.Server.RoomTTL.Duration() <= 0 {
		return invalid("server.room_ttl must be positive, got %s", c.Server.RoomTTL)
	}
	if c.Server.SweepInterval.Duration() <= 0 {
		return invalid("server.sweep_interval must be positive, got %s", c.Server.SweepInterval)
	}
	if c.Server.Workers < 0 {
		return invalid("server.workers must not be negative, got %d", c.Server.Workers)
	}
	if c.Client.PollInterval.Duration() <= 0 {
		return invalid("client.poll_interval must be positive, got %s", c.Client.PollInterval)
	}
	return nil
}

func invalid(format string, args ...interface{}) error {
	return errors.Wrapf(errors.ErrInvalidConfig, format, args...)
}
