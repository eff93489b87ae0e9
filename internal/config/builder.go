package config

import "time"

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithUnicode selects glyph or letter pieces.
func (b *ConfigBuilder) WithUnicode(enabled bool) *ConfigBuilder {
	b.cfg.Display.Unicode = enabled
	return b
}

// WithSpacing sets the square width.
func (b *ConfigBuilder) WithSpacing(spacing int) *ConfigBuilder {
	b.cfg.Display.Spacing = spacing
	return b
}

// WithColor enables or disables ANSI colours.
func (b *ConfigBuilder) WithColor(enabled bool) *ConfigBuilder {
	b.cfg.Display.Color = enabled
	return b
}

// WithFlip enables or disables board flipping.
func (b *ConfigBuilder) WithFlip(enabled bool) *ConfigBuilder {
	b.cfg.Display.Flip = enabled
	return b
}

// WithRelay sets the relay address and room for remote games.
func (b *ConfigBuilder) WithRelay(address, room string) *ConfigBuilder {
	b.cfg.Client.Address = address
	b.cfg.Client.Room = room
	return b
}

// WithPollInterval sets the relay query interval.
func (b *ConfigBuilder) WithPollInterval(d time.Duration) *ConfigBuilder {
	b.cfg.Client.PollInterval = Duration(d)
	return b
}

// WithRoomTTL sets the idle room lifetime.
func (b *ConfigBuilder) WithRoomTTL(d time.Duration) *ConfigBuilder {
	b.cfg.Server.RoomTTL = Duration(d)
	return b
}

// WithStorePath sets the badger directory.
func (b *ConfigBuilder) WithStorePath(path string) *ConfigBuilder {
	b.cfg.Server.StorePath = path
	return b
}

// WithWorkers sets the mate-detection pool size.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.cfg.Server.Workers = n
	return b
}
