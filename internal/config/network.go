package config

import (
	"encoding/json"
	"fmt"
	"time"
)

// Duration is a time.Duration that reads and writes as "30m" style text.
type Duration time.Duration

// Duration returns the value as a time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts a duration string or a number of seconds.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("duration %q: %w", s, err)
		}
		*d = Duration(v)
		return nil
	}
	var secs float64
	if err := json.Unmarshal(data, &secs); err != nil {
		return fmt.Errorf("duration must be a string or seconds: %s", data)
	}
	*d = Duration(secs * float64(time.Second))
	return nil
}

// ClientConfig holds settings for remote games.
type ClientConfig struct {
	// Address is the relay server base URL
	Address string `json:"address"`

	// Room is the room to join; empty lets the server pick one
	Room string `json:"room"`

	// PollInterval is the wait between relay queries
	PollInterval Duration `json:"poll_interval"`

	// ReconnectTimeout bounds how long a dropped client retries log back
	ReconnectTimeout Duration `json:"reconnect_timeout"`
}

// NewClientConfig creates a ClientConfig with default values.
func NewClientConfig() *ClientConfig {
	return &ClientConfig{
		Address:          "http://localhost:8080",
		PollInterval:     Duration(time.Second),
		ReconnectTimeout: Duration(15 * time.Second),
	}
}

// ServerConfig holds settings for the relay server.
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr"`

	// RoomTTL is how long a room may stay idle before it is dropped
	RoomTTL Duration `json:"room_ttl"`

	// SweepInterval is how often idle rooms are looked for
	SweepInterval Duration `json:"sweep_interval"`

	// StorePath is the badger directory; empty keeps boards in memory
	StorePath string `json:"store_path"`

	// Workers sizes the mate-detection pool; 0 runs trials inline
	Workers int `json:"workers"`
}

// NewServerConfig creates a ServerConfig with default values.
func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		Addr:          ":8080",
		RoomTTL:       Duration(30 * time.Minute),
		SweepInterval: Duration(time.Minute),
		Workers:       4,
	}
}

// SSHConfig holds settings for the SSH game server.
type SSHConfig struct {
	Addr        string `json:"addr"`
	HostKeyFile string `json:"host_key_file"`
}

// NewSSHConfig creates an SSHConfig with default values.
func NewSSHConfig() *SSHConfig {
	return &SSHConfig{
		Addr: ":2222",
	}
}
