package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/impodog/termichess/internal/errors"
)

// Read overlays JSON from r onto a default configuration.
// Keys absent from the document keep their defaults.
func Read(r io.Reader) (*Config, error) {
	cfg := NewConfig()
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.Wrap(errors.ErrInvalidConfig, err.Error())
	}
	return cfg, nil
}

// Load reads the configuration file at path. An empty path means
// DefaultFile, which may be absent; an explicit path must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	f, err := os.Open(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return NewConfig(), nil
		}
		return nil, fmt.Errorf("opening config: %w", err)
	}
	defer f.Close()

	cfg, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
