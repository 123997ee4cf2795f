package core

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"FogRover/internal/model"
)

// LoadConfig reads the YAML file at path over model.DefaultConfig, so keys
// the file omits keep their defaults, and validates the result. A missing
// file is an error; an empty path yields the defaults.
func LoadConfig(path string) (model.Config, error) {
	cfg := model.DefaultConfig()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return model.Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return model.Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return model.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Overrides are command-line settings applied on top of the file.
type Overrides struct {
	Sim  bool
	Addr string
}

// Apply copies the set overrides into cfg and revalidates it.
func (o Overrides) Apply(cfg *model.Config) error {
	if o.Sim {
		cfg.Hardware.Mode = model.HardwareSim
	}
	if o.Addr != "" {
		cfg.HTTP.Addr = o.Addr
	}
	if err := cfg.Validate(); err != nil {
		return errors.Join(errors.New("invalid config after overrides"), err)
	}
	return nil
}
