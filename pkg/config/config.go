// Package config loads and validates the qdemos configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"

	"qdemos/pkg/errdetect"
	"qdemos/pkg/qft"
)

var ErrNilConfig = errors.New("config: nil config")

// Load unmarshals the effective configuration from v and validates it.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every value a demo or the server would reject later.
func (c *Config) Validate() error {
	if c == nil {
		return ErrNilConfig
	}
	if c.Server.Listen == "" {
		return errors.New("config: server.listen must not be empty")
	}
	if !qft.ValidQubits(c.QFT.Qubits) {
		return fmt.Errorf("config: qft.qubits: %w, got %d", qft.ErrQubitCount, c.QFT.Qubits)
	}
	if _, err := qft.ParseSwapPolicy(c.QFT.SwapPolicy); err != nil {
		return fmt.Errorf("config: qft.swap_policy: %w", err)
	}
	if err := errdetect.Validate(c.ErrDetect.A, c.ErrDetect.B); err != nil {
		return fmt.Errorf("config: errdetect: %w", err)
	}
	return nil
}

// SwapPolicy returns the parsed qft.swap_policy. Call Validate first.
func (c *Config) SwapPolicy() qft.SwapPolicy {
	p, _ := qft.ParseSwapPolicy(c.QFT.SwapPolicy)
	return p
}

// ToTOML renders the configuration in config.toml layout.
func ToTOML(cfg *Config) (string, error) {
	if cfg == nil {
		return "", ErrNilConfig
	}

	var buf bytes.Buffer
	encoder := toml.NewEncoder(&buf)
	if err := encoder.Encode(cfg); err != nil {
		return "", fmt.Errorf("encoding config: %w", err)
	}
	return buf.String(), nil
}
