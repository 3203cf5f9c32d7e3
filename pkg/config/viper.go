package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. QDEMOS_SERVER_LISTEN.
const EnvPrefix = "QDEMOS"

// InitViper creates and returns a configured *viper.Viper.
// It sets defaults from NewDefaultConfig(), reads the config file and binds
// environment variables with the QDEMOS_ prefix. An explicit path must
// exist; without one, config.toml is looked up in the working directory and
// the user config directory, and a missing file is fine.
//
// Config precedence (highest to lowest):
//  1. CLI flags (once bound via BindRegisteredFlags)
//  2. Environment variables
//  3. config.toml values
//  4. Defaults from NewDefaultConfig()
func InitViper(path string) (*viper.Viper, error) {
	v := viper.New()
	setViperDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "qdemos"))
		}

		if err := v.ReadInConfig(); err != nil {
			// Config file not found errors are fine, defaults will apply.
			if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v, nil
}

// setViperDefaults registers defaults from NewDefaultConfig() into viper
// using dotted-key notation.
func setViperDefaults(v *viper.Viper) {
	d := NewDefaultConfig()

	v.SetDefault("server.listen", d.Server.Listen)

	v.SetDefault("qft.qubits", d.QFT.Qubits)
	v.SetDefault("qft.swap_policy", d.QFT.SwapPolicy)

	v.SetDefault("errdetect.a", d.ErrDetect.A)
	v.SetDefault("errdetect.b", d.ErrDetect.B)
	v.SetDefault("errdetect.seed", d.ErrDetect.Seed)

	v.SetDefault("log.json", d.Log.JSON)
	v.SetDefault("log.pretty", d.Log.Pretty)
}
