package config

// Config is the qdemos configuration, read from config.toml, QDEMOS_*
// environment variables and command-line flags.
type Config struct {
	Server    ServerConfig    `toml:"server" mapstructure:"server"`
	QFT       QFTConfig       `toml:"qft" mapstructure:"qft"`
	ErrDetect ErrDetectConfig `toml:"errdetect" mapstructure:"errdetect"`
	Log       LogConfig       `toml:"log" mapstructure:"log"`
}

// ServerConfig holds web server settings.
type ServerConfig struct {
	Listen string `toml:"listen" mapstructure:"listen"`
}

// QFTConfig holds the defaults of the QFT demo form.
type QFTConfig struct {
	Qubits     int    `toml:"qubits" mapstructure:"qubits"`
	SwapPolicy string `toml:"swap_policy" mapstructure:"swap_policy"`
}

// ErrDetectConfig holds the defaults of the error-detection demo form.
// A zero Seed draws faults from a randomly seeded source.
type ErrDetectConfig struct {
	A    float64 `toml:"a" mapstructure:"a"`
	B    float64 `toml:"b" mapstructure:"b"`
	Seed uint64  `toml:"seed" mapstructure:"seed"`
}

// LogConfig selects the log handler.
type LogConfig struct {
	JSON   bool `toml:"json" mapstructure:"json"`
	Pretty bool `toml:"pretty" mapstructure:"pretty"`
}
