package config

const (
	defaultListen     = ":8501"
	defaultQubits     = 3
	defaultSwapPolicy = "once"
	defaultA          = 0.6
	defaultB          = 0.8
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Listen: defaultListen,
		},
		QFT: QFTConfig{
			Qubits:     defaultQubits,
			SwapPolicy: defaultSwapPolicy,
		},
		ErrDetect: ErrDetectConfig{
			A: defaultA,
			B: defaultB,
		},
		Log: LogConfig{
			Pretty: true,
		},
	}
}
