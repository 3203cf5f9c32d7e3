package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Flag is the single source of truth for a CLI flag.
type Flag struct {
	// Name is the long flag name (e.g. "listen").
	Name string

	// Shorthand is the one-letter short flag. Empty for no shorthand.
	Shorthand string

	// ViperKey is the dotted config key this flag maps to (e.g. "server.listen").
	ViperKey string

	Description string
}

// FlagSet maps registry keys to flag definitions.
type FlagSet map[string]Flag

// Flag registry keys.
const (
	FlagListen     = "listen"
	FlagQubits     = "qubits"
	FlagSwapPolicy = "swap-policy"
	FlagA          = "a"
	FlagB          = "b"
	FlagSeed       = "seed"
	FlagJSONLogs   = "json-logs"
)

// Flags is the registry shared by every qdemos command.
var Flags = FlagSet{
	FlagListen:     {Name: "listen", Shorthand: "l", ViperKey: "server.listen", Description: "Address for the web server to listen on"},
	FlagQubits:     {Name: "qubits", Shorthand: "n", ViperKey: "qft.qubits", Description: "Number of qubits for the QFT demo (2-10)"},
	FlagSwapPolicy: {Name: "swap-policy", ViperKey: "qft.swap_policy", Description: "Where the QFT swap network goes: once or per-iteration"},
	FlagA:          {Name: "a", ViperKey: "errdetect.a", Description: "Amplitude a for the error-detection demo, in [-1,1]"},
	FlagB:          {Name: "b", ViperKey: "errdetect.b", Description: "Amplitude b for the error-detection demo, in [-1,1]"},
	FlagSeed:       {Name: "seed", ViperKey: "errdetect.seed", Description: "Seed for fault draws and sampling (0 picks a random seed)"},
	FlagJSONLogs:   {Name: "json-logs", ViperKey: "log.json", Description: "Write logs as JSON"},
}

// AddStringFlag registers a string flag on cmd from the given FlagSet.
// The default comes from NewDefaultConfig.
func AddStringFlag(cmd *cobra.Command, fs FlagSet, key string, target *string) {
	def, ok := fs[key]
	if !ok {
		return
	}
	cmd.Flags().StringVarP(target, def.Name, def.Shorthand, defaults().GetString(def.ViperKey), def.Description)
}

// AddIntFlag registers an int flag on cmd from the given FlagSet.
func AddIntFlag(cmd *cobra.Command, fs FlagSet, key string, target *int) {
	def, ok := fs[key]
	if !ok {
		return
	}
	cmd.Flags().IntVarP(target, def.Name, def.Shorthand, defaults().GetInt(def.ViperKey), def.Description)
}

// AddFloat64Flag registers a float64 flag on cmd from the given FlagSet.
func AddFloat64Flag(cmd *cobra.Command, fs FlagSet, key string, target *float64) {
	def, ok := fs[key]
	if !ok {
		return
	}
	cmd.Flags().Float64VarP(target, def.Name, def.Shorthand, defaults().GetFloat64(def.ViperKey), def.Description)
}

// AddUint64Flag registers a uint64 flag on cmd from the given FlagSet.
func AddUint64Flag(cmd *cobra.Command, fs FlagSet, key string, target *uint64) {
	def, ok := fs[key]
	if !ok {
		return
	}
	cmd.Flags().Uint64VarP(target, def.Name, def.Shorthand, defaults().GetUint64(def.ViperKey), def.Description)
}

// AddBoolFlag registers a bool flag on cmd from the given FlagSet.
func AddBoolFlag(cmd *cobra.Command, fs FlagSet, key string, target *bool) {
	def, ok := fs[key]
	if !ok {
		return
	}
	cmd.Flags().BoolVarP(target, def.Name, def.Shorthand, defaults().GetBool(def.ViperKey), def.Description)
}

// BindRegisteredFlags binds already-registered flags to viper. Call it after
// InitViper so a flag the user set outranks env and file values.
func BindRegisteredFlags(v *viper.Viper, cmd *cobra.Command, fs FlagSet, keys []string) {
	for _, key := range keys {
		def, ok := fs[key]
		if !ok {
			continue
		}

		f := cmd.Flags().Lookup(def.Name)
		if f == nil {
			continue
		}

		_ = v.BindPFlag(def.ViperKey, f)
	}
}

func defaults() *viper.Viper {
	v := viper.New()
	setViperDefaults(v)
	return v
}
