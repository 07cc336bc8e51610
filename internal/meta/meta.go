package meta

const (
	// CLIName is the binary name used in help text, config paths and env prefixes.
	CLIName = "amoractl"

	// EnvPrefix is the prefix for all environment variable overrides.
	EnvPrefix = "AMORACTL"
)
