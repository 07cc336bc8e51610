package viper

import (
	"strings"

	"github.com/amora/amoractl/internal/meta"
	"github.com/amora/amoractl/internal/util"
	v "github.com/spf13/viper"
)

// InitializeDefaultViper loads the config at path, creating the file with
// defaultValues when it does not exist or is empty.
func InitializeDefaultViper(defaultValues map[string]any, path string) (*v.Viper, error) {
	if err := util.InitDir(path, 0o755); err != nil {
		return nil, err
	}

	rv := NewViper(path)
	if len(rv.AllSettings()) > 0 {
		return rv, nil
	}

	if err := rv.MergeConfigMap(defaultValues); err != nil {
		return nil, err
	}
	if err := rv.WriteConfig(); err != nil {
		return nil, err
	}
	return rv, nil
}

// NewViperE reads the config file at path and fails when it cannot be parsed.
func NewViperE(path string) (*v.Viper, error) {
	rv := newBaseViper(path)
	if err := rv.ReadInConfig(); err != nil {
		return nil, err
	}
	return rv, nil
}

// NewViper reads the config file at path, ignoring read errors.
func NewViper(path string) *v.Viper {
	rv := newBaseViper(path)
	_ = rv.ReadInConfig()
	return rv
}

// ConfigureEnvVars makes rv resolve keys from AMORACTL_* style variables,
// with "." and "-" mapped to "_".
func ConfigureEnvVars(rv *v.Viper, prefix string) {
	rv.AutomaticEnv()
	rv.SetEnvPrefix(prefix)
	rv.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
}

func newBaseViper(path string) *v.Viper {
	rv := v.New()
	rv.SetConfigFile(path)
	ConfigureEnvVars(rv, strings.ToLower(meta.EnvPrefix))
	return rv
}
