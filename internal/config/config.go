package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/amora/amoractl/internal/cmd/common"
	"github.com/amora/amoractl/internal/meta"
	"github.com/amora/amoractl/internal/util/viper"
	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
)

const (
	// DefaultProfile is used when neither --profile nor AMORACTL_PROFILE is set.
	DefaultProfile = "default"

	BackendBaseURLConfigPath  = "backend.base-url"
	BackendTokenConfigPath    = "backend.token" // #nosec G101
	BackendPageSizeConfigPath = "backend.page-size"

	DefaultBackendBaseURL  = "http://localhost:3000/api"
	DefaultBackendPageSize = 50
)

var defaultConfigFileName = "config.yaml"

// GetDefaultConfigPath returns $XDG_CONFIG_HOME/amoractl when XDG_CONFIG_HOME
// is set and ~/.config/amoractl otherwise.
func GetDefaultConfigPath() (string, error) {
	val, set := os.LookupEnv("XDG_CONFIG_HOME")
	if !set || val == "" {
		var err error
		val, err = os.UserHomeDir()
		if err != nil {
			return "", err
		}
		val = filepath.Join(val, ".config")
	}
	val = filepath.Join(val, meta.CLIName)
	return os.ExpandEnv(val), nil
}

func GetDefaultConfigFilePath() (string, error) {
	path, err := GetDefaultConfigPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(path, defaultConfigFileName), nil
}

// ExpandDefaultConfigFilePath is GetDefaultConfigFilePath for flag defaults,
// falling back to a relative file name when no home directory is known.
func ExpandDefaultConfigFilePath() string {
	path, err := GetDefaultConfigFilePath()
	if err != nil {
		return defaultConfigFileName
	}
	return path
}

// GetConfig returns the configuration for this instance of the CLI.
// An explicit path must exist. The default path is created with defaults
// on first use.
func GetConfig(path string, profile string, defaultConfigFilePath string) (*ProfiledConfig, error) {
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); err == nil {
		vip, err := viper.NewViperE(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
		return BuildProfiledConfig(profile, path, vip), nil
	}

	if path != defaultConfigFilePath {
		return nil, fmt.Errorf("the provided config file path does not exist: %s", path)
	}

	vip, err := viper.InitializeDefaultViper(getDefaultConfig(profile, path), path)
	if err != nil {
		return nil, err
	}
	return BuildProfiledConfig(profile, path, vip), nil
}

type Key struct{}

// ConfigKey stores the active Hook on a command context.
var ConfigKey = Key{}

// Hook is the restricted view of the configuration that commands use.
type Hook interface {
	// Save writes the configuration to the file system
	Save() error
	GetString(key string) string
	GetBool(key string) bool
	GetInt(key string) int
	// GetIntOrElse returns orElse when key has no value in any source
	GetIntOrElse(key string, orElse int) int
	GetStringSlice(key string) []string
	SetString(key string, value string)
	Set(k string, v any)
	Get(key string) any
	// BindFlag binds a configuration path to a command line flag
	BindFlag(configPath string, f *pflag.Flag) error
	GetProfile() string
	GetPath() string
}

// ProfiledConfig is a Viper scoped to one profile section of the config file.
type ProfiledConfig struct {
	*v.Viper
	subViper    *v.Viper
	ProfileName string
	Path        string
}

func (p *ProfiledConfig) GetProfile() string {
	return p.ProfileName
}

func (p *ProfiledConfig) Save() error {
	p.Viper.Set(p.ProfileName, p.subViper.AllSettings())
	return p.WriteConfig()
}

func (p *ProfiledConfig) GetString(key string) string {
	return p.subViper.GetString(key)
}

func (p *ProfiledConfig) GetBool(key string) bool {
	return p.subViper.GetBool(key)
}

func (p *ProfiledConfig) GetInt(key string) int {
	return p.subViper.GetInt(key)
}

func (p *ProfiledConfig) GetIntOrElse(key string, orElse int) int {
	if p.subViper.IsSet(key) {
		return p.subViper.GetInt(key)
	}
	return orElse
}

func (p *ProfiledConfig) GetStringSlice(key string) []string {
	return p.subViper.GetStringSlice(key)
}

func (p *ProfiledConfig) Get(key string) any {
	return p.subViper.Get(key)
}

func (p *ProfiledConfig) BindFlag(configPath string, f *pflag.Flag) error {
	return p.subViper.BindPFlag(configPath, f)
}

func (p *ProfiledConfig) SetString(k string, v string) {
	p.subViper.Set(k, v)
}

func (p *ProfiledConfig) Set(k string, v any) {
	p.subViper.Set(k, v)
}

func (p *ProfiledConfig) GetPath() string {
	return p.Path
}

// ProfileEnvPrefix returns the environment prefix for keys of profile,
// for example AMORACTL_STAGING_EU for "staging-eu".
func ProfileEnvPrefix(profile string) string {
	return meta.EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(profile, "-", "_"))
}

func BuildProfiledConfig(profile string, path string, mainv *v.Viper) *ProfiledConfig {
	subv := mainv.Sub(profile)
	if subv == nil {
		subv = v.New()
	}
	// Sub does not carry env settings over, so profile keys are always
	// resolvable from AMORACTL_<PROFILE>_* variables.
	viper.ConfigureEnvVars(subv, ProfileEnvPrefix(profile))

	return &ProfiledConfig{
		Viper:       mainv,
		ProfileName: profile,
		subViper:    subv,
		Path:        path,
	}
}

func getDefaultConfig(profileName, configFilePath string) map[string]any {
	configDir := filepath.Dir(configFilePath)
	defaultLogPath := filepath.Join(configDir, "logs", meta.CLIName+".log")

	return map[string]any{
		profileName: map[string]any{
			common.OutputConfigPath:     common.DefaultOutputFormat,
			common.LogFileConfigPath:    defaultLogPath,
			common.ColorConfigPath:      common.DefaultColorMode,
			common.LayoutConfigPath:     common.DefaultLayoutMode,
			common.ColorThemeConfigPath: common.DefaultColorTheme,
			"backend": map[string]any{
				"base-url":  DefaultBackendBaseURL,
				"page-size": DefaultBackendPageSize,
			},
		},
	}
}
