package profile

import (
	"errors"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

var errorProfileNotFound = errors.New("profile not found")

// Manager reads the profile sections of the config file.
type Manager interface {
	GetProfiles() []string
	GetProfile(name string) (map[string]any, error)
}

type profileManager struct {
	config *viper.Viper
}

// Empty type to represent the _type_ Manager. Genesis is to support a key in a Context
type Key struct{}

// Global instance of the ProfileManagerKey type
var ProfileManagerKey = Key{}

// GetProfiles returns the top level sections of the config file, sorted.
func (v *profileManager) GetProfiles() []string {
	keyMap := make(map[string]bool)
	for _, key := range v.config.AllKeys() {
		topLevelKey, _, _ := strings.Cut(key, ".")
		keyMap[topLevelKey] = true
	}

	names := make([]string, 0, len(keyMap))
	for key := range keyMap {
		names = append(names, key)
	}
	slices.Sort(names)
	return names
}

func (v *profileManager) GetProfile(name string) (map[string]any, error) {
	if !v.config.IsSet(name) {
		return nil, errorProfileNotFound
	}
	return v.config.GetStringMap(name), nil
}

func NewManager(config *viper.Viper) Manager {
	return &profileManager{
		config: config,
	}
}
