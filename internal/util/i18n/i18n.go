package i18n

import "sync"

var (
	mu        sync.RWMutex
	overrides = map[string]string{}
)

// T returns the registered translation for key, or defaultValue when none is
// registered.
func T(key string, defaultValue string) string {
	mu.RLock()
	defer mu.RUnlock()
	if v, ok := overrides[key]; ok {
		return v
	}
	return defaultValue
}

// Register installs a translation for key.
func Register(key, value string) {
	mu.Lock()
	defer mu.Unlock()
	overrides[key] = value
}
