package driven

// ConfigStore provides access to application configuration such as the
// API token, tracking defaults and property filters.
// Implementations handle persistence (e.g., TOML files) and type conversion.
type ConfigStore interface {
	// Get retrieves a configuration value by dotted key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string value, e.g. "figma.token".
	// Returns empty string if the key doesn't exist or isn't a string.
	GetString(key string) string

	// GetInt retrieves an integer value, e.g. "figma.concurrency".
	// Returns 0 if the key doesn't exist or isn't an integer.
	GetInt(key string) int

	// GetBool retrieves a boolean value.
	// Returns false if the key doesn't exist or isn't a boolean.
	GetBool(key string) bool

	// GetStringSlice retrieves a string slice value, e.g. the
	// "track.include" property filter.
	// Returns nil if the key doesn't exist or isn't a slice.
	GetStringSlice(key string) []string

	// Set stores a configuration value.
	// The value is persisted immediately.
	Set(key string, value any) error

	// Save persists the current configuration to storage.
	Save() error

	// Load reads configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string
}
