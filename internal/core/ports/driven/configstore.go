package driven

// ConfigStore is the key/value view of the portal settings file. Keys are
// dotted paths ("view.mode", "server.refresh_interval") over nested tables.
type ConfigStore interface {
	// Get returns the raw value stored under key.
	Get(key string) (any, bool)

	// Typed accessors return the zero value when the key is missing or
	// holds a different type.
	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool
	GetStringSlice(key string) []string

	// Set updates key and writes the file.
	Set(key string, value any) error

	Save() error
	Load() error

	// Path is the location of the backing file, ":memory:" for in-memory stores.
	Path() string
}
