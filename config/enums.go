package config

//go:generate go tool go-enum --marshal --names

// Layout of produced module JSON.
// ENUM(pretty, minimized)
type OutputStyle int

// Pretty reports whether output should be indented.
func (s OutputStyle) Pretty() bool {
	return s == OutputStylePretty
}

// Handling of fragments which derive the same identifier.
// ENUM(override, error)
type CollisionPolicy int
