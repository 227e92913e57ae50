package numfmt

// Config selects the number format. It doubles as the "format" section of
// the application configuration.
type Config struct {
	// Format is the number format id (comma-dot, dot-comma, space-comma, space-dot, comma-dot-in).
	Format string `mapstructure:"number_format" default:"comma-dot"`
	// HideFraction renders amounts without decimals.
	HideFraction bool `mapstructure:"hide_fraction" default:"false"`
}

// DefaultConfig returns the format every Formatter starts with.
func DefaultConfig() Config {
	return Config{Format: string(CommaDot)}
}
