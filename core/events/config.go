package events

// Config holds message broker settings.
type Config struct {
	// URL is the AMQP connection string. Empty disables publishing.
	URL string `mapstructure:"url" default:""`
	// Exchange is the direct exchange change messages are published to.
	Exchange string `mapstructure:"exchange" default:"budget-core.changes"`
	// PublishTimeoutSeconds bounds a single publish call.
	PublishTimeoutSeconds int `mapstructure:"publish_timeout_seconds" default:"5"`
}
