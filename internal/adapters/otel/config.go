package otel

// Config holds OTEL exporter configuration.
type Config struct {
	Endpoint string `envconfig:"DWSTYLES_OTEL_ENDPOINT"`
	Enabled  bool   `envconfig:"DWSTYLES_OTEL_ENABLED" default:"false"`
	Insecure bool   `envconfig:"DWSTYLES_OTEL_INSECURE" default:"false"`
}
