// Package constants holds shared domain-level constant values.
package constants

// Pub/Sub provider tokens accepted in configuration.
const (
	PubSubProviderNoop   = "noop"
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)
