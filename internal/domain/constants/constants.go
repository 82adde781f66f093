// Package constants holds string values shared between configuration and wiring.
package constants

// Environments
const (
	EnvDevelop    = "develop"
	EnvProduction = "production"
)

// Pub/Sub providers
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Storage drivers
const (
	StorageDriverPostgres = "postgres"
	StorageDriverLocal    = "local"
)
