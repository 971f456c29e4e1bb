package db

// FactsDatabase is the root accessor of the k9facts data store.
type FactsDatabase interface {
	Facts() FactInterface
	Runs() RunInterface
	Keychain() KeychainInterface
	Schema() SchemaInterface
	Close() error
}
