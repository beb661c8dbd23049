package constants

const (
	// AppName is used for config paths, the keyring service name and the
	// Postgres search_path schema.
	AppName = "exocortex"

	// DefaultKeyringUser is the keyring account under which the database
	// connection string is stored.
	DefaultKeyringUser = "db-connection"
)
