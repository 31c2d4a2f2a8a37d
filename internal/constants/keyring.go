package constants

// Keyring entry names, all stored under the AppName service.
const (
	KeyringConnectionString = "database-connection"
	KeyringSessionToken     = "session-token"
	KeyringSigningKey       = "session-signing-key"
)
