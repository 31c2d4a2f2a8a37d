package constants

import "time"

const (
	AppName            = "habithub"
	DefaultConfigDir   = "~/.config/habithub"
	DefaultConfigPath  = "~/.config/habithub/habithub.db"
	DefaultConfigFile  = "config.yaml"
	EnvPrefix          = "HABITHUB"
	EnvDBConnection    = "HABITHUB_DB_CONNECTION"
	Version            = "v0.1.0"
	ResetRedirectURL   = "habithub://reset-password"
	DefaultSessionTTL  = 7 * 24 * time.Hour
	DefaultRateLimit   = 10 // write events per second
	DefaultRateBurst   = 5
	MinPasswordLength  = 6
	LocalIDSuffixChars = 9

	// DateFormat is the canonical date key format (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimestampFormat is how timestamps are stored in SQLite. Fixed width so
	// that text comparison orders the same as time comparison.
	TimestampFormat = "2006-01-02T15:04:05.000Z"

	// Display formats
	DisplayDateFormat = "02 Jan 2006"
	DayNameFormat     = "Mon"
	DayNumberFormat   = "2"
	MonthNameFormat   = "January"
	YearFormat        = "2006"
)

// Retry defaults
const (
	DefaultRetryAttempts  = 3
	DefaultRetryBaseDelay = 500 * time.Millisecond
	DefaultRequestTimeout = 30 * time.Second
)
