package config

const (
	// DefaultScriptTimeout is how long a single AppleScript may run
	DefaultScriptTimeout = "30s"

	// DefaultEmbedScheme is the URL scheme Day One uses for inline attachments
	DefaultEmbedScheme = "dayone-moment"
)
