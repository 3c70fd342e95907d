// Package cmd implements the rdmx subcommands.
package cmd

var (
	// CacheIdentifier is the kong variable holding the path of the runtime
	// cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable holding the path of the YAML
	// configuration file.
	ConfigIdentifier = "config"

	// BackupIdentifier is the kong variable holding the default backup
	// directory.
	BackupIdentifier = "backupDir"

	// EnvPrefixIdentifier is the kong variable holding the default prefix of
	// environment variables exported to documents.
	EnvPrefixIdentifier = "envPrefix"
)
