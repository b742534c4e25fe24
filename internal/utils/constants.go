package utils

const (
	// ConfigFileName is the name of the local configuration file.
	ConfigFileName = ".nanodoc.yaml"
	// GlobalConfigDirectoryName is the directory under the user home holding global configuration.
	GlobalConfigDirectoryName = ".nanodoc"
	// LoggerInitializationFailedMessageFormat reports a failed logger construction.
	LoggerInitializationFailedMessageFormat = "unable to initialize logger: %w"
	// ApplicationExecutionFailedMessage prefixes fatal CLI errors.
	ApplicationExecutionFailedMessage = "application execution failed"
)
