package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/nanodoc/internal/utils"
)

// InitOptions controls where InitializeConfiguration writes the default file.
type InitOptions struct {
	WorkingDirectory string
	Global           bool
	Force            bool
}

const defaultConfigurationTemplate = `# nanodoc configuration.
# Every key is optional; command line flags override these values.
document:
  # line_numbers: none | file | global
  line_numbers: none
  # Prepend a table of contents to the output.
  toc: false
  # Write a header line when the source file changes.
  header: true
  # sequence: none | numerical | letter | roman
  sequence: none
  # style: nice | filename | path
  style: nice
  # Additional file extensions treated as plain text, e.g. [".rst", ".log"].
  extensions: []
  # theme: classic | classic-light | classic-dark
  theme: classic
  tokens:
    model: gpt-4o
`

// InitializeConfiguration writes a commented default configuration file and
// returns its path. An existing file is only overwritten when Force is set.
func InitializeConfiguration(options InitOptions) (string, error) {
	configurationPath, pathError := defaultConfigurationPath(options)
	if pathError != nil {
		return "", pathError
	}

	if _, statError := os.Stat(configurationPath); statError == nil && !options.Force {
		return "", fmt.Errorf("configuration file already exists at %s", configurationPath)
	}

	if directoryError := os.MkdirAll(filepath.Dir(configurationPath), 0o755); directoryError != nil {
		return "", fmt.Errorf("create configuration directory: %w", directoryError)
	}
	if writeError := os.WriteFile(configurationPath, []byte(defaultConfigurationTemplate), 0o644); writeError != nil {
		return "", fmt.Errorf("write configuration %s: %w", configurationPath, writeError)
	}
	return configurationPath, nil
}

func defaultConfigurationPath(options InitOptions) (string, error) {
	if options.Global {
		homeDirectory, homeError := os.UserHomeDir()
		if homeError != nil {
			return "", fmt.Errorf("determine home directory: %w", homeError)
		}
		return filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.ConfigFileName), nil
	}

	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return "", fmt.Errorf("determine working directory: %w", workingDirectoryError)
		}
		workingDirectory = currentDirectory
	}
	return filepath.Join(workingDirectory, utils.ConfigFileName), nil
}
