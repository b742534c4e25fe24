// Package config loads layered application configuration from YAML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/arthur-debert/nanodoc/internal/utils"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds configuration defaults for document assembly.
type ApplicationConfiguration struct {
	Document DocumentConfiguration `mapstructure:"document"`
}

// DocumentConfiguration defines the document assembly and rendering defaults.
// Pointer fields distinguish "unset" from an explicit false.
type DocumentConfiguration struct {
	LineNumbers      string             `mapstructure:"line_numbers"`
	TOC              *bool              `mapstructure:"toc"`
	Header           *bool              `mapstructure:"header"`
	Sequence         string             `mapstructure:"sequence"`
	Style            string             `mapstructure:"style"`
	Extensions       []string           `mapstructure:"extensions"`
	BundleExtensions []string           `mapstructure:"bundle_extensions"`
	Theme            string             `mapstructure:"theme"`
	Styling          *bool              `mapstructure:"styling"`
	Recursive        *bool              `mapstructure:"recursive"`
	Hidden           *bool              `mapstructure:"hidden"`
	Clipboard        *bool              `mapstructure:"copy"`
	Summary          *bool              `mapstructure:"summary"`
	Tokens           TokenConfiguration `mapstructure:"tokens"`
}

// TokenConfiguration controls token counting defaults.
type TokenConfiguration struct {
	Enabled *bool  `mapstructure:"enabled"`
	Model   string `mapstructure:"model"`
}

// LoadApplicationConfiguration loads configuration from global and local files.
// The global file lives under the user home; a local file in the working
// directory (or the explicit path) is layered on top.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", workingDirectoryError)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, homeError := os.UserHomeDir(); homeError == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.ConfigFileName)
		globalConfiguration, loadError := loadConfigurationFromPath(globalPath)
		if loadError != nil {
			return ApplicationConfiguration{}, loadError
		}
		merged = merged.Merge(globalConfiguration)
	}

	localPath, resolveError := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	if resolveError != nil {
		return ApplicationConfiguration{}, resolveError
	}
	if localPath != "" {
		// An implicit lookup tolerates a missing file; a path the user asked
		// for does not.
		if options.ExplicitFilePath != "" {
			if _, statError := os.Stat(localPath); statError != nil {
				return ApplicationConfiguration{}, fmt.Errorf("configuration file %s: %w", localPath, statError)
			}
		}
		localConfiguration, loadError := loadConfigurationFromPath(localPath)
		if loadError != nil {
			return ApplicationConfiguration{}, loadError
		}
		merged = merged.Merge(localConfiguration)
	}

	merged.Document.Extensions = utils.DeduplicateStrings(merged.Document.Extensions)
	merged.Document.BundleExtensions = utils.DeduplicateStrings(merged.Document.BundleExtensions)

	return merged, nil
}

func resolveLocalConfigPath(workingDirectory string, explicitPath string) (string, error) {
	if explicitPath != "" {
		if filepath.IsAbs(explicitPath) {
			return explicitPath, nil
		}
		if workingDirectory == "" {
			absolutePath, absoluteError := filepath.Abs(explicitPath)
			if absoluteError != nil {
				return "", fmt.Errorf("resolve configuration path %s: %w", explicitPath, absoluteError)
			}
			return absolutePath, nil
		}
		return filepath.Join(workingDirectory, explicitPath), nil
	}
	if workingDirectory == "" {
		return "", nil
	}
	return filepath.Join(workingDirectory, utils.ConfigFileName), nil
}

func loadConfigurationFromPath(configurationPath string) (ApplicationConfiguration, error) {
	if _, statError := os.Stat(configurationPath); statError != nil {
		if os.IsNotExist(statError) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", configurationPath, statError)
	}

	viperInstance := viper.New()
	viperInstance.SetConfigFile(configurationPath)
	viperInstance.SetConfigType("yaml")
	if readError := viperInstance.ReadInConfig(); readError != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration %s: %w", configurationPath, readError)
	}

	var configuration ApplicationConfiguration
	if unmarshalError := viperInstance.Unmarshal(&configuration); unmarshalError != nil {
		return ApplicationConfiguration{}, fmt.Errorf("parse configuration %s: %w", configurationPath, unmarshalError)
	}
	return configuration, nil
}

// Merge layers an overlay configuration on top of the receiver. Set fields of
// the overlay win; unset fields keep the receiver's values.
func (base ApplicationConfiguration) Merge(overlay ApplicationConfiguration) ApplicationConfiguration {
	merged := base
	merged.Document = base.Document.merge(overlay.Document)
	return merged
}

func (base DocumentConfiguration) merge(overlay DocumentConfiguration) DocumentConfiguration {
	merged := base
	if overlay.LineNumbers != "" {
		merged.LineNumbers = overlay.LineNumbers
	}
	if overlay.TOC != nil {
		merged.TOC = overlay.TOC
	}
	if overlay.Header != nil {
		merged.Header = overlay.Header
	}
	if overlay.Sequence != "" {
		merged.Sequence = overlay.Sequence
	}
	if overlay.Style != "" {
		merged.Style = overlay.Style
	}
	if overlay.Extensions != nil {
		merged.Extensions = overlay.Extensions
	}
	if overlay.BundleExtensions != nil {
		merged.BundleExtensions = overlay.BundleExtensions
	}
	if overlay.Theme != "" {
		merged.Theme = overlay.Theme
	}
	if overlay.Styling != nil {
		merged.Styling = overlay.Styling
	}
	if overlay.Recursive != nil {
		merged.Recursive = overlay.Recursive
	}
	if overlay.Hidden != nil {
		merged.Hidden = overlay.Hidden
	}
	if overlay.Clipboard != nil {
		merged.Clipboard = overlay.Clipboard
	}
	if overlay.Summary != nil {
		merged.Summary = overlay.Summary
	}
	if overlay.Tokens.Enabled != nil {
		merged.Tokens.Enabled = overlay.Tokens.Enabled
	}
	if overlay.Tokens.Model != "" {
		merged.Tokens.Model = overlay.Tokens.Model
	}
	return merged
}
