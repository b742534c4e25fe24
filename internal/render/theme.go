package render

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/nanodoc/internal/types"
)

// DefaultTheme is the theme used when none is configured.
const DefaultTheme = "classic"

//go:embed themes/*.yaml
var themesFS embed.FS

// Theme maps style names (header, toc.title, error) to style definitions
// such as "bold cyan".
type Theme struct {
	Name   string
	Styles map[string]string
}

// GetAvailableThemes returns the names of the embedded themes.
func GetAvailableThemes() ([]string, error) {
	themeEntries, readError := themesFS.ReadDir("themes")
	if readError != nil {
		return nil, fmt.Errorf("reading embedded themes: %w", readError)
	}

	var themeNames []string
	for _, themeEntry := range themeEntries {
		if !themeEntry.IsDir() && strings.HasSuffix(themeEntry.Name(), ".yaml") {
			themeNames = append(themeNames, strings.TrimSuffix(themeEntry.Name(), ".yaml"))
		}
	}
	return themeNames, nil
}

// LoadTheme loads a theme by name. Names ending in .yaml are treated as
// custom theme file paths and must exist; embedded names fall back to the
// default theme when the requested one does not exist.
func LoadTheme(themeName string) (*Theme, error) {
	if themeName == "" {
		themeName = DefaultTheme
	}
	if strings.HasSuffix(themeName, ".yaml") {
		return LoadCustomTheme(themeName)
	}

	themeStyles, loadError := loadThemeFile(themeName)
	if loadError != nil {
		themeStyles, loadError = loadThemeFile(DefaultTheme)
		if loadError != nil {
			return nil, fmt.Errorf("%w: %s", types.ErrInvalidTheme, themeName)
		}
		themeName = DefaultTheme
	}

	return &Theme{Name: themeName, Styles: themeStyles}, nil
}

// LoadCustomTheme loads a theme from a YAML file on disk.
func LoadCustomTheme(themePath string) (*Theme, error) {
	themeData, readError := os.ReadFile(themePath)
	if readError != nil {
		return nil, fmt.Errorf("%w: %s", types.ErrInvalidTheme, themePath)
	}

	var themeStyles map[string]string
	if unmarshalError := yaml.Unmarshal(themeData, &themeStyles); unmarshalError != nil {
		return nil, fmt.Errorf("parsing theme %s: %w", themePath, unmarshalError)
	}

	themeName := strings.TrimSuffix(filepath.Base(themePath), ".yaml")
	return &Theme{Name: themeName, Styles: themeStyles}, nil
}

// loadThemeFile reads one embedded theme definition.
func loadThemeFile(themeName string) (map[string]string, error) {
	themeData, readError := themesFS.ReadFile(fmt.Sprintf("themes/%s.yaml", themeName))
	if readError != nil {
		return nil, fmt.Errorf("theme not found: %s", themeName)
	}

	var themeStyles map[string]string
	if unmarshalError := yaml.Unmarshal(themeData, &themeStyles); unmarshalError != nil {
		return nil, fmt.Errorf("parsing theme %s: %w", themeName, unmarshalError)
	}
	return themeStyles, nil
}

// ansiAttributeCodes maps style words to ANSI SGR codes.
var ansiAttributeCodes = map[string]string{
	"bold":      "1",
	"dim":       "2",
	"italic":    "3",
	"underline": "4",
	"black":     "30",
	"red":       "31",
	"green":     "32",
	"yellow":    "33",
	"blue":      "34",
	"magenta":   "35",
	"cyan":      "36",
	"white":     "37",
}

// Apply wraps text in the ANSI escape sequence for the named style. Unknown
// style names and unknown style words leave the text unchanged.
func (theme *Theme) Apply(styleName string, text string) string {
	if theme == nil {
		return text
	}
	styleDefinition, styleExists := theme.Styles[styleName]
	if !styleExists {
		return text
	}

	var attributeCodes []string
	for _, styleWord := range strings.Fields(styleDefinition) {
		if attributeCode, codeExists := ansiAttributeCodes[strings.ToLower(styleWord)]; codeExists {
			attributeCodes = append(attributeCodes, attributeCode)
		}
	}
	if len(attributeCodes) == 0 {
		return text
	}

	return fmt.Sprintf("\x1b[%sm%s\x1b[0m", strings.Join(attributeCodes, ";"), text)
}
