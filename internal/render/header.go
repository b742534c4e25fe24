package render

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/nanodoc/internal/types"
)

// FormatHeaderTitle derives the display title for a source file. The nice
// style strips the extension, replaces dash and underscore separators with
// spaces, title-cases the result and appends the original filename in
// parentheses; the other styles use the bare filename or the full path.
func FormatHeaderTitle(path string, headerStyle types.HeaderStyle) string {
	fileName := filepath.Base(path)

	switch headerStyle {
	case types.HeaderStyleFilename:
		return fileName
	case types.HeaderStylePath:
		return path
	case types.HeaderStyleNice:
		baseName := strings.TrimSuffix(fileName, filepath.Ext(fileName))
		niceName := strings.ReplaceAll(baseName, "_", " ")
		niceName = strings.ReplaceAll(niceName, "-", " ")
		return fmt.Sprintf("%s (%s)", titleCase(niceName), fileName)
	default:
		return fileName
	}
}

// titleCase upper-cases the first letter of every word and lower-cases the rest.
func titleCase(text string) string {
	words := strings.Fields(text)
	for wordIndex, word := range words {
		words[wordIndex] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
