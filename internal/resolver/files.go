package resolver

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/nanodoc/internal/types"
)

// ResolveFiles pairs each path-with-spec into a content descriptor, parsing
// the range suffix and classifying the path as a bundle or a plain file.
// Content stays unset; the gatherer populates it later.
func ResolveFiles(pathsWithSpecs []string, bundleExtensions []string) ([]types.FileContent, error) {
	if len(bundleExtensions) == 0 {
		bundleExtensions = types.DefaultBundleExtensions
	}

	descriptors := make([]types.FileContent, 0, len(pathsWithSpecs))
	for _, pathWithSpec := range pathsWithSpecs {
		cleanPath, parsedRanges, parseError := ParsePathAndRanges(pathWithSpec)
		if parseError != nil {
			return nil, parseError
		}

		descriptors = append(descriptors, types.FileContent{
			Filepath: cleanPath,
			Ranges:   parsedRanges,
			IsBundle: IsBundlePath(cleanPath, bundleExtensions),
		})
	}

	return descriptors, nil
}

// IsBundlePath reports whether a path names a bundle, either by extension or
// by the ".bundle." infix convention (for example report.bundle.txt).
func IsBundlePath(path string, bundleExtensions []string) bool {
	if len(bundleExtensions) == 0 {
		bundleExtensions = types.DefaultBundleExtensions
	}

	extension := strings.ToLower(filepath.Ext(path))
	for _, bundleExtension := range bundleExtensions {
		if extension == normalizeExtension(bundleExtension) {
			return true
		}
	}

	return strings.Contains(strings.ToLower(filepath.Base(path)), types.BundleInfix)
}
