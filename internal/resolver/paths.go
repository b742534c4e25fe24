// Package resolver turns raw source arguments into ordered content descriptors.
// It covers path resolution (files, directories, globs), range-suffix parsing,
// and bundle classification.
package resolver

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/nanodoc/internal/types"
	"github.com/arthur-debert/nanodoc/internal/utils"
)

const (
	globMetaCharacters  = "*?["
	recursiveGlobMarker = "**"
)

// ResolveOptions controls how arguments are expanded into file paths.
type ResolveOptions struct {
	// Recursive expands directories (and ** globs) through the whole tree
	// instead of the immediate listing.
	Recursive bool

	// IncludeHidden keeps dotfiles and dot-directories at every level.
	IncludeHidden bool

	// AdditionalExtensions extends the default text extension set used when
	// expanding directories and globs.
	AdditionalExtensions []string

	// BundleExtensions overrides the extensions classified as bundles.
	BundleExtensions []string
}

// ResolvePaths expands the raw source arguments into an absolute, deduplicated,
// order-preserving list of existing file paths. Range suffixes on file
// arguments are validated and preserved on the returned entries.
func ResolvePaths(arguments []string, options ResolveOptions) ([]string, error) {
	if len(arguments) == 0 {
		return nil, types.ErrEmptySource
	}

	var resolvedPaths []string
	for _, argument := range arguments {
		expandedPaths, expansionError := resolveSingleArgument(argument, options)
		if expansionError != nil {
			return nil, expansionError
		}
		resolvedPaths = append(resolvedPaths, expandedPaths...)
	}

	deduplicatedPaths := utils.DeduplicateStrings(resolvedPaths)
	if len(deduplicatedPaths) == 0 {
		return nil, types.ErrEmptySource
	}
	return deduplicatedPaths, nil
}

// resolveSingleArgument expands one argument, which may be a glob pattern, a
// directory, or a literal file path with an optional range suffix.
func resolveSingleArgument(argument string, options ResolveOptions) ([]string, error) {
	if strings.ContainsAny(argument, globMetaCharacters) {
		return expandGlob(argument, options)
	}

	basePath, rangeSpec := SplitRangeSuffix(argument)
	if rangeSpec != "" {
		if _, parseError := parseRangeSpec(rangeSpec); parseError != nil {
			return nil, parseError
		}
	}

	absolutePath, absoluteError := filepath.Abs(basePath)
	if absoluteError != nil {
		return nil, fmt.Errorf("resolving absolute path for %q: %w", basePath, absoluteError)
	}
	absolutePath = filepath.Clean(absolutePath)

	fileInformation, statError := os.Stat(absolutePath)
	if statError != nil {
		if os.IsNotExist(statError) {
			return nil, &types.FileError{Path: argument, Err: types.ErrFileNotFound}
		}
		return nil, &types.FileError{Path: argument, Err: statError}
	}

	if fileInformation.IsDir() {
		return expandDirectory(absolutePath, options)
	}

	if rangeSpec != "" {
		return []string{absolutePath + rangeDelimiter + rangeSpec}, nil
	}
	return []string{absolutePath}, nil
}

// expandDirectory lists the recognized text files inside a directory. Hidden
// entries are skipped unless requested, at every level of recursion.
func expandDirectory(directoryPath string, options ResolveOptions) ([]string, error) {
	if options.Recursive {
		return walkDirectoryTree(directoryPath, options)
	}

	directoryEntries, readError := os.ReadDir(directoryPath)
	if readError != nil {
		return nil, &types.FileError{Path: directoryPath, Err: readError}
	}

	var files []string
	for _, directoryEntry := range directoryEntries {
		if directoryEntry.IsDir() {
			continue
		}
		if !options.IncludeHidden && utils.IsHiddenName(directoryEntry.Name()) {
			continue
		}
		fullPath := filepath.Join(directoryPath, directoryEntry.Name())
		if isRecognizedTextFile(fullPath, options) {
			files = append(files, fullPath)
		}
	}
	return files, nil
}

// walkDirectoryTree collects recognized text files from the whole tree below
// directoryPath.
func walkDirectoryTree(directoryPath string, options ResolveOptions) ([]string, error) {
	var files []string

	walkError := filepath.WalkDir(directoryPath, func(currentPath string, directoryEntry fs.DirEntry, entryError error) error {
		if entryError != nil {
			return entryError
		}
		if directoryEntry.IsDir() {
			if currentPath != directoryPath && !options.IncludeHidden && utils.IsHiddenName(directoryEntry.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !options.IncludeHidden && utils.IsHiddenName(directoryEntry.Name()) {
			return nil
		}
		if isRecognizedTextFile(currentPath, options) {
			files = append(files, currentPath)
		}
		return nil
	})
	if walkError != nil {
		return nil, &types.FileError{Path: directoryPath, Err: walkError}
	}

	return files, nil
}

// expandGlob resolves a glob pattern to matching text files. Patterns with a
// ** marker walk the tree below the fixed prefix when recursion is enabled.
func expandGlob(pattern string, options ResolveOptions) ([]string, error) {
	if strings.Contains(pattern, recursiveGlobMarker) && options.Recursive {
		return expandRecursiveGlob(pattern, options)
	}

	matches, globError := filepath.Glob(pattern)
	if globError != nil {
		return nil, &types.FileError{Path: pattern, Err: globError}
	}
	if len(matches) == 0 {
		return nil, &types.FileError{Path: pattern, Err: types.ErrFileNotFound}
	}

	var files []string
	for _, match := range matches {
		absoluteMatch, absoluteError := filepath.Abs(match)
		if absoluteError != nil {
			continue
		}

		fileInformation, statError := os.Stat(absoluteMatch)
		if statError != nil {
			continue
		}

		if fileInformation.IsDir() {
			directoryFiles, directoryError := expandDirectory(absoluteMatch, options)
			if directoryError != nil {
				return nil, directoryError
			}
			files = append(files, directoryFiles...)
			continue
		}

		if !options.IncludeHidden && utils.IsHiddenName(filepath.Base(absoluteMatch)) {
			continue
		}
		if isRecognizedTextFile(absoluteMatch, options) {
			files = append(files, absoluteMatch)
		}
	}

	if len(files) == 0 {
		return nil, &types.FileError{Path: pattern, Err: types.ErrFileNotFound}
	}
	return files, nil
}

// expandRecursiveGlob walks the fixed directory prefix before the ** marker
// and matches the remainder of the pattern against each file name.
func expandRecursiveGlob(pattern string, options ResolveOptions) ([]string, error) {
	markerIndex := strings.Index(pattern, recursiveGlobMarker)
	rootDirectory := filepath.Dir(pattern[:markerIndex] + ".")
	suffixPattern := strings.TrimPrefix(pattern[markerIndex+len(recursiveGlobMarker):], string(filepath.Separator))
	suffixPattern = strings.TrimPrefix(suffixPattern, "/")

	absoluteRoot, absoluteError := filepath.Abs(rootDirectory)
	if absoluteError != nil {
		return nil, fmt.Errorf("resolving absolute path for %q: %w", rootDirectory, absoluteError)
	}

	var files []string
	walkError := filepath.WalkDir(absoluteRoot, func(currentPath string, directoryEntry fs.DirEntry, entryError error) error {
		if entryError != nil {
			return entryError
		}
		if directoryEntry.IsDir() {
			if currentPath != absoluteRoot && !options.IncludeHidden && utils.IsHiddenName(directoryEntry.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !options.IncludeHidden && utils.IsHiddenName(directoryEntry.Name()) {
			return nil
		}
		if suffixPattern != "" {
			matched, matchError := filepath.Match(suffixPattern, directoryEntry.Name())
			if matchError != nil || !matched {
				return nil
			}
		} else if !isRecognizedTextFile(currentPath, options) {
			return nil
		}
		files = append(files, currentPath)
		return nil
	})
	if walkError != nil {
		return nil, &types.FileError{Path: pattern, Err: walkError}
	}

	if len(files) == 0 {
		return nil, &types.FileError{Path: pattern, Err: types.ErrFileNotFound}
	}
	return files, nil
}

// isRecognizedTextFile reports whether directory and glob expansion should
// pick up the file. Explicit file arguments bypass this filter.
func isRecognizedTextFile(path string, options ResolveOptions) bool {
	if IsBundlePath(path, options.BundleExtensions) {
		return true
	}

	extension := strings.ToLower(filepath.Ext(path))
	for _, textExtension := range types.DefaultTextExtensions {
		if extension == textExtension {
			return true
		}
	}
	for _, additionalExtension := range options.AdditionalExtensions {
		if extension == normalizeExtension(additionalExtension) {
			return true
		}
	}
	return false
}

// normalizeExtension lower-cases an extension and guarantees a leading dot.
func normalizeExtension(extension string) string {
	normalized := strings.ToLower(strings.TrimSpace(extension))
	if normalized == "" {
		return normalized
	}
	if !strings.HasPrefix(normalized, ".") {
		normalized = "." + normalized
	}
	return normalized
}
