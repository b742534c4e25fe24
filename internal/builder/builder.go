// Package builder flattens content descriptors into a Document, expanding
// bundle files and their @include/@inline directives recursively.
package builder

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/arthur-debert/nanodoc/internal/gatherer"
	"github.com/arthur-debert/nanodoc/internal/resolver"
	"github.com/arthur-debert/nanodoc/internal/types"
)

const (
	directiveInclude = "include"
	directiveInline  = "inline"

	missingIncludeFormat = "ERROR: Could not find included file: %s\n"
	missingInlineFormat  = "ERROR: Could not find inlined file: %s\n"
)

// directivePattern matches "@include <ref>" and "@inline <ref>" lines.
var directivePattern = regexp.MustCompile(`^@(include|inline)\s+(.+)$`)

// BuildOptions configures bundle expansion.
type BuildOptions struct {
	// BundleExtensions overrides the extensions classified as bundles when
	// directive targets are resolved.
	BundleExtensions []string

	// Logger receives expansion diagnostics. Nil disables them.
	Logger *zap.Logger
}

// BuildDocument flattens the gathered descriptors into a Document. Non-bundle
// descriptors pass through unchanged; bundles are expanded line by line,
// recursing through nested bundles. A bundle re-entered on its own ancestor
// chain is a circular dependency error.
func BuildDocument(descriptors []types.FileContent, options BuildOptions) (*types.Document, error) {
	document := types.NewDocument()
	activeAncestors := make(map[string]struct{})

	for _, descriptor := range descriptors {
		if expandError := expandContent(descriptor, document, activeAncestors, "", options); expandError != nil {
			return nil, expandError
		}
	}

	return document, nil
}

// expandContent appends one descriptor to the document, expanding it first
// when it is a bundle. activeAncestors holds the bundle paths currently being
// expanded on this recursion branch; entries are removed on exit so sibling
// branches may include the same bundle again.
func expandContent(descriptor types.FileContent, document *types.Document, activeAncestors map[string]struct{}, parentBundlePath string, options BuildOptions) error {
	if _, isActive := activeAncestors[descriptor.Filepath]; isActive {
		return &types.CircularDependencyError{Path: descriptor.Filepath, Parent: parentBundlePath}
	}

	if !descriptor.IsBundle {
		document.ContentItems = append(document.ContentItems, descriptor)
		return nil
	}

	if options.Logger != nil {
		options.Logger.Debug("expanding bundle", zap.String("path", descriptor.Filepath))
	}

	activeAncestors[descriptor.Filepath] = struct{}{}
	defer delete(activeAncestors, descriptor.Filepath)

	return expandBundleDirectives(descriptor, document, activeAncestors, options)
}

// expandBundleDirectives splits bundle text into literal runs and directive
// lines. Literal runs flush as fragments attributed to the bundle itself;
// directives load and expand their targets in encounter order.
func expandBundleDirectives(bundleDescriptor types.FileContent, document *types.Document, activeAncestors map[string]struct{}, options BuildOptions) error {
	bundleLines := strings.Split(bundleDescriptor.Content, "\n")
	var literalRun []string

	flushLiteralRun := func() {
		if len(literalRun) == 0 {
			return
		}
		document.ContentItems = append(document.ContentItems, types.FileContent{
			Filepath:       bundleDescriptor.Filepath,
			Ranges:         []types.Range{{Start: 1, End: types.RangeEndOfFile}},
			Content:        strings.Join(literalRun, "\n") + "\n",
			OriginalSource: bundleDescriptor.Filepath,
		})
		literalRun = nil
	}

	for lineIndex, bundleLine := range bundleLines {
		// strings.Split leaves a trailing empty element when the bundle text
		// ends with a newline; it is not a content line.
		if lineIndex == len(bundleLines)-1 && bundleLine == "" {
			break
		}

		directiveMatch := directivePattern.FindStringSubmatch(strings.TrimSpace(bundleLine))
		if directiveMatch == nil {
			literalRun = append(literalRun, bundleLine)
			continue
		}

		flushLiteralRun()

		directiveKind := directiveMatch[1]
		directiveReference := strings.TrimSpace(directiveMatch[2])
		if directiveError := expandDirective(directiveKind, directiveReference, bundleDescriptor.Filepath, document, activeAncestors, options); directiveError != nil {
			return directiveError
		}
	}

	flushLiteralRun()
	return nil
}

// expandDirective resolves a directive target relative to the bundle's
// directory, gathers its content, and expands it recursively. A missing
// target becomes an error-text fragment instead of aborting the build.
func expandDirective(directiveKind string, directiveReference string, bundlePath string, document *types.Document, activeAncestors map[string]struct{}, options BuildOptions) error {
	resolvedReference := directiveReference
	if !filepath.IsAbs(resolvedReference) {
		resolvedReference = filepath.Join(filepath.Dir(bundlePath), resolvedReference)
	}

	loadedDescriptors, resolveError := resolver.ResolveFiles([]string{resolvedReference}, options.BundleExtensions)
	if resolveError != nil {
		return fmt.Errorf("resolving directive target %q in %s: %w", directiveReference, bundlePath, resolveError)
	}

	gatheredDescriptors, gatherError := gatherer.GatherContent(loadedDescriptors)
	if gatherError != nil {
		if errors.Is(gatherError, types.ErrFileNotFound) {
			if options.Logger != nil {
				options.Logger.Warn("directive target missing",
					zap.String("bundle", bundlePath),
					zap.String("reference", directiveReference))
			}
			document.ContentItems = append(document.ContentItems, missingTargetFragment(directiveKind, directiveReference, bundlePath))
			return nil
		}
		return gatherError
	}

	for _, gatheredDescriptor := range gatheredDescriptors {
		if directiveKind == directiveInline {
			gatheredDescriptor.OriginalSource = bundlePath
		}
		if expandError := expandContent(gatheredDescriptor, document, activeAncestors, bundlePath, options); expandError != nil {
			return expandError
		}
	}

	return nil
}

// missingTargetFragment substitutes an error-text fragment for a directive
// target that could not be found.
func missingTargetFragment(directiveKind string, directiveReference string, bundlePath string) types.FileContent {
	messageFormat := missingIncludeFormat
	if directiveKind == directiveInline {
		messageFormat = missingInlineFormat
	}
	return types.FileContent{
		Filepath:       bundlePath,
		Ranges:         []types.Range{{Start: 1, End: types.RangeEndOfFile}},
		Content:        fmt.Sprintf(messageFormat, directiveReference),
		OriginalSource: bundlePath,
	}
}
