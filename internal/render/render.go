// Package render walks a flattened Document and produces the final text:
// file headers, sequence numbering, line numbers, and the optional table of
// contents.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arthur-debert/nanodoc/internal/types"
)

const emptyFilePlaceholder = "(empty file)"

// FormattingContext holds the resolved state for one rendering run.
type FormattingContext struct {
	Theme          *Theme
	LineNumberMode types.LineNumberMode
	ShowHeaders    bool
	HeaderStyle    types.HeaderStyle
	SequenceStyle  types.SequenceStyle
	IncludeTOC     bool
	UseStyling     bool
}

// NewFormattingContext loads the document's theme and captures its formatting
// options.
func NewFormattingContext(document *types.Document) (*FormattingContext, error) {
	theme, themeError := LoadTheme(document.ThemeName)
	if themeError != nil {
		return nil, themeError
	}

	formattingOptions := document.FormattingOptions
	return &FormattingContext{
		Theme:          theme,
		LineNumberMode: formattingOptions.LineNumberMode,
		ShowHeaders:    formattingOptions.ShowHeaders,
		HeaderStyle:    formattingOptions.HeaderStyle,
		SequenceStyle:  formattingOptions.SequenceStyle,
		IncludeTOC:     formattingOptions.IncludeTOC,
		UseStyling:     document.UseStyling,
	}, nil
}

// RenderDocument produces the final output text for a flattened Document.
// When a table of contents is requested it is prepended to the output and
// cached on the Document for introspection.
func RenderDocument(document *types.Document, formattingContext *FormattingContext) (string, error) {
	var bodyBuilder strings.Builder
	bodyLineCount := 0
	writtenTail := ""
	writeBody := func(part string) {
		if part == "" {
			return
		}
		bodyBuilder.WriteString(part)
		bodyLineCount += strings.Count(part, "\n")
		writtenTail = tailOf(writtenTail + part)
	}

	var tocEntries []types.TOCEntry
	entryIndexBySource := make(map[string]int)
	registerSource := func(sourcePath string, lineNumber int) int {
		if existingIndex, exists := entryIndexBySource[sourcePath]; exists {
			return existingIndex
		}
		tocEntries = append(tocEntries, types.TOCEntry{
			Title:      FormatHeaderTitle(sourcePath, formattingContext.HeaderStyle),
			Path:       sourcePath,
			LineNumber: lineNumber,
		})
		entryIndexBySource[sourcePath] = len(tocEntries) - 1
		return len(tocEntries) - 1
	}

	previousEffectiveSource := ""
	sequencePosition := 0
	globalLineNumber := 1

	// Global numbering keeps one counter width for the whole document, so the
	// width must come from the total line count, not the current fragment.
	globalCounterWidth := 0
	if formattingContext.LineNumberMode == types.LineNumberGlobal {
		totalContentLines := 0
		for _, contentItem := range document.ContentItems {
			totalContentLines += contentLineCount(contentItem.Content)
		}
		globalCounterWidth = len(strconv.Itoa(totalContentLines))
	}

	for _, contentItem := range document.ContentItems {
		effectiveSource := contentItem.OriginalSource
		if effectiveSource == "" {
			effectiveSource = contentItem.Filepath
		}
		// Fragments spliced in by @inline carry the parent bundle as their
		// original source; bundle literal runs point at the bundle itself.
		isInlineProduced := contentItem.OriginalSource != "" && contentItem.OriginalSource != contentItem.Filepath
		sourceChanged := effectiveSource != previousEffectiveSource

		if sourceChanged && !isInlineProduced {
			if bodyLineCount > 0 && writtenTail != "\n\n" {
				writeBody("\n")
			}
			if formattingContext.ShowHeaders {
				sequencePosition++
				headerTitle := FormatSequence(formattingContext.SequenceStyle, sequencePosition) +
					FormatHeaderTitle(contentItem.Filepath, formattingContext.HeaderStyle)
				registerSource(effectiveSource, bodyLineCount+1)
				if formattingContext.UseStyling {
					headerTitle = formattingContext.Theme.Apply(headerStyleName, headerTitle)
				}
				writeBody(headerTitle + "\n\n")
			}
		}

		entryIndex := registerSource(effectiveSource, bodyLineCount+1)

		contentStartLine := bodyLineCount + 1
		if formattingContext.IncludeTOC {
			for _, heading := range ExtractHeadings(contentItem.Content) {
				heading.LineNumber += contentStartLine - 1
				tocEntries[entryIndex].Headings = append(tocEntries[entryIndex].Headings, heading)
			}
		}

		fragmentContent := contentItem.Content
		if fragmentContent == "" {
			fragmentContent = emptyFilePlaceholder + "\n"
		}

		switch formattingContext.LineNumberMode {
		case types.LineNumberNone:
		case types.LineNumberPerFile:
			fragmentContent, _ = numberLines(fragmentContent, 1, 0)
		case types.LineNumberGlobal:
			fragmentContent, globalLineNumber = numberLines(fragmentContent, globalLineNumber, globalCounterWidth)
		}

		writeBody(fragmentContent)
		if !strings.HasSuffix(fragmentContent, "\n") {
			writeBody("\n")
		}

		previousEffectiveSource = effectiveSource
	}

	renderedBody := bodyBuilder.String()
	if !formattingContext.IncludeTOC || len(tocEntries) == 0 {
		return renderedBody, nil
	}

	tocSize := tocBlockLineCount(tocEntries)
	for entryIndex := range tocEntries {
		tocEntries[entryIndex].LineNumber += tocSize
		for headingIndex := range tocEntries[entryIndex].Headings {
			tocEntries[entryIndex].Headings[headingIndex].LineNumber += tocSize
		}
	}
	document.TOC = tocEntries

	return renderTOCBlock(tocEntries, formattingContext) + renderedBody, nil
}

// numberLines prefixes every line with a fixed-width right-aligned counter
// starting at startNumber and returns the next counter value. A counterWidth
// of zero sizes the counter to this fragment alone.
func numberLines(content string, startNumber int, counterWidth int) (string, int) {
	hasTrailingNewline := strings.HasSuffix(content, "\n")
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	if counterWidth <= 0 {
		counterWidth = len(strconv.Itoa(startNumber + len(lines) - 1))
	}

	var numberedBuilder strings.Builder
	lineNumber := startNumber
	for lineIndex, line := range lines {
		numberedBuilder.WriteString(fmt.Sprintf("%*d: %s", counterWidth, lineNumber, line))
		if lineIndex < len(lines)-1 || hasTrailingNewline {
			numberedBuilder.WriteString("\n")
		}
		lineNumber++
	}
	return numberedBuilder.String(), lineNumber
}

// contentLineCount counts the lines a fragment contributes to the body,
// accounting for the placeholder an empty fragment renders as.
func contentLineCount(content string) int {
	if content == "" {
		return 1
	}
	return len(strings.Split(strings.TrimSuffix(content, "\n"), "\n"))
}

// tailOf keeps the last two bytes of accumulated output, enough to decide
// whether a blank-line separator is already present.
func tailOf(text string) string {
	if len(text) <= 2 {
		return text
	}
	return text[len(text)-2:]
}
