package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/arthur-debert/nanodoc/internal/types"
)

const (
	tocTitleLine     = "Table of Contents"
	tocUnderline     = "================="
	tocMaxLevel      = 2
	tocDotPadding    = 5
	tocEntryStyle    = "toc.title"
	headerStyleName  = "header"
	tocHeadingIndent = "  "
)

// ExtractHeadings parses fragment content as markdown and returns the
// level-one and level-two headings with their 1-based line numbers relative
// to the fragment.
func ExtractHeadings(content string) []types.Heading {
	source := []byte(content)
	markdownParser := goldmark.New().Parser()
	documentNode := markdownParser.Parse(text.NewReader(source))

	var headings []types.Heading
	for childNode := documentNode.FirstChild(); childNode != nil; childNode = childNode.NextSibling() {
		headingNode, isHeading := childNode.(*ast.Heading)
		if !isHeading || headingNode.Level > tocMaxLevel {
			continue
		}
		if headingNode.Lines().Len() == 0 {
			continue
		}

		segmentStart := headingNode.Lines().At(0).Start
		lineNumber := 1 + bytes.Count(source[:segmentStart], []byte("\n"))
		headings = append(headings, types.Heading{
			Text:       string(headingNode.Text(source)),
			Level:      headingNode.Level,
			LineNumber: lineNumber,
		})
	}
	return headings
}

// tocBlockLineCount computes how many lines the rendered TOC block occupies,
// including its trailing blank line.
func tocBlockLineCount(tocEntries []types.TOCEntry) int {
	lineCount := 3 // title, underline, blank line
	for _, tocEntry := range tocEntries {
		lineCount += 1 + len(tocEntry.Headings)
	}
	return lineCount + 1 // trailing blank line
}

// renderTOCBlock renders the table of contents. Entry line numbers must
// already account for the block itself.
func renderTOCBlock(tocEntries []types.TOCEntry, formattingContext *FormattingContext) string {
	maxTitleLength := 0
	for _, tocEntry := range tocEntries {
		if len(tocEntry.Title) > maxTitleLength {
			maxTitleLength = len(tocEntry.Title)
		}
	}

	var tocBuilder strings.Builder
	titleLine := tocTitleLine
	if formattingContext.UseStyling {
		titleLine = formattingContext.Theme.Apply(tocEntryStyle, titleLine)
	}
	tocBuilder.WriteString(titleLine + "\n")
	tocBuilder.WriteString(tocUnderline + "\n\n")

	for _, tocEntry := range tocEntries {
		dots := strings.Repeat(".", maxTitleLength-len(tocEntry.Title)+tocDotPadding)
		tocBuilder.WriteString(fmt.Sprintf("- %s %s %d\n", tocEntry.Title, dots, tocEntry.LineNumber))
		for _, heading := range tocEntry.Headings {
			tocBuilder.WriteString(fmt.Sprintf("%s- %s\n", tocHeadingIndent, heading.Text))
		}
	}

	tocBuilder.WriteString("\n")
	return tocBuilder.String()
}
