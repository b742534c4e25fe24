// Package gatherer reads descriptor files from disk and materializes the
// requested line ranges into text content.
package gatherer

import (
	"os"
	"strings"

	"github.com/arthur-debert/nanodoc/internal/types"
)

// GatherContent returns new descriptors with the Content field populated from
// disk. Each requested range is applied in order and the extracted blocks are
// concatenated.
func GatherContent(descriptors []types.FileContent) ([]types.FileContent, error) {
	gathered := make([]types.FileContent, 0, len(descriptors))

	for _, descriptor := range descriptors {
		fileLines, readError := readFileLines(descriptor.Filepath)
		if readError != nil {
			return nil, readError
		}

		updatedDescriptor := descriptor
		updatedDescriptor.Content = ApplyRanges(fileLines, descriptor.Ranges)
		gathered = append(gathered, updatedDescriptor)
	}

	return gathered, nil
}

// readFileLines reads a regular file and splits it into newline-preserving
// lines.
func readFileLines(path string) ([]string, error) {
	fileInformation, statError := os.Stat(path)
	if statError != nil {
		if os.IsNotExist(statError) {
			return nil, &types.FileError{Path: path, Err: types.ErrFileNotFound}
		}
		return nil, &types.FileError{Path: path, Err: statError}
	}
	if fileInformation.IsDir() {
		return nil, &types.FileError{Path: path, Err: types.ErrNotAFile}
	}

	fileData, readError := os.ReadFile(path)
	if readError != nil {
		return nil, &types.FileError{Path: path, Err: readError}
	}
	return SplitLinesPreservingNewlines(string(fileData)), nil
}

// SplitLinesPreservingNewlines splits text into lines that keep their trailing
// newline characters, so joining the lines reproduces the input exactly.
func SplitLinesPreservingNewlines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// ApplyRanges extracts the requested line blocks from newline-preserving
// lines. A range whose Start equals End selects exactly that line; otherwise
// the End bound is exclusive, with types.RangeEndOfFile meaning the last
// line. Out-of-bounds boundaries clamp silently to the available lines.
func ApplyRanges(lines []string, ranges []types.Range) string {
	if len(lines) == 0 {
		return ""
	}

	var contentBuilder strings.Builder
	for _, lineRange := range ranges {
		startIndex := lineRange.Start - 1
		if startIndex < 0 {
			startIndex = 0
		}

		if lineRange.Start == lineRange.End {
			if startIndex < len(lines) {
				contentBuilder.WriteString(lines[startIndex])
			}
			continue
		}

		endIndex := len(lines)
		if lineRange.End != types.RangeEndOfFile {
			endIndex = lineRange.End - 1
		}
		if endIndex > len(lines) {
			endIndex = len(lines)
		}

		if startIndex >= endIndex {
			continue
		}
		for _, line := range lines[startIndex:endIndex] {
			contentBuilder.WriteString(line)
		}
	}

	return contentBuilder.String()
}
