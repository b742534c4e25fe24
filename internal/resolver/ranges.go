package resolver

import (
	"strconv"
	"strings"

	"github.com/arthur-debert/nanodoc/internal/types"
)

const (
	rangeDelimiter        = ":"
	rangeSeparator        = ","
	rangeDash             = "-"
	invalidStartMessage   = "invalid start line"
	invalidEndMessage     = "invalid end line"
	invalidSegmentMessage = "invalid range segment"
)

// ParsePathAndRanges splits a trailing range specifier from a path argument.
// The specifier is introduced by the last colon: "file.txt:10-20,30-".
// Supported forms are N (a single line), N-M (lines N through M inclusive),
// and N- (line N through end of file). Without a specifier the whole file is
// selected. The inclusive user-facing end is stored in the exclusive form the
// gatherer applies, so N-M becomes Range{N, M+1}.
func ParsePathAndRanges(pathWithSpec string) (string, []types.Range, error) {
	defaultRanges := []types.Range{{Start: 1, End: types.RangeEndOfFile}}

	cleanPath, rangeSpec := SplitRangeSuffix(pathWithSpec)
	if rangeSpec == "" {
		return cleanPath, defaultRanges, nil
	}

	parsedRanges, parseError := parseRangeSpec(rangeSpec)
	if parseError != nil {
		return "", nil, parseError
	}
	if len(parsedRanges) == 0 {
		return cleanPath, defaultRanges, nil
	}
	return cleanPath, parsedRanges, nil
}

// SplitRangeSuffix separates a path from its range specifier without parsing
// the specifier. A path without a colon, or with an empty suffix after the
// last colon, carries no specifier.
func SplitRangeSuffix(pathWithSpec string) (string, string) {
	delimiterIndex := strings.LastIndex(pathWithSpec, rangeDelimiter)
	if delimiterIndex <= 0 {
		return pathWithSpec, ""
	}
	rangeSpec := pathWithSpec[delimiterIndex+1:]
	if strings.TrimSpace(rangeSpec) == "" {
		return pathWithSpec[:delimiterIndex], ""
	}
	return pathWithSpec[:delimiterIndex], rangeSpec
}

// parseRangeSpec parses the comma-separated range list after the delimiter.
func parseRangeSpec(rangeSpec string) ([]types.Range, error) {
	var parsedRanges []types.Range

	for _, rangeSegment := range strings.Split(rangeSpec, rangeSeparator) {
		trimmedSegment := strings.TrimSpace(rangeSegment)
		if trimmedSegment == "" {
			continue
		}

		parsedRange, parseError := parseRangeSegment(trimmedSegment)
		if parseError != nil {
			return nil, parseError
		}
		parsedRanges = append(parsedRanges, parsedRange)
	}

	return parsedRanges, nil
}

// parseRangeSegment parses a single N, N-M, or N- form.
func parseRangeSegment(rangeSegment string) (types.Range, error) {
	if !strings.Contains(rangeSegment, rangeDash) {
		lineNumber, conversionError := strconv.Atoi(strings.TrimSpace(rangeSegment))
		if conversionError != nil {
			return types.Range{}, &types.RangeError{Input: rangeSegment, Err: types.ErrInvalidRange}
		}
		return types.NewRange(lineNumber, lineNumber)
	}

	boundaries := strings.SplitN(rangeSegment, rangeDash, 2)
	if len(boundaries) != 2 {
		return types.Range{}, &types.RangeError{Input: rangeSegment, Err: types.ErrInvalidRange}
	}

	startLine, startError := strconv.Atoi(strings.TrimSpace(boundaries[0]))
	if startError != nil {
		return types.Range{}, &types.RangeError{Input: rangeSegment, Err: types.ErrInvalidRange}
	}

	trimmedEnd := strings.TrimSpace(boundaries[1])
	if trimmedEnd == "" {
		return types.NewRange(startLine, types.RangeEndOfFile)
	}

	endLine, endError := strconv.Atoi(trimmedEnd)
	if endError != nil {
		return types.Range{}, &types.RangeError{Input: rangeSegment, Err: types.ErrInvalidRange}
	}
	if endLine < startLine {
		return types.Range{}, &types.RangeError{Input: rangeSegment, Err: types.ErrInvalidRange}
	}

	// The user-facing end is inclusive; store the exclusive bound the
	// gatherer expects.
	return types.NewRange(startLine, endLine+1)
}
