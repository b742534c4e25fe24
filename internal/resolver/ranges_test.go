package resolver

import (
	"errors"
	"reflect"
	"testing"

	"github.com/arthur-debert/nanodoc/internal/types"
)

func TestParsePathAndRanges(t *testing.T) {
	fullFile := []types.Range{{Start: 1, End: types.RangeEndOfFile}}

	testCases := []struct {
		name           string
		input          string
		expectedPath   string
		expectedRanges []types.Range
		expectError    bool
	}{
		{
			name:           "no_specifier",
			input:          "notes.txt",
			expectedPath:   "notes.txt",
			expectedRanges: fullFile,
		},
		{
			name:           "single_line",
			input:          "notes.txt:5",
			expectedPath:   "notes.txt",
			expectedRanges: []types.Range{{Start: 5, End: 5}},
		},
		{
			name:         "inclusive_range_stored_exclusive",
			input:        "notes.txt:10-20",
			expectedPath: "notes.txt",
			// 10-20 selects lines 10 through 20 inclusive.
			expectedRanges: []types.Range{{Start: 10, End: 21}},
		},
		{
			name:           "full_file_spelled_out",
			input:          "notes.txt:1-3",
			expectedPath:   "notes.txt",
			expectedRanges: []types.Range{{Start: 1, End: 4}},
		},
		{
			name:           "open_ended",
			input:          "notes.txt:7-",
			expectedPath:   "notes.txt",
			expectedRanges: []types.Range{{Start: 7, End: types.RangeEndOfFile}},
		},
		{
			name:         "comma_separated_list",
			input:        "notes.txt:1-2,5,9-",
			expectedPath: "notes.txt",
			expectedRanges: []types.Range{
				{Start: 1, End: 3},
				{Start: 5, End: 5},
				{Start: 9, End: types.RangeEndOfFile},
			},
		},
		{
			name:           "whitespace_tolerated",
			input:          "notes.txt: 2 - 4 , 6",
			expectedPath:   "notes.txt",
			expectedRanges: []types.Range{{Start: 2, End: 5}, {Start: 6, End: 6}},
		},
		{
			name:           "trailing_colon_means_no_specifier",
			input:          "notes.txt:",
			expectedPath:   "notes.txt",
			expectedRanges: fullFile,
		},
		{
			name:        "non_numeric_suffix",
			input:       "notes.txt:abc",
			expectError: true,
		},
		{
			name:        "reversed_range",
			input:       "notes.txt:9-3",
			expectError: true,
		},
		{
			name:        "zero_start",
			input:       "notes.txt:0-4",
			expectError: true,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			parsedPath, parsedRanges, parseError := ParsePathAndRanges(testCase.input)
			if testCase.expectError {
				if parseError == nil {
					t.Fatalf("ParsePathAndRanges(%q) expected error, got %q %+v", testCase.input, parsedPath, parsedRanges)
				}
				if !errors.Is(parseError, types.ErrInvalidRange) {
					t.Fatalf("ParsePathAndRanges(%q) error = %v, want ErrInvalidRange", testCase.input, parseError)
				}
				return
			}
			if parseError != nil {
				t.Fatalf("ParsePathAndRanges(%q) unexpected error: %v", testCase.input, parseError)
			}
			if parsedPath != testCase.expectedPath {
				t.Errorf("ParsePathAndRanges(%q) path = %q, want %q", testCase.input, parsedPath, testCase.expectedPath)
			}
			if !reflect.DeepEqual(parsedRanges, testCase.expectedRanges) {
				t.Errorf("ParsePathAndRanges(%q) ranges = %+v, want %+v", testCase.input, parsedRanges, testCase.expectedRanges)
			}
		})
	}
}

func TestSplitRangeSuffix(t *testing.T) {
	testCases := []struct {
		input        string
		expectedPath string
		expectedSpec string
	}{
		{input: "a.txt", expectedPath: "a.txt", expectedSpec: ""},
		{input: "a.txt:1-3", expectedPath: "a.txt", expectedSpec: "1-3"},
		{input: "a.txt:", expectedPath: "a.txt", expectedSpec: ""},
		{input: "dir/a.txt:5", expectedPath: "dir/a.txt", expectedSpec: "5"},
		{input: ":leading", expectedPath: ":leading", expectedSpec: ""},
	}

	for _, testCase := range testCases {
		actualPath, actualSpec := SplitRangeSuffix(testCase.input)
		if actualPath != testCase.expectedPath || actualSpec != testCase.expectedSpec {
			t.Errorf("SplitRangeSuffix(%q) = (%q, %q), want (%q, %q)",
				testCase.input, actualPath, actualSpec, testCase.expectedPath, testCase.expectedSpec)
		}
	}
}
