package gatherer

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/arthur-debert/nanodoc/internal/types"
)

const fiveLineContent = "one\ntwo\nthree\nfour\nfive\n"

func fiveLines() []string {
	return SplitLinesPreservingNewlines(fiveLineContent)
}

func TestSplitLinesPreservingNewlines(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "empty", input: "", expected: nil},
		{name: "single_line", input: "alpha\n", expected: []string{"alpha\n"}},
		{name: "no_trailing_newline", input: "alpha\nbeta", expected: []string{"alpha\n", "beta"}},
		{name: "blank_lines_kept", input: "alpha\n\nbeta\n", expected: []string{"alpha\n", "\n", "beta\n"}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			actual := SplitLinesPreservingNewlines(testCase.input)
			if !reflect.DeepEqual(actual, testCase.expected) {
				t.Errorf("SplitLinesPreservingNewlines(%q) = %q, want %q", testCase.input, actual, testCase.expected)
			}
		})
	}
}

func TestApplyRanges(t *testing.T) {
	testCases := []struct {
		name     string
		ranges   []types.Range
		expected string
	}{
		{
			name:     "full_file",
			ranges:   []types.Range{{Start: 1, End: types.RangeEndOfFile}},
			expected: fiveLineContent,
		},
		{
			name:     "singleton_selects_exactly_one_line",
			ranges:   []types.Range{{Start: 3, End: 3}},
			expected: "three\n",
		},
		{
			name: "exclusive_end",
			// End 4 is exclusive, so lines one through three.
			ranges:   []types.Range{{Start: 1, End: 4}},
			expected: "one\ntwo\nthree\n",
		},
		{
			name:     "open_ended",
			ranges:   []types.Range{{Start: 4, End: types.RangeEndOfFile}},
			expected: "four\nfive\n",
		},
		{
			name:     "end_clamped_to_file",
			ranges:   []types.Range{{Start: 4, End: 100}},
			expected: "four\nfive\n",
		},
		{
			name:     "start_beyond_file_yields_nothing",
			ranges:   []types.Range{{Start: 9, End: types.RangeEndOfFile}},
			expected: "",
		},
		{
			name:     "singleton_beyond_file_yields_nothing",
			ranges:   []types.Range{{Start: 9, End: 9}},
			expected: "",
		},
		{
			name: "multiple_ranges_concatenate_in_order",
			ranges: []types.Range{
				{Start: 5, End: 5},
				{Start: 1, End: 3},
			},
			expected: "five\none\ntwo\n",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			actual := ApplyRanges(fiveLines(), testCase.ranges)
			if actual != testCase.expected {
				t.Errorf("ApplyRanges(%+v) = %q, want %q", testCase.ranges, actual, testCase.expected)
			}
		})
	}
}

func TestApplyRangesEmptyFile(t *testing.T) {
	actual := ApplyRanges(nil, []types.Range{{Start: 1, End: types.RangeEndOfFile}})
	if actual != "" {
		t.Errorf("ApplyRanges(empty file) = %q, want empty string", actual)
	}
}

func TestGatherContent(t *testing.T) {
	baseDirectory := t.TempDir()
	filePath := filepath.Join(baseDirectory, "notes.txt")
	if writeError := os.WriteFile(filePath, []byte(fiveLineContent), 0o644); writeError != nil {
		t.Fatalf("write test file: %v", writeError)
	}

	descriptors := []types.FileContent{
		{Filepath: filePath, Ranges: []types.Range{{Start: 2, End: 4}}},
	}

	gathered, gatherError := GatherContent(descriptors)
	if gatherError != nil {
		t.Fatalf("GatherContent unexpected error: %v", gatherError)
	}
	if len(gathered) != 1 {
		t.Fatalf("GatherContent returned %d descriptors, want 1", len(gathered))
	}
	if gathered[0].Content != "two\nthree\n" {
		t.Errorf("GatherContent content = %q, want %q", gathered[0].Content, "two\nthree\n")
	}
	if descriptors[0].Content != "" {
		t.Errorf("GatherContent mutated its input descriptor")
	}
}

func TestGatherContentDirectoryIsNotAFile(t *testing.T) {
	descriptors := []types.FileContent{
		{Filepath: t.TempDir(), Ranges: []types.Range{{Start: 1, End: types.RangeEndOfFile}}},
	}

	_, gatherError := GatherContent(descriptors)
	if !errors.Is(gatherError, types.ErrNotAFile) {
		t.Fatalf("GatherContent(directory) error = %v, want ErrNotAFile", gatherError)
	}
}

func TestGatherContentMissingFile(t *testing.T) {
	descriptors := []types.FileContent{
		{Filepath: filepath.Join(t.TempDir(), "missing.txt"), Ranges: []types.Range{{Start: 1, End: types.RangeEndOfFile}}},
	}

	_, gatherError := GatherContent(descriptors)
	if !errors.Is(gatherError, types.ErrFileNotFound) {
		t.Fatalf("GatherContent(missing) error = %v, want ErrFileNotFound", gatherError)
	}

	var fileError *types.FileError
	if !errors.As(gatherError, &fileError) {
		t.Fatalf("GatherContent(missing) error type = %T, want *types.FileError", gatherError)
	}
}
