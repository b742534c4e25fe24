package render

import (
	"testing"

	"github.com/arthur-debert/nanodoc/internal/types"
)

func TestFormatSequence(t *testing.T) {
	testCases := []struct {
		name          string
		sequenceStyle types.SequenceStyle
		position      int
		expected      string
	}{
		{name: "none", sequenceStyle: types.SequenceNone, position: 1, expected: ""},
		{name: "numerical", sequenceStyle: types.SequenceNumerical, position: 3, expected: "3. "},
		{name: "letter_first", sequenceStyle: types.SequenceLetter, position: 1, expected: "a. "},
		{name: "letter_third", sequenceStyle: types.SequenceLetter, position: 3, expected: "c. "},
		{name: "letter_rollover", sequenceStyle: types.SequenceLetter, position: 27, expected: "aa. "},
		{name: "letter_rollover_second", sequenceStyle: types.SequenceLetter, position: 28, expected: "ab. "},
		{name: "roman_third", sequenceStyle: types.SequenceRoman, position: 3, expected: "iii. "},
		{name: "roman_fourth", sequenceStyle: types.SequenceRoman, position: 4, expected: "iv. "},
		{name: "roman_ninth", sequenceStyle: types.SequenceRoman, position: 9, expected: "ix. "},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			actual := FormatSequence(testCase.sequenceStyle, testCase.position)
			if actual != testCase.expected {
				t.Errorf("FormatSequence(%v, %d) = %q, want %q", testCase.sequenceStyle, testCase.position, actual, testCase.expected)
			}
		})
	}
}
