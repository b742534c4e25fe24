package render

import (
	"strconv"
	"strings"

	"github.com/arthur-debert/nanodoc/internal/types"
)

// FormatSequence renders the header prefix for a 1-based sequence position.
// The result includes the trailing separator, e.g. "3. ", "c. ", "iii. ".
func FormatSequence(sequenceStyle types.SequenceStyle, position int) string {
	switch sequenceStyle {
	case types.SequenceNone:
		return ""
	case types.SequenceNumerical:
		return strconv.Itoa(position) + ". "
	case types.SequenceLetter:
		return letterSequence(position) + ". "
	case types.SequenceRoman:
		return toRoman(position) + ". "
	default:
		return ""
	}
}

// letterSequence produces a, b, ..., z, aa, ab, ... for positions past 26.
func letterSequence(position int) string {
	if position <= 26 {
		return string(rune('a' + position - 1))
	}
	return string(rune('a'+((position-1)/26)-1)) + string(rune('a'+((position-1)%26)))
}

var (
	romanValues  = []int{1000, 900, 500, 400, 100, 90, 50, 40, 10, 9, 5, 4, 1}
	romanSymbols = []string{"M", "CM", "D", "CD", "C", "XC", "L", "XL", "X", "IX", "V", "IV", "I"}
)

// toRoman converts a positive integer to a lower-case roman numeral.
func toRoman(number int) string {
	var numeralBuilder strings.Builder
	for symbolIndex := 0; symbolIndex < len(romanValues); symbolIndex++ {
		for number >= romanValues[symbolIndex] {
			number -= romanValues[symbolIndex]
			numeralBuilder.WriteString(romanSymbols[symbolIndex])
		}
	}
	return strings.ToLower(numeralBuilder.String())
}
