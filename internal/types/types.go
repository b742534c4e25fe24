// Package types defines the data model shared by every stage of the nanodoc pipeline.
package types

import "fmt"

// RangeEndOfFile is the sentinel End value meaning "through the last line of the file".
const RangeEndOfFile = 0

// Range is a line range inside a file. Start is 1-based and inclusive. End is
// 1-based and exclusive, except when End equals Start, which selects exactly
// that one line. End set to RangeEndOfFile extends the range to the last line.
type Range struct {
	Start int
	End   int
}

// NewRange validates the boundaries and constructs a Range.
func NewRange(startLine int, endLine int) (Range, error) {
	if startLine < 1 {
		return Range{}, &RangeError{Input: fmt.Sprintf("%d", startLine), Err: ErrInvalidRange}
	}
	if endLine != RangeEndOfFile && endLine < startLine {
		return Range{}, &RangeError{Input: fmt.Sprintf("%d-%d", startLine, endLine), Err: ErrInvalidRange}
	}
	return Range{Start: startLine, End: endLine}, nil
}

// IsFullFile reports whether the range covers the entire file.
func (lineRange Range) IsFullFile() bool {
	return lineRange.Start == 1 && lineRange.End == RangeEndOfFile
}

// FileContent describes one file reference flowing through the pipeline.
// Content stays empty until the gatherer populates it.
type FileContent struct {
	// Filepath is the absolute path of the referenced file.
	Filepath string

	// Ranges lists the line ranges to materialize. Never empty; the default
	// is the single range covering the whole file.
	Ranges []Range

	// Content holds the extracted text once gathered.
	Content string

	// IsBundle marks paths whose content is a manifest of further
	// files and directives rather than literal document text.
	IsBundle bool

	// OriginalSource points back at the bundle that inlined this fragment.
	// Fragments with OriginalSource set render without their own header.
	OriginalSource string
}

// TOCEntry is one file entry of the rendered table of contents.
type TOCEntry struct {
	// Title is the display title derived from the source path.
	Title string

	// Path is the effective source file the entry refers to.
	Path string

	// LineNumber is the 1-based line in the final rendered output,
	// counting the table of contents block itself.
	LineNumber int

	// Headings lists the level-one and level-two headings found in the
	// file's fragments, in document order.
	Headings []Heading
}

// Heading is a single markdown heading discovered inside fragment content.
type Heading struct {
	Text       string
	Level      int
	LineNumber int
}

// Document is the flattened, ordered sequence of fragments ready to render.
// Bundles never appear here, only their expansion.
type Document struct {
	ContentItems []FileContent

	// TOC is populated once by the renderer when a table of contents is
	// requested and kept for introspection.
	TOC []TOCEntry

	// ThemeName and UseStyling are presentation hints threaded through from
	// configuration; document assembly itself never consults them.
	ThemeName  string
	UseStyling bool

	FormattingOptions FormattingOptions
}

// NewDocument constructs an empty Document with default formatting options.
func NewDocument() *Document {
	return &Document{
		ContentItems: make([]FileContent, 0),
		FormattingOptions: FormattingOptions{
			ShowHeaders: true,
			HeaderStyle: HeaderStyleNice,
		},
	}
}

// FormattingOptions carries every rendering knob accepted by the CLI.
type FormattingOptions struct {
	LineNumberMode       LineNumberMode
	ShowHeaders          bool
	SequenceStyle        SequenceStyle
	HeaderStyle          HeaderStyle
	IncludeTOC           bool
	AdditionalExtensions []string
	BundleExtensions     []string
}

// LineNumberMode selects how rendered lines are numbered.
type LineNumberMode int

const (
	// LineNumberNone renders content without line numbers.
	LineNumberNone LineNumberMode = iota
	// LineNumberPerFile restarts numbering at one for every file.
	LineNumberPerFile
	// LineNumberGlobal numbers lines continuously across the whole document.
	LineNumberGlobal
)

// ParseLineNumberMode converts a configuration string into a LineNumberMode.
func ParseLineNumberMode(value string) (LineNumberMode, error) {
	switch value {
	case "", "none":
		return LineNumberNone, nil
	case "file", "per-file":
		return LineNumberPerFile, nil
	case "global", "all":
		return LineNumberGlobal, nil
	default:
		return LineNumberNone, fmt.Errorf("unknown line number mode %q", value)
	}
}

// SequenceStyle selects the prefix prepended to file headers.
type SequenceStyle int

const (
	// SequenceNone omits the sequence prefix.
	SequenceNone SequenceStyle = iota
	// SequenceNumerical prefixes headers with 1., 2., 3., ...
	SequenceNumerical
	// SequenceLetter prefixes headers with a., b., c., ...
	SequenceLetter
	// SequenceRoman prefixes headers with i., ii., iii., ...
	SequenceRoman
)

// ParseSequenceStyle converts a configuration string into a SequenceStyle.
func ParseSequenceStyle(value string) (SequenceStyle, error) {
	switch value {
	case "", "none":
		return SequenceNone, nil
	case "numerical":
		return SequenceNumerical, nil
	case "letter":
		return SequenceLetter, nil
	case "roman":
		return SequenceRoman, nil
	default:
		return SequenceNone, fmt.Errorf("unknown sequence style %q", value)
	}
}

// HeaderStyle selects how the file title inside a header is produced.
type HeaderStyle int

const (
	// HeaderStyleNice strips the extension, replaces separators with spaces,
	// title-cases the result and appends the original filename in parentheses.
	HeaderStyleNice HeaderStyle = iota
	// HeaderStyleFilename uses the bare filename.
	HeaderStyleFilename
	// HeaderStylePath uses the full file path.
	HeaderStylePath
)

// ParseHeaderStyle converts a configuration string into a HeaderStyle.
func ParseHeaderStyle(value string) (HeaderStyle, error) {
	switch value {
	case "", "nice":
		return HeaderStyleNice, nil
	case "filename":
		return HeaderStyleFilename, nil
	case "path":
		return HeaderStylePath, nil
	default:
		return HeaderStyleNice, fmt.Errorf("unknown header style %q", value)
	}
}

// DefaultTextExtensions lists the extensions picked up from directories and
// glob expansions unless extended through configuration.
var DefaultTextExtensions = []string{".txt", ".md"}

// DefaultBundleExtensions lists the extensions classified as bundles.
var DefaultBundleExtensions = []string{".bundle", ".ndoc"}

// BundleInfix marks bundle files named like document.bundle.txt.
const BundleInfix = ".bundle."
