// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/arthur-debert/nanodoc/internal/builder"
	"github.com/arthur-debert/nanodoc/internal/config"
	"github.com/arthur-debert/nanodoc/internal/gatherer"
	"github.com/arthur-debert/nanodoc/internal/render"
	"github.com/arthur-debert/nanodoc/internal/resolver"
	"github.com/arthur-debert/nanodoc/internal/services/clipboard"
	"github.com/arthur-debert/nanodoc/internal/tokenizer"
	"github.com/arthur-debert/nanodoc/internal/types"
	"github.com/arthur-debert/nanodoc/internal/utils"
)

const (
	lineNumberFlagName       = "linenum"
	tocFlagName              = "toc"
	noHeaderFlagName         = "no-header"
	sequenceFlagName         = "sequence"
	headerStyleFlagName      = "style"
	extensionsFlagName       = "ext"
	bundleExtensionsFlagName = "bundle-ext"
	themeFlagName            = "theme"
	noColorFlagName          = "no-color"
	recursiveFlagName        = "recursive"
	hiddenFlagName           = "hidden"
	copyFlagName             = "copy"
	tokensFlagName           = "tokens"
	modelFlagName            = "model"
	summaryFlagName          = "summary"
	configFlagName           = "config"
	versionFlagName          = "version"
	verboseFlagName          = "verbose"
	globalFlagName           = "global"
	forceFlagName            = "force"

	versionTemplate      = "nanodoc version: %s\n"
	rootUse              = "nanodoc [paths...]"
	rootShortDescription = "nanodoc assembles plain text files into a single document"
	rootLongDescription  = `nanodoc concatenates text files, directories, globs, and bundle files into
one formatted document. Sources may carry line-range suffixes such as
notes.txt:10-20, and bundle files may pull in further files through
@include and @inline directives.`
	rootUsageExample = `  # Concatenate two files with per-file line numbers
  nanodoc --linenum file intro.txt chapter.md

  # Assemble a bundle with a table of contents
  nanodoc --toc release.bundle

  # Lines 10 through 20 of a single file
  nanodoc notes.txt:10-20`

	initUse               = "init"
	initShortDescription  = "write a default configuration file"
	initLongDescription   = `Write a commented default configuration file. By default the file is created
in the current directory; use --global for the per-user configuration.`
	themesUse              = "themes"
	themesShortDescription = "list the built-in themes"

	lineNumberFlagDescription       = "line numbering: none, file, or global"
	tocFlagDescription              = "prepend a table of contents"
	noHeaderFlagDescription         = "omit file headers"
	sequenceFlagDescription         = "header sequence: none, numerical, letter, or roman"
	headerStyleFlagDescription      = "header title style: nice, filename, or path"
	extensionsFlagDescription       = "additional file extensions treated as text (e.g. .rst)"
	bundleExtensionsFlagDescription = "file extensions treated as bundles"
	themeFlagDescription            = "color theme for styled output: a built-in name or a path to a .yaml theme file"
	noColorFlagDescription          = "disable ANSI styling even on a terminal"
	recursiveFlagDescription        = "expand directories and ** globs recursively"
	hiddenFlagDescription           = "include hidden files and directories"
	copyFlagDescription             = "copy the rendered document to the clipboard"
	tokensFlagDescription           = "include a token count in the summary"
	modelFlagDescription            = "tokenizer model used for token counting"
	summaryFlagDescription          = "print a document summary to stderr"
	configFlagDescription           = "path to a configuration file"
	versionFlagDescription          = "display application version"
	verboseFlagDescription          = "enable debug logging"
	globalFlagDescription           = "write the per-user configuration file"
	forceFlagDescription            = "overwrite an existing configuration file"

	defaultTokenizerModelName    = "gpt-4o"
	summaryLineFormat            = "Summary: %d files, %d lines, %d bytes\n"
	summaryTokenLineFormat       = "Tokens: %d (%s)\n"
	configurationWrittenFormat   = "Configuration written to %s\n"
	clipboardCopyFailedFormat    = "copy to clipboard: %w"
	warningTokenCountFailedEntry = "token counting failed"
)

// documentOptions collects every flag that shapes document assembly.
type documentOptions struct {
	lineNumbers          string
	includeTOC           bool
	noHeader             bool
	sequence             string
	headerStyle          string
	additionalExtensions []string
	bundleExtensions     []string
	theme                string
	noColor              bool
	recursive            bool
	includeHidden        bool
	copyToClipboard      bool
	countTokens          bool
	tokenizerModel       string
	printSummary         bool
	configPath           string
}

// Execute runs the nanodoc application.
func Execute(applicationLogger *zap.Logger) error {
	rootCommand := createRootCommand(applicationLogger)
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand(applicationLogger *zap.Logger) *cobra.Command {
	var showVersion bool
	var verboseEnabled bool
	var options documentOptions

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			if len(arguments) == 0 {
				return command.Help()
			}
			return runAssemble(command, arguments, options, applicationLogger)
		},
	}

	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.PersistentFlags().BoolVar(&verboseEnabled, verboseFlagName, false, verboseFlagDescription)

	rootFlags := rootCommand.Flags()
	rootFlags.StringVarP(&options.lineNumbers, lineNumberFlagName, "l", "", lineNumberFlagDescription)
	rootFlags.BoolVar(&options.includeTOC, tocFlagName, false, tocFlagDescription)
	rootFlags.BoolVar(&options.noHeader, noHeaderFlagName, false, noHeaderFlagDescription)
	rootFlags.StringVar(&options.sequence, sequenceFlagName, "", sequenceFlagDescription)
	rootFlags.StringVar(&options.headerStyle, headerStyleFlagName, "", headerStyleFlagDescription)
	rootFlags.StringArrayVar(&options.additionalExtensions, extensionsFlagName, nil, extensionsFlagDescription)
	rootFlags.StringArrayVar(&options.bundleExtensions, bundleExtensionsFlagName, nil, bundleExtensionsFlagDescription)
	rootFlags.StringVar(&options.theme, themeFlagName, "", themeFlagDescription)
	rootFlags.BoolVar(&options.noColor, noColorFlagName, false, noColorFlagDescription)
	rootFlags.BoolVarP(&options.recursive, recursiveFlagName, "r", false, recursiveFlagDescription)
	rootFlags.BoolVar(&options.includeHidden, hiddenFlagName, false, hiddenFlagDescription)
	rootFlags.BoolVar(&options.copyToClipboard, copyFlagName, false, copyFlagDescription)
	rootFlags.BoolVar(&options.countTokens, tokensFlagName, false, tokensFlagDescription)
	rootFlags.StringVar(&options.tokenizerModel, modelFlagName, defaultTokenizerModelName, modelFlagDescription)
	rootFlags.BoolVar(&options.printSummary, summaryFlagName, false, summaryFlagDescription)
	rootFlags.StringVar(&options.configPath, configFlagName, "", configFlagDescription)

	rootCommand.AddCommand(
		createInitCommand(),
		createThemesCommand(),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// createInitCommand returns the init subcommand.
func createInitCommand() *cobra.Command {
	var writeGlobal bool
	var overwriteExisting bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			writtenPath, initializeError := config.InitializeConfiguration(config.InitOptions{
				Global: writeGlobal,
				Force:  overwriteExisting,
			})
			if initializeError != nil {
				return initializeError
			}
			fmt.Printf(configurationWrittenFormat, writtenPath)
			return nil
		},
	}

	initCommand.Flags().BoolVar(&writeGlobal, globalFlagName, false, globalFlagDescription)
	initCommand.Flags().BoolVar(&overwriteExisting, forceFlagName, false, forceFlagDescription)
	return initCommand
}

// createThemesCommand returns the themes subcommand.
func createThemesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   themesUse,
		Short: themesShortDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			themeNames, themesError := render.GetAvailableThemes()
			if themesError != nil {
				return themesError
			}
			for _, themeName := range themeNames {
				fmt.Println(themeName)
			}
			return nil
		},
	}
}

// runAssemble executes the full pipeline for the given source arguments.
func runAssemble(command *cobra.Command, arguments []string, options documentOptions, applicationLogger *zap.Logger) error {
	applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		ExplicitFilePath: options.configPath,
	})
	if configurationError != nil {
		return configurationError
	}

	effective, effectiveError := resolveEffectiveOptions(command, options, applicationConfiguration.Document)
	if effectiveError != nil {
		return effectiveError
	}

	resolvedPaths, resolveError := resolver.ResolvePaths(arguments, resolver.ResolveOptions{
		Recursive:            effective.recursive,
		IncludeHidden:        effective.includeHidden,
		AdditionalExtensions: effective.additionalExtensions,
		BundleExtensions:     effective.bundleExtensions,
	})
	if resolveError != nil {
		return resolveError
	}
	applicationLogger.Debug("resolved sources", zap.Int("count", len(resolvedPaths)))

	fileDescriptors, fileResolveError := resolver.ResolveFiles(resolvedPaths, effective.bundleExtensions)
	if fileResolveError != nil {
		return fileResolveError
	}

	gatheredDescriptors, gatherError := gatherer.GatherContent(fileDescriptors)
	if gatherError != nil {
		return gatherError
	}

	document, buildError := builder.BuildDocument(gatheredDescriptors, builder.BuildOptions{
		BundleExtensions: effective.bundleExtensions,
		Logger:           applicationLogger,
	})
	if buildError != nil {
		return buildError
	}

	document.ThemeName = effective.theme
	document.UseStyling = effective.useStyling
	document.FormattingOptions = types.FormattingOptions{
		LineNumberMode:       effective.lineNumberMode,
		ShowHeaders:          effective.showHeaders,
		SequenceStyle:        effective.sequenceStyle,
		HeaderStyle:          effective.headerStyle,
		IncludeTOC:           effective.includeTOC,
		AdditionalExtensions: effective.additionalExtensions,
		BundleExtensions:     effective.bundleExtensions,
	}

	formattingContext, contextError := render.NewFormattingContext(document)
	if contextError != nil {
		return contextError
	}

	renderedDocument, renderError := render.RenderDocument(document, formattingContext)
	if renderError != nil {
		return renderError
	}

	fmt.Fprint(os.Stdout, renderedDocument)

	if effective.copyToClipboard {
		if copyError := clipboard.NewService().Copy(renderedDocument); copyError != nil {
			return fmt.Errorf(clipboardCopyFailedFormat, copyError)
		}
	}

	if effective.printSummary || effective.countTokens {
		if summaryError := printDocumentSummary(document, renderedDocument, effective, applicationLogger); summaryError != nil {
			return summaryError
		}
	}

	return nil
}

// effectiveOptions is the fully resolved configuration for one run, with flag
// values layered over configuration file values.
type effectiveOptions struct {
	lineNumberMode       types.LineNumberMode
	showHeaders          bool
	sequenceStyle        types.SequenceStyle
	headerStyle          types.HeaderStyle
	includeTOC           bool
	additionalExtensions []string
	bundleExtensions     []string
	theme                string
	useStyling           bool
	recursive            bool
	includeHidden        bool
	copyToClipboard      bool
	countTokens          bool
	tokenizerModel       string
	printSummary         bool
}

// resolveEffectiveOptions layers explicit flags over configuration file values.
// A flag the user set always wins; otherwise the configuration value applies.
func resolveEffectiveOptions(command *cobra.Command, options documentOptions, documentConfiguration config.DocumentConfiguration) (effectiveOptions, error) {
	flagChanged := command.Flags().Changed

	lineNumberValue := options.lineNumbers
	if !flagChanged(lineNumberFlagName) && documentConfiguration.LineNumbers != "" {
		lineNumberValue = documentConfiguration.LineNumbers
	}
	lineNumberMode, lineNumberError := types.ParseLineNumberMode(strings.ToLower(lineNumberValue))
	if lineNumberError != nil {
		return effectiveOptions{}, lineNumberError
	}

	sequenceValue := options.sequence
	if !flagChanged(sequenceFlagName) && documentConfiguration.Sequence != "" {
		sequenceValue = documentConfiguration.Sequence
	}
	sequenceStyle, sequenceError := types.ParseSequenceStyle(strings.ToLower(sequenceValue))
	if sequenceError != nil {
		return effectiveOptions{}, sequenceError
	}

	headerStyleValue := options.headerStyle
	if !flagChanged(headerStyleFlagName) && documentConfiguration.Style != "" {
		headerStyleValue = documentConfiguration.Style
	}
	headerStyle, headerStyleError := types.ParseHeaderStyle(strings.ToLower(headerStyleValue))
	if headerStyleError != nil {
		return effectiveOptions{}, headerStyleError
	}

	showHeaders := !options.noHeader
	if !flagChanged(noHeaderFlagName) && documentConfiguration.Header != nil {
		showHeaders = *documentConfiguration.Header
	}

	includeTOC := resolveBoolOption(flagChanged(tocFlagName), options.includeTOC, documentConfiguration.TOC)
	recursive := resolveBoolOption(flagChanged(recursiveFlagName), options.recursive, documentConfiguration.Recursive)
	includeHidden := resolveBoolOption(flagChanged(hiddenFlagName), options.includeHidden, documentConfiguration.Hidden)
	copyToClipboard := resolveBoolOption(flagChanged(copyFlagName), options.copyToClipboard, documentConfiguration.Clipboard)
	countTokens := resolveBoolOption(flagChanged(tokensFlagName), options.countTokens, documentConfiguration.Tokens.Enabled)
	printSummary := resolveBoolOption(flagChanged(summaryFlagName), options.printSummary, documentConfiguration.Summary)

	additionalExtensions := options.additionalExtensions
	if !flagChanged(extensionsFlagName) && len(documentConfiguration.Extensions) > 0 {
		additionalExtensions = documentConfiguration.Extensions
	}
	bundleExtensions := options.bundleExtensions
	if !flagChanged(bundleExtensionsFlagName) && len(documentConfiguration.BundleExtensions) > 0 {
		bundleExtensions = documentConfiguration.BundleExtensions
	}

	theme := options.theme
	if !flagChanged(themeFlagName) && documentConfiguration.Theme != "" {
		theme = documentConfiguration.Theme
	}

	tokenizerModel := options.tokenizerModel
	if !flagChanged(modelFlagName) && documentConfiguration.Tokens.Model != "" {
		tokenizerModel = documentConfiguration.Tokens.Model
	}

	useStyling := term.IsTerminal(int(os.Stdout.Fd()))
	if options.noColor || (documentConfiguration.Styling != nil && !*documentConfiguration.Styling) {
		useStyling = false
	}

	return effectiveOptions{
		lineNumberMode:       lineNumberMode,
		showHeaders:          showHeaders,
		sequenceStyle:        sequenceStyle,
		headerStyle:          headerStyle,
		includeTOC:           includeTOC,
		additionalExtensions: additionalExtensions,
		bundleExtensions:     bundleExtensions,
		theme:                theme,
		useStyling:           useStyling,
		recursive:            recursive,
		includeHidden:        includeHidden,
		copyToClipboard:      copyToClipboard,
		countTokens:          countTokens,
		tokenizerModel:       tokenizerModel,
		printSummary:         printSummary,
	}, nil
}

func resolveBoolOption(flagWasSet bool, flagValue bool, configurationValue *bool) bool {
	if flagWasSet || configurationValue == nil {
		return flagValue
	}
	return *configurationValue
}

// printDocumentSummary writes file, line, byte, and optional token counts to
// stderr so the document itself stays clean on stdout.
func printDocumentSummary(document *types.Document, renderedDocument string, effective effectiveOptions, applicationLogger *zap.Logger) error {
	sourceFiles := make(map[string]struct{})
	for _, contentItem := range document.ContentItems {
		effectiveSource := contentItem.OriginalSource
		if effectiveSource == "" {
			effectiveSource = contentItem.Filepath
		}
		sourceFiles[effectiveSource] = struct{}{}
	}
	lineCount := strings.Count(renderedDocument, "\n")

	fmt.Fprintf(os.Stderr, summaryLineFormat, len(sourceFiles), lineCount, len(renderedDocument))

	if !effective.countTokens {
		return nil
	}

	tokenCounter, resolvedModel, counterError := tokenizer.NewCounter(tokenizer.Config{Model: effective.tokenizerModel})
	if counterError != nil {
		return counterError
	}

	fragmentCounts := make([]int, len(document.ContentItems))
	var countGroup errgroup.Group
	for contentIndex, contentItem := range document.ContentItems {
		contentIndex, contentItem := contentIndex, contentItem
		countGroup.Go(func() error {
			fragmentTokens, countError := tokenCounter.CountString(contentItem.Content)
			if countError != nil {
				return countError
			}
			fragmentCounts[contentIndex] = fragmentTokens
			return nil
		})
	}
	if countError := countGroup.Wait(); countError != nil {
		applicationLogger.Warn(warningTokenCountFailedEntry, zap.Error(countError))
		return nil
	}

	totalTokens := 0
	for _, fragmentTokens := range fragmentCounts {
		totalTokens += fragmentTokens
	}
	fmt.Fprintf(os.Stderr, summaryTokenLineFormat, totalTokens, resolvedModel)
	return nil
}
