package types

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced by the pipeline.
var (
	// ErrFileNotFound is returned when a path argument or underlying file is missing.
	ErrFileNotFound = errors.New("file not found")

	// ErrNotAFile is returned when a path exists but a regular file was expected.
	ErrNotAFile = errors.New("not a file")

	// ErrInvalidRange is returned for malformed or out-of-order range specifiers.
	ErrInvalidRange = errors.New("invalid line range")

	// ErrCircularDependency is returned when bundle expansion meets an ancestor bundle again.
	ErrCircularDependency = errors.New("circular dependency detected")

	// ErrEmptySource is returned when no source arguments are provided.
	ErrEmptySource = errors.New("no source files provided")

	// ErrInvalidTheme is returned when a theme cannot be loaded.
	ErrInvalidTheme = errors.New("invalid or missing theme")
)

// FileError ties an error to the path that produced it.
type FileError struct {
	Path string
	Err  error
}

func (fileError *FileError) Error() string {
	return fmt.Sprintf("%s: %v", fileError.Path, fileError.Err)
}

func (fileError *FileError) Unwrap() error {
	return fileError.Err
}

// RangeError reports a malformed range specifier together with the offending input.
type RangeError struct {
	Input string
	Err   error
}

func (rangeError *RangeError) Error() string {
	return fmt.Sprintf("invalid range %q: %v", rangeError.Input, rangeError.Err)
}

func (rangeError *RangeError) Unwrap() error {
	return rangeError.Err
}

// CircularDependencyError identifies the bundle that closed an inclusion cycle
// and the bundle that included it.
type CircularDependencyError struct {
	Path   string
	Parent string
}

func (circularError *CircularDependencyError) Error() string {
	if circularError.Parent == "" {
		return fmt.Sprintf("circular dependency detected: %s", circularError.Path)
	}
	return fmt.Sprintf("circular dependency detected: %s included from %s", circularError.Path, circularError.Parent)
}

func (circularError *CircularDependencyError) Unwrap() error {
	return ErrCircularDependency
}
