package builder

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/nanodoc/internal/gatherer"
	"github.com/arthur-debert/nanodoc/internal/resolver"
	"github.com/arthur-debert/nanodoc/internal/types"
)

// writeBundleFixture writes a file and returns its path.
func writeBundleFixture(t *testing.T, baseDirectory string, fileName string, content string) string {
	t.Helper()
	fullPath := filepath.Join(baseDirectory, fileName)
	if writeError := os.WriteFile(fullPath, []byte(content), 0o644); writeError != nil {
		t.Fatalf("write %s: %v", fileName, writeError)
	}
	return fullPath
}

// loadDescriptors resolves and gathers the given paths as the pipeline would.
func loadDescriptors(t *testing.T, paths []string) []types.FileContent {
	t.Helper()
	resolved, resolveError := resolver.ResolveFiles(paths, nil)
	if resolveError != nil {
		t.Fatalf("ResolveFiles: %v", resolveError)
	}
	gathered, gatherError := gatherer.GatherContent(resolved)
	if gatherError != nil {
		t.Fatalf("GatherContent: %v", gatherError)
	}
	return gathered
}

func TestBuildDocumentPassesThroughPlainFiles(t *testing.T) {
	baseDirectory := t.TempDir()
	notesPath := writeBundleFixture(t, baseDirectory, "notes.txt", "alpha\nbeta\n")

	document, buildError := BuildDocument(loadDescriptors(t, []string{notesPath}), BuildOptions{})
	if buildError != nil {
		t.Fatalf("BuildDocument unexpected error: %v", buildError)
	}
	if len(document.ContentItems) != 1 {
		t.Fatalf("BuildDocument produced %d items, want 1", len(document.ContentItems))
	}
	contentItem := document.ContentItems[0]
	if contentItem.Filepath != notesPath || contentItem.Content != "alpha\nbeta\n" {
		t.Errorf("passthrough item = %+v", contentItem)
	}
	if contentItem.OriginalSource != "" {
		t.Errorf("passthrough item carries original source %q", contentItem.OriginalSource)
	}
}

func TestBuildDocumentExpandsDirectivesInOrder(t *testing.T) {
	baseDirectory := t.TempDir()
	alphaPath := writeBundleFixture(t, baseDirectory, "a.txt", "alpha\n")
	writeBundleFixture(t, baseDirectory, "b.txt", "beta\n")
	bundlePath := writeBundleFixture(t, baseDirectory, "main.bundle",
		"intro line\n@include a.txt\nmiddle literal\n@inline b.txt\nclosing line\n")

	document, buildError := BuildDocument(loadDescriptors(t, []string{bundlePath}), BuildOptions{})
	if buildError != nil {
		t.Fatalf("BuildDocument unexpected error: %v", buildError)
	}
	if len(document.ContentItems) != 5 {
		t.Fatalf("BuildDocument produced %d items, want 5: %+v", len(document.ContentItems), document.ContentItems)
	}

	expectedItems := []struct {
		filepath       string
		content        string
		originalSource string
	}{
		{filepath: bundlePath, content: "intro line\n", originalSource: bundlePath},
		{filepath: alphaPath, content: "alpha\n", originalSource: ""},
		{filepath: bundlePath, content: "middle literal\n", originalSource: bundlePath},
		{filepath: filepath.Join(baseDirectory, "b.txt"), content: "beta\n", originalSource: bundlePath},
		{filepath: bundlePath, content: "closing line\n", originalSource: bundlePath},
	}

	for itemIndex, expectedItem := range expectedItems {
		actualItem := document.ContentItems[itemIndex]
		if actualItem.Filepath != expectedItem.filepath {
			t.Errorf("item %d filepath = %q, want %q", itemIndex, actualItem.Filepath, expectedItem.filepath)
		}
		if actualItem.Content != expectedItem.content {
			t.Errorf("item %d content = %q, want %q", itemIndex, actualItem.Content, expectedItem.content)
		}
		if actualItem.OriginalSource != expectedItem.originalSource {
			t.Errorf("item %d original source = %q, want %q", itemIndex, actualItem.OriginalSource, expectedItem.originalSource)
		}
	}
}

func TestBuildDocumentExpandsNestedBundles(t *testing.T) {
	baseDirectory := t.TempDir()
	writeBundleFixture(t, baseDirectory, "inner.bundle", "nested literal\n")
	outerPath := writeBundleFixture(t, baseDirectory, "outer.bundle", "@include inner.bundle\n")

	document, buildError := BuildDocument(loadDescriptors(t, []string{outerPath}), BuildOptions{})
	if buildError != nil {
		t.Fatalf("BuildDocument unexpected error: %v", buildError)
	}
	if len(document.ContentItems) != 1 {
		t.Fatalf("BuildDocument produced %d items, want 1", len(document.ContentItems))
	}
	if document.ContentItems[0].Content != "nested literal\n" {
		t.Errorf("nested content = %q", document.ContentItems[0].Content)
	}
}

func TestBuildDocumentAllowsRepeatedSiblingInclusion(t *testing.T) {
	baseDirectory := t.TempDir()
	writeBundleFixture(t, baseDirectory, "inner.bundle", "shared section\n")
	outerPath := writeBundleFixture(t, baseDirectory, "outer.bundle",
		"@include inner.bundle\n@include inner.bundle\n")

	document, buildError := BuildDocument(loadDescriptors(t, []string{outerPath}), BuildOptions{})
	if buildError != nil {
		t.Fatalf("BuildDocument unexpected error: %v", buildError)
	}
	if len(document.ContentItems) != 2 {
		t.Fatalf("BuildDocument produced %d items, want 2", len(document.ContentItems))
	}
}

func TestBuildDocumentDetectsCircularDependency(t *testing.T) {
	baseDirectory := t.TempDir()
	firstPath := writeBundleFixture(t, baseDirectory, "a.bundle", "@include b.bundle\n")
	secondPath := writeBundleFixture(t, baseDirectory, "b.bundle", "@include a.bundle\n")

	_, buildError := BuildDocument(loadDescriptors(t, []string{firstPath}), BuildOptions{})
	if !errors.Is(buildError, types.ErrCircularDependency) {
		t.Fatalf("BuildDocument error = %v, want ErrCircularDependency", buildError)
	}
	if !strings.Contains(buildError.Error(), firstPath) || !strings.Contains(buildError.Error(), secondPath) {
		t.Errorf("circular dependency message %q does not name both bundles", buildError.Error())
	}
}

func TestBuildDocumentSubstitutesMissingTargets(t *testing.T) {
	baseDirectory := t.TempDir()
	bundlePath := writeBundleFixture(t, baseDirectory, "main.bundle",
		"before\n@include gone.txt\n@inline also-gone.txt\nafter\n")

	document, buildError := BuildDocument(loadDescriptors(t, []string{bundlePath}), BuildOptions{})
	if buildError != nil {
		t.Fatalf("BuildDocument unexpected error: %v", buildError)
	}
	if len(document.ContentItems) != 4 {
		t.Fatalf("BuildDocument produced %d items, want 4: %+v", len(document.ContentItems), document.ContentItems)
	}

	includeFragment := document.ContentItems[1]
	if includeFragment.Content != "ERROR: Could not find included file: gone.txt\n" {
		t.Errorf("include fragment = %q", includeFragment.Content)
	}
	inlineFragment := document.ContentItems[2]
	if inlineFragment.Content != "ERROR: Could not find inlined file: also-gone.txt\n" {
		t.Errorf("inline fragment = %q", inlineFragment.Content)
	}
	for _, errorFragment := range []types.FileContent{includeFragment, inlineFragment} {
		if errorFragment.OriginalSource != bundlePath {
			t.Errorf("error fragment original source = %q, want %q", errorFragment.OriginalSource, bundlePath)
		}
	}
}
