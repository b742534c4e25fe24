package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/nanodoc/internal/utils"
)

func TestInitializeConfigurationWritesLocalFile(t *testing.T) {
	workingDirectory := t.TempDir()
	homeDirectory := t.TempDir()
	t.Setenv("HOME", homeDirectory)
	t.Setenv("USERPROFILE", homeDirectory)

	writtenPath, initializeError := InitializeConfiguration(InitOptions{WorkingDirectory: workingDirectory})
	if initializeError != nil {
		t.Fatalf("InitializeConfiguration error: %v", initializeError)
	}
	expectedPath := filepath.Join(workingDirectory, utils.ConfigFileName)
	if writtenPath != expectedPath {
		t.Errorf("written path = %q, want %q", writtenPath, expectedPath)
	}

	writtenContent, readError := os.ReadFile(writtenPath)
	if readError != nil {
		t.Fatalf("read written configuration: %v", readError)
	}
	if !strings.Contains(string(writtenContent), "document:") {
		t.Errorf("written configuration missing document section: %q", writtenContent)
	}

	// The template must load cleanly through the regular path.
	loadedConfiguration, loadError := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDirectory})
	if loadError != nil {
		t.Fatalf("LoadApplicationConfiguration on template: %v", loadError)
	}
	if loadedConfiguration.Document.Theme != "classic" {
		t.Errorf("template theme = %q, want classic", loadedConfiguration.Document.Theme)
	}
}

func TestInitializeConfigurationRefusesOverwrite(t *testing.T) {
	workingDirectory := t.TempDir()

	if _, firstError := InitializeConfiguration(InitOptions{WorkingDirectory: workingDirectory}); firstError != nil {
		t.Fatalf("first InitializeConfiguration error: %v", firstError)
	}
	if _, secondError := InitializeConfiguration(InitOptions{WorkingDirectory: workingDirectory}); secondError == nil {
		t.Fatalf("second InitializeConfiguration succeeded without --force")
	}
	if _, forcedError := InitializeConfiguration(InitOptions{WorkingDirectory: workingDirectory, Force: true}); forcedError != nil {
		t.Fatalf("forced InitializeConfiguration error: %v", forcedError)
	}
}

func TestInitializeConfigurationGlobal(t *testing.T) {
	homeDirectory := t.TempDir()
	t.Setenv("HOME", homeDirectory)
	t.Setenv("USERPROFILE", homeDirectory)

	writtenPath, initializeError := InitializeConfiguration(InitOptions{Global: true})
	if initializeError != nil {
		t.Fatalf("InitializeConfiguration error: %v", initializeError)
	}
	expectedPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.ConfigFileName)
	if writtenPath != expectedPath {
		t.Errorf("written path = %q, want %q", writtenPath, expectedPath)
	}
	if _, statError := os.Stat(writtenPath); statError != nil {
		t.Errorf("global configuration not written: %v", statError)
	}
}
