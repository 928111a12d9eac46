package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConstants(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if AppName == "" {
		t.Error("AppName should not be empty")
	}

	expectedAppName := "Sokoban Puzzle Server"
	if AppName != expectedAppName {
		t.Errorf("Expected app name %s, got %s", expectedAppName, AppName)
	}
}

func TestGetLevelDirDefault(t *testing.T) {
	t.Setenv("LEVEL_DIR", "")
	if dir := getLevelDirDefault(); dir != "levels" {
		t.Errorf("Expected default 'levels', got '%s'", dir)
	}

	t.Setenv("LEVEL_DIR", "/tmp/custom-levels")
	if dir := getLevelDirDefault(); dir != "/tmp/custom-levels" {
		t.Errorf("Expected '/tmp/custom-levels', got '%s'", dir)
	}
}

func TestInitializeServices(t *testing.T) {
	tmpDir := t.TempDir()

	level := `{
		"name": "classic",
		"description": "Test level",
		"width": 6,
		"height": 5,
		"tiles": [
			"######",
			"#....#",
			"#.O..#",
			"#....#",
			"######"
		],
		"objects": [
			"......",
			".@....",
			"...B..",
			"......",
			"......"
		]
	}`
	if err := os.WriteFile(filepath.Join(tmpDir, "classic.json"), []byte(level), 0644); err != nil {
		t.Fatalf("Failed to write test level: %v", err)
	}

	gameService, sessionManager, err := initializeServices(tmpDir)
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}

	if gameService == nil {
		t.Fatal("Expected game service to be initialized")
	}
	if sessionManager == nil {
		t.Fatal("Expected session manager to be initialized")
	}
}

func TestInitializeServices_InvalidLevelDir(t *testing.T) {
	_, _, err := initializeServices("/non/existent/path")
	if err == nil {
		t.Error("Expected error for non-existent level directory")
	}
}

func TestLoadPlayLevel(t *testing.T) {
	tmpDir := t.TempDir()

	level := `{
		"name": "easy",
		"description": "Test level",
		"width": 6,
		"height": 5,
		"tiles": [
			"######",
			"#....#",
			"#.O..#",
			"#....#",
			"######"
		],
		"objects": [
			"......",
			".@....",
			"...B..",
			"......",
			"......"
		]
	}`
	if err := os.WriteFile(filepath.Join(tmpDir, "easy.json"), []byte(level), 0644); err != nil {
		t.Fatalf("Failed to write test level: %v", err)
	}

	t.Run("named level", func(t *testing.T) {
		loaded, err := loadPlayLevel(tmpDir, "easy")
		if err != nil {
			t.Fatalf("Failed to load level: %v", err)
		}
		if loaded.Name != "easy" {
			t.Errorf("Expected level 'easy', got '%s'", loaded.Name)
		}
	})

	t.Run("directory default", func(t *testing.T) {
		loaded, err := loadPlayLevel(tmpDir, "")
		if err != nil {
			t.Fatalf("Failed to load default level: %v", err)
		}
		if loaded == nil {
			t.Fatal("Expected a level")
		}
	})

	t.Run("missing directory falls back to built-in", func(t *testing.T) {
		loaded, err := loadPlayLevel("/non/existent/path", "")
		if err != nil {
			t.Fatalf("Expected built-in fallback, got error: %v", err)
		}
		if loaded.Name != "classic" {
			t.Errorf("Expected built-in 'classic' level, got '%s'", loaded.Name)
		}
	})

	t.Run("missing directory with named level fails", func(t *testing.T) {
		if _, err := loadPlayLevel("/non/existent/path", "easy"); err == nil {
			t.Error("Expected error for named level without level directory")
		}
	})
}

// Note: We can't easily test main(), runHTTPServer(), and runStdioMCPWithInternalServer()
// without significant mocking or refactoring, as they start servers and block.
// These functions would be better tested in integration tests that start actual servers
// and test their endpoints.
