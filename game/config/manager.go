package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sokoban-go/sokoban/game/engine"
	"github.com/sokoban-go/sokoban/game/service"
)

var (
	ErrLevelNotFound = errors.New("level not found")
	ErrInvalidLevel  = errors.New("invalid level")
)

// Manager handles level loading and caching
type Manager struct {
	levelDir     string
	defaultLevel *engine.LevelConfig
	levels       map[string]*engine.LevelConfig
	mu           sync.RWMutex
}

// NewManager creates a new level manager
func NewManager(levelDir string) (*Manager, error) {
	if _, err := os.Stat(levelDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("level directory does not exist: %s", levelDir)
	}

	m := &Manager{
		levelDir: levelDir,
		levels:   make(map[string]*engine.LevelConfig),
	}

	if err := m.loadDefaultLevel(); err != nil {
		return nil, fmt.Errorf("failed to load default level: %w", err)
	}

	return m, nil
}

// LoadLevel loads a level by name
func (m *Manager) LoadLevel(name string) (*engine.LevelConfig, error) {
	m.mu.RLock()
	// Check cache first
	if level, exists := m.levels[name]; exists {
		m.mu.RUnlock()
		return level, nil
	}
	m.mu.RUnlock()

	// Load from file
	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if level, exists := m.levels[name]; exists {
		return level, nil
	}

	// Add .json extension if not present
	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename = name + ".json"
	}

	levelPath := filepath.Join(m.levelDir, filename)

	data, err := os.ReadFile(levelPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrLevelNotFound
		}
		return nil, fmt.Errorf("failed to read level file: %w", err)
	}

	var level engine.LevelConfig
	if err := json.Unmarshal(data, &level); err != nil {
		return nil, fmt.Errorf("failed to parse level: %w", err)
	}

	if err := engine.ValidateLevelConfig(&level); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLevel, err)
	}

	m.levels[name] = &level
	return &level, nil
}

// ListLevels returns information about all available levels
func (m *Manager) ListLevels() ([]*service.LevelInfo, error) {
	entries, err := os.ReadDir(m.levelDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read level directory: %w", err)
	}

	var levels []*service.LevelInfo

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ".json")

		level, err := m.LoadLevel(name)
		if err != nil {
			// Skip invalid levels
			continue
		}

		boxes, goals := countBoxesAndGoals(level)
		levels = append(levels, &service.LevelInfo{
			Filename:    entry.Name(),
			LevelID:     name, // This is the identifier to use for session creation
			Name:        level.Name,
			Description: level.Description,
			Width:       level.Width,
			Height:      level.Height,
			Boxes:       boxes,
			Goals:       goals,
		})
	}

	return levels, nil
}

// GetDefault returns the default level
func (m *Manager) GetDefault() *engine.LevelConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultLevel
}

// SetDefault sets the default level by name
func (m *Manager) SetDefault(name string) error {
	level, err := m.LoadLevel(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultLevel = level
	return nil
}

// RefreshCache reloads all cached levels from disk
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.levels = make(map[string]*engine.LevelConfig)
	m.mu.Unlock()

	// loadDefaultLevel takes the lock itself via LoadLevel
	return m.loadDefaultLevel()
}

// loadDefaultLevel loads the default level
func (m *Manager) loadDefaultLevel() error {
	// Try to load classic.json as default
	level, err := m.LoadLevel("classic")
	if err != nil {
		// Try to load the first available level
		levels, listErr := m.ListLevels()
		if listErr != nil || len(levels) == 0 {
			// Fall back to the built-in level
			level = engine.DefaultLevelConfig()
		} else {
			level, err = m.LoadLevel(strings.TrimSuffix(levels[0].Filename, ".json"))
			if err != nil {
				level = engine.DefaultLevelConfig()
			}
		}
	}

	m.mu.Lock()
	m.defaultLevel = level
	m.mu.Unlock()
	return nil
}

// SaveLevel saves a level to disk
func (m *Manager) SaveLevel(name string, level *engine.LevelConfig) error {
	if err := engine.ValidateLevelConfig(level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLevel, err)
	}

	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename = name + ".json"
	}

	levelPath := filepath.Join(m.levelDir, filename)

	data, err := json.MarshalIndent(level, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal level: %w", err)
	}

	if err := os.WriteFile(levelPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write level file: %w", err)
	}

	m.mu.Lock()
	m.levels[name] = level
	m.mu.Unlock()

	return nil
}

// countBoxesAndGoals tallies the object and tile layers for level listings
func countBoxesAndGoals(level *engine.LevelConfig) (boxes, goals int) {
	for _, row := range level.Objects {
		boxes += strings.Count(row, string(engine.ObjectBoxChar))
	}
	for _, row := range level.Tiles {
		goals += strings.Count(row, string(engine.TileGoalChar))
	}
	return boxes, goals
}
