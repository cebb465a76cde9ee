package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ffrraannccoo/Tejedor-de-subtes/game/engine"
	"github.com/ffrraannccoo/Tejedor-de-subtes/game/service"
)

var (
	ErrLevelNotFound = errors.New("level not found")
	ErrInvalidLevel  = errors.New("invalid level")
)

// Manager handles level configuration loading and caching
type Manager struct {
	levelsDir    string
	defaultLevel *engine.LevelConfig
	levels       map[string]*engine.LevelConfig
	mu           sync.RWMutex
}

// NewManager creates a new level manager over a directory of level JSON
// files
func NewManager(levelsDir string) (*Manager, error) {
	if _, err := os.Stat(levelsDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("levels directory does not exist: %s", levelsDir)
	}

	m := &Manager{
		levelsDir: levelsDir,
		levels:    make(map[string]*engine.LevelConfig),
	}

	if err := m.loadDefaultLevel(); err != nil {
		return nil, fmt.Errorf("failed to load default level: %w", err)
	}

	return m, nil
}

// loadDefaultLevel picks "centro" from the directory when present,
// otherwise the built-in level
func (m *Manager) loadDefaultLevel() error {
	if level, err := m.LoadLevel("centro"); err == nil {
		m.defaultLevel = level
		return nil
	}
	m.defaultLevel = engine.DefaultLevel()
	return nil
}

// LoadLevel loads a level by ID (filename without extension)
func (m *Manager) LoadLevel(name string) (*engine.LevelConfig, error) {
	m.mu.RLock()
	if level, exists := m.levels[name]; exists {
		m.mu.RUnlock()
		return level, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring the write lock
	if level, exists := m.levels[name]; exists {
		return level, nil
	}

	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename = name + ".json"
	}

	levelPath := filepath.Join(m.levelsDir, filename)

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
	entries, err := os.ReadDir(m.levelsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read levels directory: %w", err)
	}

	var levels []*service.LevelInfo

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ".json")

		level, err := m.LoadLevel(name)
		if err != nil {
			// Skip unreadable or invalid files but keep listing the rest
			continue
		}

		levels = append(levels, &service.LevelInfo{
			Filename:     entry.Name(),
			LevelID:      name,
			Name:         level.Name,
			Description:  level.Description,
			Width:        level.Width,
			Height:       level.Height,
			StationCount: len(level.Stations),
			RouteStops:   len(level.RouteRequest),
		})
	}

	return levels, nil
}

// GetDefault returns the default level configuration
func (m *Manager) GetDefault() *engine.LevelConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultLevel
}

// SaveLevel validates and writes a level configuration to the levels
// directory
func (m *Manager) SaveLevel(name string, level *engine.LevelConfig) error {
	if err := engine.ValidateLevelConfig(level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLevel, err)
	}

	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename = name + ".json"
	}

	data, err := json.MarshalIndent(level, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal level: %w", err)
	}

	levelPath := filepath.Join(m.levelsDir, filename)
	if err := os.WriteFile(levelPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write level file: %w", err)
	}

	m.mu.Lock()
	m.levels[strings.TrimSuffix(filename, ".json")] = level
	m.mu.Unlock()

	return nil
}
