package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ffrraannccoo/Tejedor-de-subtes/game/engine"
	"github.com/ffrraannccoo/Tejedor-de-subtes/game/service"
)

// FilePersistence implements SessionPersistence using file system storage
type FilePersistence struct {
	sessionsDir  string
	levelManager service.LevelManager
}

// NewFilePersistence creates a new file-based session persistence layer
func NewFilePersistence(sessionsDir string, levelManager service.LevelManager) (*FilePersistence, error) {
	if err := os.MkdirAll(sessionsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create sessions directory: %w", err)
	}

	return &FilePersistence{
		sessionsDir:  sessionsDir,
		levelManager: levelManager,
	}, nil
}

// Save persists a session's drawn tracks to a JSON file
func (fp *FilePersistence) Save(session *service.Session) error {
	if session == nil {
		return fmt.Errorf("session cannot be nil")
	}

	levelID, err := fp.getLevelIDFromName(session.Level.Name)
	if err != nil {
		return fmt.Errorf("failed to get level ID: %w", err)
	}

	data := PersistedSessionData{
		ID:             session.ID,
		LevelID:        levelID,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		Edges:          session.Engine.Graph().Edges(),
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	filePath := fp.getFilePath(session.ID)
	if err := os.WriteFile(filePath, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// Load retrieves a session from a JSON file and rebuilds its engine
func (fp *FilePersistence) Load(id string) (*service.Session, error) {
	filePath := fp.getFilePath(id)

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, ErrSessionNotFound
	}

	jsonData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var data PersistedSessionData
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session data: %w", err)
	}

	level, err := fp.levelManager.LoadLevel(data.LevelID)
	if err != nil {
		return nil, fmt.Errorf("failed to load level '%s': %w", data.LevelID, err)
	}

	eng, err := engine.NewEngine(level)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	if err := eng.SetEdges(data.Edges); err != nil {
		return nil, fmt.Errorf("failed to restore tracks: %w", err)
	}

	return &service.Session{
		ID:             data.ID,
		Engine:         eng,
		Level:          level,
		CreatedAt:      data.CreatedAt,
		LastAccessedAt: data.LastAccessedAt,
	}, nil
}

// Delete removes a session file
func (fp *FilePersistence) Delete(id string) error {
	if !fp.Exists(id) {
		return ErrSessionNotFound
	}

	if err := os.Remove(fp.getFilePath(id)); err != nil {
		return fmt.Errorf("failed to remove session file: %w", err)
	}

	return nil
}

// ListAll returns all persisted session IDs
func (fp *FilePersistence) ListAll() ([]string, error) {
	entries, err := os.ReadDir(fp.sessionsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read sessions directory: %w", err)
	}

	var sessionIDs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if strings.HasSuffix(name, ".json") {
			sessionIDs = append(sessionIDs, strings.TrimSuffix(name, ".json"))
		}
	}

	return sessionIDs, nil
}

// Exists checks if a session file exists
func (fp *FilePersistence) Exists(id string) bool {
	_, err := os.Stat(fp.getFilePath(id))
	return err == nil
}

// getFilePath returns the full file path for a session ID
func (fp *FilePersistence) getFilePath(id string) string {
	return filepath.Join(fp.sessionsDir, fmt.Sprintf("%s.json", id))
}

// getLevelIDFromName returns the level ID (filename without extension)
// from a display name
func (fp *FilePersistence) getLevelIDFromName(displayName string) (string, error) {
	levels, err := fp.levelManager.ListLevels()
	if err != nil {
		return "", fmt.Errorf("failed to list levels: %w", err)
	}

	for _, level := range levels {
		if level.Name == displayName {
			return level.LevelID, nil
		}
	}

	// If not found, assume the display name is already the level ID
	return displayName, nil
}
