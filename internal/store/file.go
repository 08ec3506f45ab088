package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/ahrav/go-featurize/internal/domain"
)

// FileStore persists fitted state as a single JSON file. Save writes to a
// temporary file in the target directory and renames it into place, so a
// concurrent reader sees either the old state or the new one, never a
// truncated mixture.
type FileStore struct {
	path string
	log  zerolog.Logger
}

// NewFileStore creates a file-backed store publishing at path.
func NewFileStore(path string, log zerolog.Logger) *FileStore {
	return &FileStore{path: path, log: log.With().Str("component", "file_store").Logger()}
}

// Path returns the publish location.
func (s *FileStore) Path() string { return s.path }

// Save atomically publishes the state at the configured path.
func (s *FileStore) Save(_ context.Context, state *domain.FittedState) error {
	data, err := encodeState(state)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".fitted-state-*.json")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp state file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync temp state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp state file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("publish state file: %w", err)
	}

	s.log.Debug().Str("path", s.path).Int("bytes", len(data)).Msg("fitted state saved")
	return nil
}

// Load reads the published state. A missing file maps to
// domain.ErrStateNotFound; anything unparseable maps to the corrupt or
// version errors from decodeState.
func (s *FileStore) Load(_ context.Context) (*domain.FittedState, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrStateNotFound, s.path)
		}
		return nil, fmt.Errorf("read state file: %w", err)
	}

	state, err := decodeState(data)
	if err != nil {
		return nil, err
	}

	s.log.Debug().Str("path", s.path).Int("features", state.Dim()).Msg("fitted state loaded")
	return state, nil
}
