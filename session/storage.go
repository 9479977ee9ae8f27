package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNoTokens is returned by [TokenStorage.Load] when no token pair has been
// persisted.
var ErrNoTokens = errors.New("no persisted tokens")

// TokenStorage is the durable key-value boundary for exactly two string
// values: the access and refresh tokens. Implementations must make Clear
// idempotent and must not persist anything else.
type TokenStorage interface {
	Load(ctx context.Context) (TokenPair, error)
	Save(ctx context.Context, pair TokenPair) error
	Clear(ctx context.Context) error
}

// FileStorage persists the token pair as a JSON file with owner-only
// permissions. Writes go through a temp file + rename so a crash mid-write
// never leaves a truncated credential file.
type FileStorage struct {
	path string
}

// NewFileStorage creates a [FileStorage] rooted at path. The parent
// directory is created on first Save.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// DefaultFilePath returns the conventional credential location under the
// user's configuration directory.
func DefaultFilePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(dir, "aula", "credentials.json"), nil
}

// Load reads the persisted pair. A missing file maps to [ErrNoTokens].
func (f *FileStorage) Load(_ context.Context) (TokenPair, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return TokenPair{}, ErrNoTokens
		}
		return TokenPair{}, fmt.Errorf("read credential file: %w", err)
	}

	var pair TokenPair
	if err := json.Unmarshal(data, &pair); err != nil {
		return TokenPair{}, fmt.Errorf("decode credential file: %w", err)
	}
	if pair.Empty() {
		return TokenPair{}, ErrNoTokens
	}
	return pair, nil
}

// Save atomically replaces the credential file.
func (f *FileStorage) Save(_ context.Context, pair TokenPair) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create credential dir: %w", err)
	}

	data, err := json.Marshal(pair)
	if err != nil {
		return fmt.Errorf("encode credential file: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write credential file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace credential file: %w", err)
	}
	return nil
}

// Clear removes the credential file. Removing an already-absent file is not
// an error.
func (f *FileStorage) Clear(_ context.Context) error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove credential file: %w", err)
	}
	return nil
}
