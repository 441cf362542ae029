package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/nuvora-hq/crm-cli/internal/domain"
	"github.com/nuvora-hq/crm-cli/internal/ports"
)

const (
	storeDirMode    = 0o700
	sessionFileMode = 0o600
	tempFilePattern = ".session-*.toml.tmp"
)

// sessionFile is the on-disk shape. The token is the only value the
// process persists across restarts.
type sessionFile struct {
	Token string `toml:"token"`
}

// Store keeps the session token in a TOML file under the config
// directory, written atomically via a temp file rename.
type Store struct {
	path string
	mu   sync.RWMutex
}

var _ ports.TokenStore = (*Store)(nil)

func NewStore(path string) *Store {
	return &Store{path: filepath.Clean(path)}
}

func (s *Store) Load(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", domain.ErrTokenNotFound
		}
		return "", fmt.Errorf("read session file: %w", err)
	}

	var file sessionFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return "", fmt.Errorf("decode session file: %w", err)
	}

	token := strings.TrimSpace(file.Token)
	if token == "" {
		return "", domain.ErrTokenNotFound
	}

	return token, nil
}

func (s *Store) Save(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(token) == "" {
		return errors.New("session token is empty")
	}

	encoded, err := toml.Marshal(sessionFile{Token: token})
	if err != nil {
		return fmt.Errorf("encode session file: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, storeDirMode); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(encoded); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("write temp session file: %w", err)
	}
	if err := temp.Chmod(sessionFileMode); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("chmod temp session file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("close temp session file: %w", err)
	}

	if err := os.Rename(tempPath, s.path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("replace session file: %w", err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete session file: %w", err)
	}

	return nil
}
