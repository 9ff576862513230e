package secret

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const settingsClientIDKey = "client-id"

// FileStore keeps the client identifier in a TOML settings file. Unrelated
// keys already present in the file are preserved on write.
type FileStore struct {
	path string
}

// NewFileStore constructs a file-backed store at the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// ClientID returns the stored client identifier, or "" when the settings file
// does not exist or has no client id entry.
func (s *FileStore) ClientID() (string, error) {
	doc, err := s.read()
	if err != nil {
		return "", err
	}
	if value, ok := doc[settingsClientIDKey].(string); ok {
		return strings.TrimSpace(value), nil
	}
	return "", nil
}

// SetClientID writes the client identifier into the settings file, creating
// the file and its directory when missing.
func (s *FileStore) SetClientID(clientID string) error {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return fmt.Errorf("client id is empty")
	}

	doc, err := s.read()
	if err != nil {
		return err
	}
	doc[settingsClientIDKey] = clientID
	return s.write(doc)
}

// DeleteClientID removes the client identifier entry from the settings file.
// A missing file or entry is not an error.
func (s *FileStore) DeleteClientID() error {
	doc, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := doc[settingsClientIDKey]; !ok {
		return nil
	}
	delete(doc, settingsClientIDKey)
	return s.write(doc)
}

func (s *FileStore) read() (map[string]any, error) {
	doc := make(map[string]any)
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return doc, nil
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}
	if err = toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", s.path, err)
	}
	return doc, nil
}

func (s *FileStore) write(doc map[string]any) error {
	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err = os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	if err = os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}
