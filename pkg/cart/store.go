package cart

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore persists the cart as a JSON file so it survives restarts.
type FileStore struct {
	Path string
}

func (s *FileStore) Load() ([]Item, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		// A corrupt cart file is discarded rather than bricking startup.
		return nil, nil
	}
	return items, nil
}

func (s *FileStore) Save(items []Item) error {
	if items == nil {
		items = []Item{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.Path, data, 0o644)
}
