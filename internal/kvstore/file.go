package kvstore

import (
	"os"
	"path/filepath"
	"strings"

	"tabreed-backend/pkg/logger"

	"github.com/goccy/go-json"
)

// FileStore keeps one JSON file per key under a base directory.
// Writes go through a temp file and rename so a crash mid-write leaves
// either the old value or the new one, never a torn file.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) Load(key string, out interface{}) bool {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		// Absent slot. Only log unexpected errors.
		if !os.IsNotExist(err) {
			logger.Warn().Err(err).Str("key", key).Msg("kvstore: read failed, starting empty")
		}
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("kvstore: corrupt slot, starting empty")
		return false
	}
	return true
}

func (f *FileStore) Save(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	path := f.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (f *FileStore) Delete(key string) error {
	err := os.Remove(f.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// path maps a key like "cart:3f2a..." to a flat filename. Colons are
// not portable in filenames, so they become underscores.
func (f *FileStore) path(key string) string {
	name := strings.NewReplacer(":", "_", "/", "_", "\\", "_", "..", "_").Replace(key)
	return filepath.Join(f.dir, name+".json")
}
