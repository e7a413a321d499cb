package kvstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestFileStoreRoundTrip(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	in := payload{Name: "split-unit", Count: 3}
	require.NoError(t, fs.Save("cart:abc", in))

	var out payload
	require.True(t, fs.Load("cart:abc", &out))
	assert.Equal(t, in, out)
}

func TestFileStoreLoadMissingKey(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	var out payload
	assert.False(t, fs.Load("absent", &out))
}

func TestFileStoreLoadCorruptFileFailsOpen(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, fs.Save("cart:abc", payload{Name: "ok"}))

	// Clobber the file with invalid JSON.
	path := filepath.Join(dir, "cart_abc.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o644))

	var out payload
	assert.False(t, fs.Load("cart:abc", &out))
}

func TestFileStoreDelete(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, fs.Save("cart:abc", payload{Name: "x"}))
	require.NoError(t, fs.Delete("cart:abc"))

	var out payload
	assert.False(t, fs.Load("cart:abc", &out))

	// Deleting a missing key is not an error.
	assert.NoError(t, fs.Delete("cart:abc"))
}

func TestFileStoreSanitizesKeys(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, fs.Save("../escape/attempt:1", payload{Name: "trapped"}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	var out payload
	require.True(t, fs.Load("../escape/attempt:1", &out))
	assert.Equal(t, "trapped", out.Name)
}

func TestMemoryStoreSeedCorrupt(t *testing.T) {
	ms := NewMemoryStore()
	ms.Seed("slot", []byte(`]]]`))

	var out payload
	assert.False(t, ms.Load("slot", &out))

	// A valid save recovers the slot.
	require.NoError(t, ms.Save("slot", payload{Name: "fresh"}))
	require.True(t, ms.Load("slot", &out))
	assert.Equal(t, "fresh", out.Name)
}
