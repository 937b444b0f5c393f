package container

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelftools/fav/pkg/keyarch"
)

func TestLoadBootstrapsMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store", "favorites.karc")

	root, err := Load(path)
	require.NoError(t, err)

	// The bootstrap archive hit the disk, not just memory.
	_, err = os.Stat(path)
	require.NoError(t, err)

	m := root.(*keyarch.Map)
	items, ok := m.Get("items")
	require.True(t, ok)
	assert.Equal(t, 0, items.(*keyarch.Sequence).Len())

	props, ok := m.Get("properties")
	require.True(t, ok)
	flag, ok := props.(*keyarch.Map).Get("com.apple.LSSharedFileList.ForceTemplateIcons")
	require.True(t, ok)
	assert.Equal(t, keyarch.Boolean(true), flag)

	// A second load reads the written file and yields the same archive.
	again, err := Load(path)
	require.NoError(t, err)
	assert.True(t, keyarch.Equal(root, again))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "favorites.karc")

	root := Bootstrap()
	items, _ := root.Get("items")
	entry := keyarch.NewMap()
	entry.Set("uuid", keyarch.Text("u1"))
	entry.Set("bookmark", keyarch.Blob("token"))
	items.(*keyarch.Sequence).Append(entry)

	require.NoError(t, Save(path, root))

	got, err := Load(path)
	require.NoError(t, err)
	assert.True(t, keyarch.Equal(root, got))
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "favorites.karc")
	require.NoError(t, Save(path, Bootstrap()))

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "favorites.karc", files[0].Name())
}

func TestLoadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "favorites.karc")
	require.NoError(t, os.WriteFile(path, []byte("not an archive"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	var se *keyarch.StructureError
	assert.ErrorAs(t, err, &se)
}
