package lockfile

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPinSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultLockFileName)

	f := New("2026-08-31T10:00:00Z")
	f.Pin("arceos", Dep{
		URL:    "https://github.com/arceos-org/arceos.git",
		Path:   "deps/ax",
		Commit: "a59b6b8f7bd0b26b1ad53bb46a0ccb59ba9b9a79",
	})
	f.Pin("arceos", Dep{ // re-pinning overwrites
		URL:    "https://github.com/arceos-org/arceos.git",
		Path:   "deps/ax",
		Commit: "1111111111111111111111111111111111111111",
	})
	require.NoError(t, Save(path, f))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-31T10:00:00Z", loaded.GeneratedAt)
	require.Len(t, loaded.Deps, 1)
	assert.Equal(t, "1111111111111111111111111111111111111111", loaded.Deps["arceos"].Commit)
	assert.Equal(t, "deps/ax", loaded.Deps["arceos"].Path)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	assert.Error(t, err)
}
