package alias

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAliasName(t *testing.T) {
	tests := map[string]struct {
		name string
		want bool
	}{
		"slash prefix": {"/quick", true},
		"dot prefix":   {".local", true},
		"tilde prefix": {"~home", true},
		"plain word":   {"quick", false},
		"flag":         {"-q", false},
		"empty":        {"", false},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsAliasName(tc.name))
		})
	}
}

func TestOpenMissingFileYieldsEmptyCatalog(t *testing.T) {
	catalog, err := Open(filepath.Join(t.TempDir(), "aliases.json"))
	require.NoError(t, err)
	assert.Empty(t, catalog.Names())
}

func TestSetPersistsAndReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aliases.json")

	catalog, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, catalog.Set("/hi", "say hello", []string{"shout", "-u", "hello"}))

	reloaded, err := Open(path)
	require.NoError(t, err)
	command, ok := reloaded.Resolve("/hi")
	require.True(t, ok)
	assert.Equal(t, []string{"shout", "-u", "hello"}, command)

	description, command, ok := reloaded.Describe("/hi")
	require.True(t, ok)
	assert.Equal(t, "say hello", description)
	assert.Equal(t, []string{"shout", "-u", "hello"}, command)
}

func TestSetRejectsBadNames(t *testing.T) {
	catalog, err := Open(filepath.Join(t.TempDir(), "aliases.json"))
	require.NoError(t, err)

	assert.Error(t, catalog.Set("plain", "", []string{"cmd"}))
	assert.Error(t, catalog.Set("/empty", "", nil))
}

func TestDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aliases.json")
	catalog, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, catalog.Set("/x", "", []string{"cmd"}))

	deleted, err := catalog.Delete("/x")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = catalog.Delete("/x")
	require.NoError(t, err)
	assert.False(t, deleted)

	reloaded, err := Open(path)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Names())
}

func TestNamesSorted(t *testing.T) {
	catalog, err := Open(filepath.Join(t.TempDir(), "aliases.json"))
	require.NoError(t, err)
	require.NoError(t, catalog.Set("/zulu", "", []string{"z"}))
	require.NoError(t, catalog.Set("/alpha", "", []string{"a"}))
	assert.Equal(t, []string{"/alpha", "/zulu"}, catalog.Names())
}

func TestOpenRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aliases.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))
	_, err := Open(path)
	assert.Error(t, err)
}

func TestExpand(t *testing.T) {
	catalog, err := Open(filepath.Join(t.TempDir(), "aliases.json"))
	require.NoError(t, err)
	require.NoError(t, catalog.Set("/hi", "", []string{"shout", "hello"}))

	expanded, err := Expand(catalog, []string{"/hi", "extra"})
	require.NoError(t, err)
	assert.Equal(t, []string{"shout", "hello", "extra"}, expanded)

	passthrough, err := Expand(catalog, []string{"shout", "hello"})
	require.NoError(t, err)
	assert.Equal(t, []string{"shout", "hello"}, passthrough)

	_, err = Expand(catalog, []string{"/missing"})
	assert.Error(t, err)

	nilCatalog, err := Expand(nil, []string{"/hi"})
	require.NoError(t, err)
	assert.Equal(t, []string{"/hi"}, nilCatalog)
}
