package store

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordStore(t *testing.T) {
	modes := map[string]func(t *testing.T) *RecordStore{
		"memory": func(t *testing.T) *RecordStore {
			s, err := NewRecordStore("")
			require.NoError(t, err)
			return s
		},
		"bolt": func(t *testing.T) *RecordStore {
			s, err := NewRecordStore(t.TempDir())
			require.NoError(t, err)
			return s
		},
	}

	for name, open := range modes {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			defer s.Close()

			_, ok, err := s.Get("missing")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.Put("k", []byte(`[1,2]`)))
			v, ok, err := s.Get("k")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, `[1,2]`, string(v))

			// Returned slices are copies
			v[0] = 'x'
			v, _, _ = s.Get("k")
			assert.Equal(t, `[1,2]`, string(v))

			require.NoError(t, s.Delete("k"))
			_, ok, err = s.Get("k")
			require.NoError(t, err)
			assert.False(t, ok)

			// Deleting an absent key is fine
			assert.NoError(t, s.Delete("k"))
		})
	}
}

func TestRecordStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := NewRecordStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.Put("@cinesearch_watchlist", []byte(`[]`)))
	require.NoError(t, s.Put("gone", []byte(`x`)))
	require.NoError(t, s.Delete("gone"))
	require.NoError(t, s.Close())

	s, err = NewRecordStore(dir)
	require.NoError(t, err)
	defer s.Close()

	v, ok, err := s.Get("@cinesearch_watchlist")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[]`, string(v))

	_, ok, err = s.Get("gone")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRemove(t *testing.T) {
	dir := t.TempDir()

	s, err := NewRecordStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = os.Stat(Path(dir))
	require.NoError(t, err)

	require.NoError(t, Remove(dir))
	_, err = os.Stat(Path(dir))
	assert.True(t, os.IsNotExist(err))

	// Removing twice is not an error
	assert.NoError(t, Remove(dir))
}

func TestRemoveMemoryOnlyTouchesNothing(t *testing.T) {
	// A database file in the working directory must survive
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	require.NoError(t, os.WriteFile(DatabaseFile, []byte("keep"), 0o644))

	require.NoError(t, Remove(""))

	data, err := os.ReadFile(DatabaseFile)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(data))
}
