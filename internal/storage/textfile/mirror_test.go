package textfile

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/cwlroster/internal/model"
)

func newMirror(t *testing.T) *Mirror {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "data", DefaultFilename))
}

func TestReadMissingFile(t *testing.T) {
	m := newMirror(t)

	content, err := m.Read()
	require.NoError(t, err)
	assert.Empty(t, content)
}

func TestAppend(t *testing.T) {
	m := newMirror(t)

	require.NoError(t, m.Append(model.RegisteredPlayer{Name: "Ann", TownHall: "th12"}))
	require.NoError(t, m.Append(model.RegisteredPlayer{Name: "Bob Jr", TownHall: "th9"}))

	content, err := m.Read()
	require.NoError(t, err)
	assert.Equal(t, "Ann th12\nBob Jr th9\n", content)
}

func TestRewrite(t *testing.T) {
	m := newMirror(t)
	require.NoError(t, m.Append(model.RegisteredPlayer{Name: "Old", TownHall: "th3"}))

	players := []model.RegisteredPlayer{
		{Name: "Ann", TownHall: "th12"},
		{Name: "Cid", TownHall: "th15"},
	}
	require.NoError(t, m.Rewrite(players))

	content, err := m.Read()
	require.NoError(t, err)
	assert.Equal(t, "Ann th12\nCid th15\n", content)

	require.NoError(t, m.Rewrite(nil))
	content, err = m.Read()
	require.NoError(t, err)
	assert.Empty(t, content)
}

func TestClear(t *testing.T) {
	m := newMirror(t)
	require.NoError(t, m.Append(model.RegisteredPlayer{Name: "Ann", TownHall: "th12"}))

	require.NoError(t, m.Clear())

	content, err := m.Read()
	require.NoError(t, err)
	assert.Empty(t, content)
	assert.FileExists(t, m.Path())
}
