package vgnav

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const appRoutesYAML = `routes:
  - path: /
    component: Home
  - path: /poc/jobs
    component: PocJobs
  - path: /poc/jobs/:id
    component: PocJobDetail
  - path: /love-story
    component: LoveStory
`

func TestLoadRoutes(t *testing.T) {

	rt, err := LoadRoutes(strings.NewReader(appRoutesYAML))
	require.NoError(t, err)
	assert.Equal(t, appRoutes(t).All(), rt.All())

	m, ok := Match("/poc/jobs/7", rt)
	assert.True(t, ok)
	assert.Equal(t, "PocJobDetail", m.ViewID)
}

func TestLoadRoutesErrors(t *testing.T) {

	var tlist = []struct {
		name string
		in   string
	}{
		{"unknown key", "routes:\n  - path: /\n    view: Home\n"},
		{"missing component", "routes:\n  - path: /\n"},
		{"bad pattern", "routes:\n  - path: /a/:\n    component: A\n"},
		{"not yaml", "routes: [\n"},
	}

	for _, ti := range tlist {
		t.Run(ti.name, func(t *testing.T) {
			_, err := LoadRoutes(strings.NewReader(ti.in))
			assert.Error(t, err)
		})
	}
}

func TestLoadRoutesEmpty(t *testing.T) {
	rt, err := LoadRoutes(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, rt.Len())
}

func TestLoadRoutesFile(t *testing.T) {

	dir := t.TempDir()
	name := filepath.Join(dir, "routes.yml")

	var buf bytes.Buffer
	require.NoError(t, WriteRoutes(&buf, appRoutes(t).All()))
	require.NoError(t, os.WriteFile(name, buf.Bytes(), 0644))

	rt, err := LoadRoutesFile(name)
	require.NoError(t, err)
	assert.Equal(t, appRoutes(t).All(), rt.All())

	_, err = LoadRoutesFile(filepath.Join(dir, "missing.yml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
