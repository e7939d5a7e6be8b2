package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitConfigCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.FileExists(t, path)

	reloaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, reloaded)
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[solver]
synonym_search_depth = 2

[dict]
data_dir = "/srv/clues"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Solver.SynonymSearchDepth)
	assert.Equal(t, 3, cfg.Solver.DefinitionMaxLen)
	assert.Equal(t, "/srv/clues", cfg.Dict.DataDir)
	assert.Equal(t, "/srv/clues/wordlist.txt", cfg.Dict.Resolve(cfg.Dict.WordListFile))
}

func TestLoadConfigPartialRecovery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	// wrong type for a solver key makes strict decoding fail
	body := `
[solver]
synonym_search_depth = "deep"
max_results = 7

[cli]
default_limit = 3
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Solver.SynonymSearchDepth)
	assert.Equal(t, 7, cfg.Solver.MaxResults)
	assert.Equal(t, 3, cfg.CLI.DefaultLimit)
}

func TestUpdatePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := DefaultConfig()
	depth := 3
	require.NoError(t, cfg.Update(path, &depth, nil))

	reloaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 3, reloaded.Solver.SynonymSearchDepth)
}
