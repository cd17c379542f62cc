package unindex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "tsconfig.json")
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func Test_LoadTSConfig_BaseURL(t *testing.T) {
	p := writeConfig(t, `{"compilerOptions": {"baseUrl": "src"}}`)

	cfg, err := LoadTSConfig(p)
	require.NoError(t, err)
	assert.Equal(t, cfg.Dir+"/src", cfg.BaseURL)
}

func Test_LoadTSConfig_NoCompilerOptions(t *testing.T) {
	p := writeConfig(t, `{}`)

	cfg, err := LoadTSConfig(p)
	require.NoError(t, err)
	assert.Empty(t, cfg.BaseURL)
	assert.Empty(t, cfg.Paths)
}

func Test_LoadTSConfig_InvalidJSON(t *testing.T) {
	p := writeConfig(t, `{"compilerOptions": `)

	_, err := LoadTSConfig(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func Test_LoadTSConfig_Missing(t *testing.T) {
	_, err := LoadTSConfig(filepath.Join(t.TempDir(), "tsconfig.json"))
	require.Error(t, err)
}

func Test_ExpandAlias_Wildcard(t *testing.T) {
	p := writeConfig(t, `{"compilerOptions": {"baseUrl": ".", "paths": {"@app/*": ["src/app/*"]}}}`)

	cfg, err := LoadTSConfig(p)
	require.NoError(t, err)

	candidates := cfg.ExpandAlias("@app/components/Button")
	require.Len(t, candidates, 1)
	assert.Equal(t, cfg.Dir+"/src/app/components/Button", candidates[0])
}

func Test_ExpandAlias_Exact(t *testing.T) {
	p := writeConfig(t, `{"compilerOptions": {"baseUrl": ".", "paths": {"config": ["src/config/index"]}}}`)

	cfg, err := LoadTSConfig(p)
	require.NoError(t, err)

	candidates := cfg.ExpandAlias("config")
	require.Len(t, candidates, 1)
	assert.Equal(t, cfg.Dir+"/src/config/index", candidates[0])
	assert.Empty(t, cfg.ExpandAlias("config/extra"))
}

func Test_ExpandAlias_LongestPatternWins(t *testing.T) {
	p := writeConfig(t, `{"compilerOptions": {"baseUrl": ".", "paths": {
		"@app/*": ["src/app/*"],
		"@app/components/*": ["src/widgets/*"]
	}}}`)

	cfg, err := LoadTSConfig(p)
	require.NoError(t, err)

	candidates := cfg.ExpandAlias("@app/components/Button")
	require.Len(t, candidates, 1)
	assert.Equal(t, cfg.Dir+"/src/widgets/Button", candidates[0])
}

func Test_ExpandAlias_NoMatch(t *testing.T) {
	p := writeConfig(t, `{"compilerOptions": {"baseUrl": "."}}`)

	cfg, err := LoadTSConfig(p)
	require.NoError(t, err)
	assert.Empty(t, cfg.ExpandAlias("react"))
}
