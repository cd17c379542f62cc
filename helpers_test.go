package unindex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}
}

func loadTestProject(t *testing.T, root string) *Project {
	t.Helper()
	cfg, err := LoadTSConfig(filepath.Join(root, "tsconfig.json"))
	require.NoError(t, err)
	p, err := LoadProject(root, cfg, nil)
	require.NoError(t, err)
	return p
}

func readFile(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

func fileExists(root, rel string) bool {
	_, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
	return err == nil
}

const basicTSConfig = `{"compilerOptions": {"baseUrl": "."}}`
