package unindex

import (
	"errors"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_LoadProject_SelectsSourceFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"tsconfig.json":               basicTSConfig,
		"src/App.tsx":                 "export default 1;\n",
		"src/styles.css":              "body {}\n",
		"src/util.mts":                "export const x = 1;\n",
		"node_modules/react/index.js": "module.exports = {};\n",
	})

	project := loadTestProject(t, root)

	assert.Equal(t, 2, project.FileCount())
	assert.NotNil(t, findFile(t, project, "src/App.tsx"))
	assert.NotNil(t, findFile(t, project, "src/util.mts"))
}

func Test_LoadProject_HonorsGitignore(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"tsconfig.json":      basicTSConfig,
		".gitignore":         "generated/\n",
		"src/App.tsx":        "export default 1;\n",
		"generated/types.ts": "export type T = number;\n",
	})

	project := loadTestProject(t, root)

	assert.Equal(t, 1, project.FileCount())
}

func Test_Project_ReferrerIndex(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"tsconfig.json":                   basicTSConfig,
		"src/App.tsx":                     "import Button from './components/Button';\n",
		"src/Other.tsx":                   "import Button from './components/Button/index';\n",
		"src/components/Button/index.tsx": "export default 1;\n",
	})

	project := loadTestProject(t, root)
	index := findFile(t, project, "src/components/Button/index.tsx")

	refs := project.ReferrersOf(index.Path)
	require.Len(t, refs, 2)
	files := []string{path.Base(refs[0].File().Path), path.Base(refs[1].File().Path)}
	assert.ElementsMatch(t, []string{"App.tsx", "Other.tsx"}, files)
}

func Test_Project_RenameRekeysAndChecksCollision(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"tsconfig.json": basicTSConfig,
		"src/a.ts":      "export default 1;\n",
		"src/b.ts":      "export default 2;\n",
	})

	project := loadTestProject(t, root)
	a := findFile(t, project, "src/a.ts")
	b := findFile(t, project, "src/b.ts")

	err := project.Rename(a.Path, b.Path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTargetExists))

	newPath := path.Join(path.Dir(a.Path), "renamed.ts")
	require.NoError(t, project.Rename(a.Path, newPath))
	assert.Nil(t, project.FileAt(path.Join(path.Dir(newPath), "a.ts")))
	assert.NotNil(t, project.FileAt(newPath))
	assert.True(t, fileExists(root, "src/renamed.ts"))
	assert.False(t, fileExists(root, "src/a.ts"))
}

func Test_Project_SaveFlushesDirtyFilesOnly(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"tsconfig.json": basicTSConfig,
		"src/App.tsx":   "import Button from './Button';\n",
		"src/Button.ts": "export default 1;\n",
	})

	project := loadTestProject(t, root)
	app := findFile(t, project, "src/App.tsx")

	app.Imports()[0].SetSpecifier("./elsewhere")
	require.NoError(t, project.Save())

	assert.Equal(t, "import Button from './elsewhere';\n", readFile(t, root, "src/App.tsx"))
	assert.Equal(t, "export default 1;\n", readFile(t, root, "src/Button.ts"))
	assert.False(t, app.Dirty())
}
