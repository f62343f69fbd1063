package gitrepo_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repotriage/repotriage/internal/adapters/outbound/gitrepo"
	"github.com/repotriage/repotriage/internal/domain"
)

// initRepo creates a git repository with one commit containing the given
// files, keyed by relative path.
func initRepo(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()

	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	for path, content := range files {
		full := filepath.Join(dir, path)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
		_, err = wt.Add(path)
		require.NoError(t, err)
	}

	_, err = wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)
	return dir
}

func TestIsGitRepo(t *testing.T) {
	loader := gitrepo.New()
	dir := initRepo(t, map[string]string{"main.py": "x = 1\n"})
	assert.True(t, loader.IsGitRepo(dir))
	assert.False(t, loader.IsGitRepo(t.TempDir()))
}

func TestSnapshot_ReadsHEADTree(t *testing.T) {
	dir := initRepo(t, map[string]string{
		"README.md":   "# app\n",
		"main.py":     "print('hi')\n",
		"src/auth.py": "password = \"hunter2\"\n",
	})

	snap, err := gitrepo.New().Snapshot(dir, domain.FetchOptions{})
	require.NoError(t, err)

	assert.Contains(t, snap.TopLevel, "README.md")
	assert.Contains(t, snap.TopLevel, "main.py")
	assert.Contains(t, snap.TopLevel, "src")

	paths := make(map[string]string)
	for _, f := range snap.Files {
		paths[f.Path] = f.Content
	}
	// Only source files carry content; README is top-level metadata.
	assert.NotContains(t, paths, "README.md")
	assert.Equal(t, "print('hi')\n", paths["main.py"])
	assert.Equal(t, "password = \"hunter2\"\n", paths["src/auth.py"])
}

func TestSnapshot_IDFromOriginRemote(t *testing.T) {
	dir := initRepo(t, map[string]string{"main.py": "x = 1\n"})

	repo, err := git.PlainOpen(dir)
	require.NoError(t, err)
	_, err = repo.CreateRemote(&config.RemoteConfig{
		Name: "origin",
		URLs: []string{"git@github.com:octocat/hello-world.git"},
	})
	require.NoError(t, err)

	snap, err := gitrepo.New().Snapshot(dir, domain.FetchOptions{})
	require.NoError(t, err)
	assert.Equal(t, "octocat/hello-world", snap.ID)
}

func TestSnapshot_IDFallsBackToDirName(t *testing.T) {
	dir := initRepo(t, map[string]string{"main.py": "x = 1\n"})

	snap, err := gitrepo.New().Snapshot(dir, domain.FetchOptions{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(dir), snap.ID)
}

func TestSnapshot_RespectsMaxFiles(t *testing.T) {
	files := map[string]string{}
	for _, name := range []string{"a.py", "b.py", "c.py", "d.py", "e.py"} {
		files[name] = "x = 1\n"
	}
	dir := initRepo(t, files)

	snap, err := gitrepo.New().Snapshot(dir, domain.FetchOptions{MaxFiles: 2})
	require.NoError(t, err)
	assert.Len(t, snap.Files, 2)
}

func TestSnapshot_NotARepo(t *testing.T) {
	_, err := gitrepo.New().Snapshot(t.TempDir(), domain.FetchOptions{})
	assert.Error(t, err)
}
