package artifact

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeApp creates one app directory with the given files (name -> content).
func writeApp(t *testing.T, root, app string, files map[string]string) string {
	t.Helper()
	dir := filepath.Join(root, app)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestStoreBasics(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root)

	t.Run("write dockerfile creates the app directory", func(t *testing.T) {
		path, err := store.WriteDockerfile("svc1", "FROM alpine:3.20\nEXPOSE 8080")
		require.NoError(t, err)
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "FROM alpine:3.20\nEXPOSE 8080", string(content))
	})

	t.Run("list sniffs base image and ports from the dockerfile", func(t *testing.T) {
		apps, err := store.List()
		require.NoError(t, err)
		require.Len(t, apps, 1)
		assert.Equal(t, "svc1", apps[0].Name)
		assert.True(t, apps[0].HasDockerfile)
		assert.Equal(t, "alpine:3.20", apps[0].BaseImage)
		assert.Equal(t, []string{"8080"}, apps[0].ExposedPorts)
	})

	t.Run("hidden entries are excluded from listings", func(t *testing.T) {
		require.NoError(t, os.MkdirAll(filepath.Join(root, ".cache"), 0o755))
		apps, err := store.List()
		require.NoError(t, err)
		assert.Len(t, apps, 1)
	})

	t.Run("resolve reports missing apps as not found", func(t *testing.T) {
		_, err := store.Resolve("ghost")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("names escaping the root are rejected", func(t *testing.T) {
		_, err := store.AppDir("../etc")
		assert.ErrorIs(t, err, ErrBadName)
		_, err = store.ResolveFile("svc1", "../../secret")
		assert.ErrorIs(t, err, ErrBadName)
	})

	t.Run("size sums files recursively", func(t *testing.T) {
		writeApp(t, root, "sized", map[string]string{"a.txt": "12345", "b.txt": "123"})
		require.NoError(t, os.MkdirAll(filepath.Join(root, "sized", "sub"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(root, "sized", "sub", "c.txt"), []byte("12"), 0o644))
		size, err := store.Size("sized")
		require.NoError(t, err)
		assert.Equal(t, int64(10), size)
	})

	t.Run("delete removes the directory and is not found afterwards", func(t *testing.T) {
		writeApp(t, root, "doomed", map[string]string{DockerfileName: "FROM alpine:3.20"})
		require.NoError(t, store.Delete("doomed"))
		assert.ErrorIs(t, store.Delete("doomed"), ErrNotFound)
	})

	t.Run("missing root reads as an empty store", func(t *testing.T) {
		empty := NewStore(filepath.Join(root, "does-not-exist"))
		apps, err := empty.List()
		require.NoError(t, err)
		assert.Empty(t, apps)
	})
}

func TestClassify(t *testing.T) {
	root := t.TempDir()

	t.Run("valid dockerfile", func(t *testing.T) {
		dir := writeApp(t, root, "ok", map[string]string{DockerfileName: "FROM alpine:3.20\n"})
		c := Classify(dir)
		assert.False(t, c.Invalid)
		assert.False(t, c.Empty)
	})

	t.Run("missing dockerfile is invalid", func(t *testing.T) {
		dir := writeApp(t, root, "nofile", map[string]string{"readme.md": "hi"})
		c := Classify(dir)
		assert.True(t, c.Invalid)
		assert.Contains(t, c.Reasons, "no Dockerfile found")
	})

	t.Run("zero-byte dockerfile is invalid", func(t *testing.T) {
		dir := writeApp(t, root, "zero", map[string]string{DockerfileName: ""})
		c := Classify(dir)
		assert.True(t, c.Invalid)
		assert.Contains(t, c.Reasons, "empty Dockerfile")
	})

	t.Run("dockerfile without FROM is invalid, case-insensitively", func(t *testing.T) {
		dir := writeApp(t, root, "nofrom", map[string]string{DockerfileName: "RUN echo hi\n"})
		c := Classify(dir)
		assert.True(t, c.Invalid)
		assert.Contains(t, c.Reasons, "no FROM instruction in Dockerfile")

		dir = writeApp(t, root, "lower", map[string]string{DockerfileName: "from alpine:3.20\n"})
		assert.False(t, Classify(dir).Invalid)
	})

	t.Run("directory with only hidden entries is empty", func(t *testing.T) {
		dir := writeApp(t, root, "hiddenonly", map[string]string{".keep": ""})
		c := Classify(dir)
		assert.True(t, c.Empty)
	})
}

func TestCleanup(t *testing.T) {
	t.Run("cleanup-invalid removes exactly the invalid app", func(t *testing.T) {
		root := t.TempDir()
		store := NewStore(root)
		writeApp(t, root, "good", map[string]string{DockerfileName: "FROM alpine:3.20"})
		writeApp(t, root, "bad", map[string]string{DockerfileName: ""})

		// preview and cleanup must agree on the same predicate
		preview, err := store.PreviewCleanup(nil, false, true)
		require.NoError(t, err)
		assert.Equal(t, 1, preview.ToDelete)

		report, err := store.CleanupInvalid()
		require.NoError(t, err)
		require.Len(t, report.Deleted, 1)
		assert.Equal(t, "bad", report.Deleted[0].Name)

		_, err = store.Resolve("good")
		assert.NoError(t, err)
		_, err = store.Resolve("bad")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("cleanup-empty removes only empty directories", func(t *testing.T) {
		root := t.TempDir()
		store := NewStore(root)
		writeApp(t, root, "full", map[string]string{DockerfileName: "FROM alpine:3.20"})
		require.NoError(t, os.MkdirAll(filepath.Join(root, "hollow"), 0o755))

		report, err := store.CleanupEmpty()
		require.NoError(t, err)
		require.Len(t, report.Deleted, 1)
		assert.Equal(t, "hollow", report.Deleted[0].Name)
		assert.Equal(t, []string{"empty directory"}, report.Deleted[0].Reasons)
	})

	t.Run("cleanup by age deletes old apps and reports freed bytes", func(t *testing.T) {
		root := t.TempDir()
		store := NewStore(root)
		oldDir := writeApp(t, root, "ancient", map[string]string{DockerfileName: "FROM alpine:3.20", "blob.bin": "0123456789"})
		writeApp(t, root, "fresh", map[string]string{DockerfileName: "FROM alpine:3.20"})

		tenDaysAgo := time.Now().AddDate(0, 0, -10)
		require.NoError(t, os.Chtimes(oldDir, tenDaysAgo, tenDaysAgo))
		threeDaysAgo := time.Now().AddDate(0, 0, -3)
		require.NoError(t, os.Chtimes(filepath.Join(root, "fresh"), threeDaysAgo, threeDaysAgo))

		report, err := store.CleanupOlderThan(7)
		require.NoError(t, err)
		require.Len(t, report.Deleted, 1)
		assert.Equal(t, "ancient", report.Deleted[0].Name)
		assert.Equal(t, int64(26), report.Deleted[0].SizeBytes)
		assert.Equal(t, int64(26), report.FreedBytes)

		_, err = store.Resolve("fresh")
		assert.NoError(t, err)
	})

	t.Run("reset wipes and recreates the root", func(t *testing.T) {
		root := t.TempDir()
		store := NewStore(root)
		writeApp(t, root, "svc1", map[string]string{DockerfileName: "FROM alpine:3.20"})

		require.NoError(t, store.Reset())

		apps, err := store.List()
		require.NoError(t, err)
		assert.Empty(t, apps)
		_, err = os.Stat(root)
		assert.NoError(t, err)
	})
}

func TestPreviewCleanup(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root)
	oldDir := writeApp(t, root, "stale", map[string]string{DockerfileName: "FROM alpine:3.20"})
	writeApp(t, root, "broken", map[string]string{DockerfileName: ""})
	writeApp(t, root, "healthy", map[string]string{DockerfileName: "FROM alpine:3.20"})

	tenDaysAgo := time.Now().AddDate(0, 0, -10)
	require.NoError(t, os.Chtimes(oldDir, tenDaysAgo, tenDaysAgo))

	days := 7
	preview, err := store.PreviewCleanup(&days, true, true)
	require.NoError(t, err)

	assert.Equal(t, 3, preview.TotalApps)
	assert.Equal(t, 2, preview.ToDelete)

	byName := map[string]PreviewEntry{}
	for _, e := range preview.Apps {
		byName[e.Name] = e
	}
	assert.True(t, byName["stale"].WillBeDeleted)
	assert.Contains(t, byName["stale"].Reasons, "older than 7 days")
	assert.True(t, byName["broken"].WillBeDeleted)
	assert.Contains(t, byName["broken"].Reasons, "empty Dockerfile")
	assert.False(t, byName["healthy"].WillBeDeleted)

	// nothing was deleted
	apps, err := store.List()
	require.NoError(t, err)
	assert.Len(t, apps, 3)
}

func TestStorageSummary(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root)
	first := writeApp(t, root, "oldest", map[string]string{DockerfileName: "FROM alpine:3.20"})
	writeApp(t, root, "broken", map[string]string{DockerfileName: ""})
	require.NoError(t, os.MkdirAll(filepath.Join(root, "hollow"), 0o755))
	writeApp(t, root, "newest", map[string]string{DockerfileName: "FROM debian:12", "extra.txt": "abc"})

	wayBack := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(first, wayBack, wayBack))

	sum, err := store.StorageSummary()
	require.NoError(t, err)

	assert.Equal(t, 4, sum.TotalApps)
	assert.Equal(t, 2, sum.ValidApps)
	assert.Equal(t, 1, sum.EmptyDirs)
	assert.Equal(t, 2, sum.InvalidApps) // hollow has no Dockerfile either
	assert.Positive(t, sum.TotalSizeBytes)

	require.NotEmpty(t, sum.Apps)
	assert.Equal(t, "oldest", sum.Apps[len(sum.Apps)-1].Name)
	for i := 1; i < len(sum.Apps); i++ {
		assert.False(t, sum.Apps[i].LastModified.After(sum.Apps[i-1].LastModified))
	}
}
