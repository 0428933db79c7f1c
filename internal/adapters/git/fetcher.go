// Package git materializes build context files from a remote repository into
// an application's artifact directory.
package git

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
	"github.com/sirupsen/logrus"
)

// Fetcher shallow-clones repositories and copies their working tree, minus
// repository metadata, next to an app's generated Dockerfile.
type Fetcher struct{}

// Fetch clones repoURL into a temporary directory and copies its files into
// dir. An existing Dockerfile in dir is preserved unless the repository ships
// its own.
func (Fetcher) Fetch(ctx context.Context, repoURL, dir string) error {
	tmp, err := os.MkdirTemp("", "dockforge-context-*")
	if err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmp)

	logrus.WithFields(logrus.Fields{"repo": repoURL, "dir": dir}).Info("fetching build context")
	_, err = gogit.PlainCloneContext(ctx, tmp, false, &gogit.CloneOptions{
		URL:   repoURL,
		Depth: 1,
	})
	if err != nil {
		return fmt.Errorf("clone %s: %w", repoURL, err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create app dir %s: %w", dir, err)
	}
	return copyTree(tmp, dir)
}

// copyTree copies every file under src into dst, skipping the .git directory.
func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		if d.IsDir() && d.Name() == ".git" {
			return filepath.SkipDir
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		return copyFile(path, target, info.Mode())
	})
}

func copyFile(src, dst string, mode fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode.Perm())
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy %s: %w", dst, err)
	}
	return nil
}
