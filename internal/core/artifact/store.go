// Package artifact manages the on-disk directory-per-application output tree:
// listing, sizing, validity classification, and deletion. Nothing is cached;
// every operation re-reads the filesystem so results always reflect the state
// on disk at call time.
package artifact

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// DockerfileName is the artifact file generation writes into each app dir.
const DockerfileName = "Dockerfile"

var (
	// ErrNotFound reports a requested application or file that is absent.
	ErrNotFound = errors.New("not found")
	// ErrBadName rejects application or file names that escape the store root.
	ErrBadName = errors.New("invalid name")
)

// Store operates over a single root directory containing one subdirectory per
// application. The root is injected at construction; there is no ambient
// global path.
type Store struct {
	root string
}

// NewStore returns a Store over the given root directory.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// Root returns the store's root directory.
func (s *Store) Root() string { return s.root }

// EnsureRoot creates the root directory if it does not exist.
func (s *Store) EnsureRoot() error {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("create output root %s: %w", s.root, err)
	}
	return nil
}

// AppDir resolves an application's directory without checking existence.
func (s *Store) AppDir(app string) (string, error) {
	if !validName(app) {
		return "", fmt.Errorf("%w: %q", ErrBadName, app)
	}
	return filepath.Join(s.root, app), nil
}

// Resolve returns an application's directory, or ErrNotFound if absent.
func (s *Store) Resolve(app string) (string, error) {
	dir, err := s.AppDir(app)
	if err != nil {
		return "", err
	}
	st, err := os.Stat(dir)
	if os.IsNotExist(err) || (err == nil && !st.IsDir()) {
		return "", fmt.Errorf("application %s: %w", app, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", dir, err)
	}
	return dir, nil
}

// ResolveFile returns the path of one file inside an application's directory,
// or ErrNotFound if either is absent.
func (s *Store) ResolveFile(app, name string) (string, error) {
	dir, err := s.Resolve(app)
	if err != nil {
		return "", err
	}
	if !validName(name) {
		return "", fmt.Errorf("%w: %q", ErrBadName, name)
	}
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return "", fmt.Errorf("file %s/%s: %w", app, name, ErrNotFound)
	} else if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	return path, nil
}

// WriteDockerfile creates the application directory if needed and rewrites its
// Dockerfile wholesale. Other files in the directory are untouched.
func (s *Store) WriteDockerfile(app, content string) (string, error) {
	dir, err := s.AppDir(app)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create app dir %s: %w", dir, err)
	}
	path := filepath.Join(dir, DockerfileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// App is the listing entry for one application directory.
type App struct {
	Name          string   `json:"name"`
	Path          string   `json:"path"`
	HasDockerfile bool     `json:"has_dockerfile"`
	BaseImage     string   `json:"base_image,omitempty"`
	ExposedPorts  []string `json:"exposed_ports,omitempty"`
}

// List enumerates application directories (hidden entries excluded) with the
// base image and exposed ports sniffed from each Dockerfile when present.
func (s *Store) List() ([]App, error) {
	names, err := s.appNames()
	if err != nil {
		return nil, err
	}
	apps := make([]App, 0, len(names))
	for _, name := range names {
		dir := filepath.Join(s.root, name)
		app := App{Name: name, Path: dir}
		if content, err := os.ReadFile(filepath.Join(dir, DockerfileName)); err == nil {
			app.HasDockerfile = true
			app.BaseImage, app.ExposedPorts = sniffDockerfile(string(content))
		}
		apps = append(apps, app)
	}
	return apps, nil
}

// Size returns the recursive byte sum of one application directory.
// Unreadable entries are skipped; sizing is best-effort accounting, not an
// integrity check.
func (s *Store) Size(app string) (int64, error) {
	dir, err := s.Resolve(app)
	if err != nil {
		return 0, err
	}
	return dirSize(dir), nil
}

// Delete recursively removes one application directory. Irreversible.
func (s *Store) Delete(app string) error {
	dir, err := s.Resolve(app)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("delete %s: %w", dir, err)
	}
	return nil
}

// Reset wipes the whole output root and recreates it empty.
func (s *Store) Reset() error {
	if err := os.RemoveAll(s.root); err != nil {
		return fmt.Errorf("remove output root %s: %w", s.root, err)
	}
	return s.EnsureRoot()
}

// appNames lists non-hidden application subdirectories. A missing root reads
// as an empty store.
func (s *Store) appNames() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read output root %s: %w", s.root, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

func dirSize(dir string) int64 {
	var total int64
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logrus.Debugf("sizing %s: %v", path, err)
			return nil
		}
		if d.Type().IsRegular() {
			if info, err := d.Info(); err == nil {
				total += info.Size()
			}
		}
		return nil
	})
	return total
}

// sniffDockerfile pulls the first FROM image and all EXPOSE values out of
// Dockerfile text.
func sniffDockerfile(content string) (baseImage string, ports []string) {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "FROM ") && baseImage == "":
			baseImage = strings.TrimSpace(strings.TrimPrefix(line, "FROM "))
		case strings.HasPrefix(line, "EXPOSE "):
			ports = append(ports, strings.TrimSpace(strings.TrimPrefix(line, "EXPOSE ")))
		}
	}
	return baseImage, ports
}

func validName(name string) bool {
	return name != "" && !strings.HasPrefix(name, ".") && name == filepath.Base(name)
}
