package artifact

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Classification is the result of the shared validity predicates. The same
// classification backs both the non-destructive preview and the destructive
// cleanup operations, so the two can never disagree about what is deletable.
type Classification struct {
	Empty   bool
	Invalid bool
	Reasons []string
}

// Classify inspects one application directory. An app is empty when it has no
// non-hidden entries, and invalid when its Dockerfile is missing, empty, or
// lacks a FROM instruction (matched case-insensitively).
func Classify(dir string) Classification {
	var c Classification

	c.Empty = countVisible(dir) == 0

	content, err := os.ReadFile(filepath.Join(dir, DockerfileName))
	switch {
	case os.IsNotExist(err):
		c.Invalid = true
		c.Reasons = append(c.Reasons, "no Dockerfile found")
	case err != nil:
		c.Invalid = true
		c.Reasons = append(c.Reasons, "error reading Dockerfile: "+err.Error())
	case strings.TrimSpace(string(content)) == "":
		c.Invalid = true
		c.Reasons = append(c.Reasons, "empty Dockerfile")
	case !strings.Contains(strings.ToUpper(string(content)), "FROM "):
		c.Invalid = true
		c.Reasons = append(c.Reasons, "no FROM instruction in Dockerfile")
	}
	return c
}

// olderThan is the age predicate shared by CleanupOlderThan and Preview.
func olderThan(mtime, cutoff time.Time) bool {
	return mtime.Before(cutoff)
}

// DeletedApp reports one removed application directory.
type DeletedApp struct {
	Name         string    `json:"name"`
	SizeBytes    int64     `json:"size_bytes"`
	LastModified time.Time `json:"last_modified"`
	Reasons      []string  `json:"reasons,omitempty"`
}

// CleanupReport aggregates one cleanup pass.
type CleanupReport struct {
	Deleted    []DeletedApp `json:"deleted_apps"`
	FreedBytes int64        `json:"freed_bytes"`
}

// CleanupOlderThan deletes every application directory whose last-modified
// time precedes now minus the given number of days, reporting each deletion
// with its pre-deletion byte size. Per-item failures are logged and skipped;
// the pass continues.
func (s *Store) CleanupOlderThan(days int) (CleanupReport, error) {
	cutoff := time.Now().AddDate(0, 0, -days)
	return s.cleanup(func(dir string, mtime time.Time) []string {
		if olderThan(mtime, cutoff) {
			return []string{"older than " + strconv.Itoa(days) + " days"}
		}
		return nil
	})
}

// CleanupEmpty deletes application directories with no non-hidden entries.
func (s *Store) CleanupEmpty() (CleanupReport, error) {
	return s.cleanup(func(dir string, _ time.Time) []string {
		if Classify(dir).Empty {
			return []string{"empty directory"}
		}
		return nil
	})
}

// CleanupInvalid deletes application directories that fail the Dockerfile
// validity checks, reporting the reasons.
func (s *Store) CleanupInvalid() (CleanupReport, error) {
	return s.cleanup(func(dir string, _ time.Time) []string {
		if c := Classify(dir); c.Invalid {
			return c.Reasons
		}
		return nil
	})
}

// cleanup runs one deletion pass: condemn returns the reasons an app must go,
// or nil to keep it.
func (s *Store) cleanup(condemn func(dir string, mtime time.Time) []string) (CleanupReport, error) {
	var report CleanupReport
	names, err := s.appNames()
	if err != nil {
		return report, err
	}
	for _, name := range names {
		dir := filepath.Join(s.root, name)
		info, err := os.Stat(dir)
		if err != nil {
			logrus.Warnf("cleanup: stat %s: %v", dir, err)
			continue
		}
		reasons := condemn(dir, info.ModTime())
		if len(reasons) == 0 {
			continue
		}
		size := dirSize(dir)
		if err := os.RemoveAll(dir); err != nil {
			logrus.Warnf("cleanup: delete %s: %v", dir, err)
			continue
		}
		logrus.WithFields(logrus.Fields{"app": name, "freed_bytes": size}).Info("deleted artifact directory")
		report.Deleted = append(report.Deleted, DeletedApp{
			Name:         name,
			SizeBytes:    size,
			LastModified: info.ModTime(),
			Reasons:      reasons,
		})
		report.FreedBytes += size
	}
	return report, nil
}

// PreviewEntry describes one application in a cleanup preview.
type PreviewEntry struct {
	Name          string    `json:"name"`
	Path          string    `json:"path"`
	LastModified  time.Time `json:"last_modified"`
	SizeBytes     int64     `json:"size_bytes"`
	WillBeDeleted bool      `json:"will_be_deleted"`
	Reasons       []string  `json:"reasons,omitempty"`
}

// Preview is the non-destructive counterpart of the cleanup operations.
type Preview struct {
	TotalApps  int            `json:"total_apps"`
	ToDelete   int            `json:"apps_to_delete"`
	FreedBytes int64          `json:"total_size_to_free_bytes"`
	Apps       []PreviewEntry `json:"apps"`
}

// PreviewCleanup computes what the cleanup operations would delete, without
// deleting. days selects the age check when non-nil; showEmpty and showInvalid
// enable the corresponding classifications.
func (s *Store) PreviewCleanup(days *int, showEmpty, showInvalid bool) (Preview, error) {
	var preview Preview
	names, err := s.appNames()
	if err != nil {
		return preview, err
	}
	var cutoff time.Time
	if days != nil {
		cutoff = time.Now().AddDate(0, 0, -*days)
	}
	for _, name := range names {
		dir := filepath.Join(s.root, name)
		info, err := os.Stat(dir)
		if err != nil {
			logrus.Warnf("preview: stat %s: %v", dir, err)
			continue
		}
		entry := PreviewEntry{
			Name:         name,
			Path:         dir,
			LastModified: info.ModTime(),
			SizeBytes:    dirSize(dir),
		}
		if days != nil && olderThan(info.ModTime(), cutoff) {
			entry.Reasons = append(entry.Reasons, "older than "+strconv.Itoa(*days)+" days")
		}
		c := Classify(dir)
		if showEmpty && c.Empty {
			entry.Reasons = append(entry.Reasons, "empty directory")
		}
		if showInvalid && c.Invalid {
			entry.Reasons = append(entry.Reasons, c.Reasons...)
		}
		entry.WillBeDeleted = len(entry.Reasons) > 0
		if entry.WillBeDeleted {
			preview.ToDelete++
			preview.FreedBytes += entry.SizeBytes
		}
		preview.Apps = append(preview.Apps, entry)
	}
	preview.TotalApps = len(preview.Apps)
	return preview, nil
}

// SummaryApp is the per-application detail row of a storage summary.
type SummaryApp struct {
	Name          string    `json:"name"`
	SizeBytes     int64     `json:"size_bytes"`
	HasDockerfile bool      `json:"has_dockerfile"`
	IsEmpty       bool      `json:"is_empty"`
	IsInvalid     bool      `json:"is_invalid"`
	LastModified  time.Time `json:"last_modified"`
	FileCount     int       `json:"file_count"`
}

// Summary aggregates storage usage over the whole store.
type Summary struct {
	TotalApps      int          `json:"total_apps"`
	ValidApps      int          `json:"valid_apps"`
	EmptyDirs      int          `json:"empty_directories"`
	InvalidApps    int          `json:"invalid_apps"`
	TotalSizeBytes int64        `json:"total_size_bytes"`
	Apps           []SummaryApp `json:"apps"`
}

// StorageSummary computes aggregate counts plus per-application detail,
// sorted by last-modified descending.
func (s *Store) StorageSummary() (Summary, error) {
	var sum Summary
	names, err := s.appNames()
	if err != nil {
		return sum, err
	}
	for _, name := range names {
		dir := filepath.Join(s.root, name)
		info, err := os.Stat(dir)
		if err != nil {
			logrus.Warnf("summary: stat %s: %v", dir, err)
			continue
		}
		c := Classify(dir)
		_, hasDockerfile := statFile(filepath.Join(dir, DockerfileName))
		app := SummaryApp{
			Name:          name,
			SizeBytes:     dirSize(dir),
			HasDockerfile: hasDockerfile,
			IsEmpty:       c.Empty,
			IsInvalid:     c.Invalid,
			LastModified:  info.ModTime(),
			FileCount:     countVisible(dir),
		}
		sum.TotalSizeBytes += app.SizeBytes
		if app.HasDockerfile && !app.IsInvalid {
			sum.ValidApps++
		}
		if app.IsEmpty {
			sum.EmptyDirs++
		}
		if app.IsInvalid {
			sum.InvalidApps++
		}
		sum.Apps = append(sum.Apps, app)
	}
	sum.TotalApps = len(sum.Apps)
	sort.Slice(sum.Apps, func(i, j int) bool {
		return sum.Apps[i].LastModified.After(sum.Apps[j].LastModified)
	})
	return sum, nil
}

func countVisible(dir string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	n := 0
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), ".") {
			n++
		}
	}
	return n
}

func statFile(path string) (os.FileInfo, bool) {
	info, err := os.Stat(path)
	return info, err == nil
}
