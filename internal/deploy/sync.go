package deploy

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
)

// Matcher decides which relative paths are excluded from sync, deletion
// and backup. A pattern matches when it matches any path element, or the
// whole slash-separated path.
type Matcher struct {
	patterns []string
}

// NewMatcher validates patterns and builds a Matcher
func NewMatcher(patterns []string) (*Matcher, error) {
	for _, p := range patterns {
		if _, err := filepath.Match(p, ""); err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
	}
	return &Matcher{patterns: lo.Uniq(patterns)}, nil
}

// Excluded reports whether rel (relative to the sync root) is excluded
func (m *Matcher) Excluded(rel string) bool {
	if m == nil || len(m.patterns) == 0 {
		return false
	}
	rel = filepath.ToSlash(rel)
	elems := strings.Split(rel, "/")
	return lo.SomeBy(m.patterns, func(pattern string) bool {
		if ok, _ := filepath.Match(pattern, rel); ok {
			return true
		}
		return lo.SomeBy(elems, func(elem string) bool {
			ok, _ := filepath.Match(pattern, elem)
			return ok
		})
	})
}

// SyncStats summarises a mirror run
type SyncStats struct {
	Copied    int
	Unchanged int
	Removed   int
}

// Mirror makes dst an exact copy of src, apart from excluded paths which are
// neither copied nor deleted, even inside stale directories. Unchanged files
// are not rewritten. Removed counts files and links, not directories.
func Mirror(src, dst string, m *Matcher, bar *ProgressBar) (SyncStats, error) {
	var stats SyncStats
	if bar == nil {
		bar = &ProgressBar{}
	}
	defer bar.Complete()

	if err := os.MkdirAll(dst, 0o755); err != nil {
		return stats, err
	}

	keep := map[string]struct{}{}
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(src, path)
		if err != nil || rel == "." {
			return err
		}
		if m.Excluded(rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		keep[rel] = struct{}{}

		target := filepath.Join(dst, rel)
		info, err := d.Info()
		if err != nil {
			return err
		}

		switch {
		case d.IsDir():
			return ensureDir(target, dirMode(info.Mode()))
		case info.Mode()&fs.ModeSymlink != 0:
			defer bar.Increment()
			stats.Copied++
			return copySymlink(path, target)
		case info.Mode().IsRegular():
			defer bar.Increment()
			same, err := sameFile(path, target, info)
			if err != nil {
				return err
			}
			if same {
				stats.Unchanged++
				return nil
			}
			stats.Copied++
			return copyFile(path, target, info.Mode().Perm())
		default:
			return nil
		}
	})
	if err != nil {
		return stats, err
	}

	var staleDirs []string
	err = filepath.WalkDir(dst, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(dst, path)
		if err != nil || rel == "." {
			return err
		}
		if m.Excluded(rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if _, ok := keep[rel]; ok {
			return nil
		}

		if d.IsDir() {
			// children are visited next; excluded ones must survive
			staleDirs = append(staleDirs, path)
			return nil
		}
		if err := os.Remove(path); err != nil {
			return err
		}
		stats.Removed++
		return nil
	})
	if err != nil {
		return stats, err
	}

	// deepest first, keeping directories that still hold excluded paths
	for i := len(staleDirs) - 1; i >= 0; i-- {
		entries, err := os.ReadDir(staleDirs[i])
		if err != nil {
			return stats, err
		}
		if len(entries) > 0 {
			continue
		}
		if err := os.Remove(staleDirs[i]); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

// CountFiles returns how many non-directory entries Mirror will visit in src
func CountFiles(src string, m *Matcher) (int, error) {
	count := 0
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(src, path)
		if err != nil || rel == "." {
			return err
		}
		if m.Excluded(rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			count++
		}
		return nil
	})
	return count, err
}

func ensureDir(path string, mode fs.FileMode) error {
	info, err := os.Lstat(path)
	if err == nil && !info.IsDir() {
		if err := os.Remove(path); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(path, mode); err != nil {
		return err
	}
	return os.Chmod(path, mode)
}

// copyFile writes src to a temporary sibling of dst and renames it into place
func copyFile(src, dst string, perm fs.FileMode) error {
	if info, err := os.Lstat(dst); err == nil && info.IsDir() {
		if err := os.RemoveAll(dst); err != nil {
			return err
		}
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".tmp-*")
	if err != nil {
		return err
	}
	if _, err := io.Copy(tmp, in); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Chmod(tmp.Name(), perm); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), dst)
}

func copySymlink(src, dst string) error {
	link, err := os.Readlink(src)
	if err != nil {
		return err
	}
	if current, err := os.Readlink(dst); err == nil && current == link {
		return nil
	}
	if err := os.RemoveAll(dst); err != nil {
		return err
	}
	return os.Symlink(link, dst)
}
