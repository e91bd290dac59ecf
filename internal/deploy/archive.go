package deploy

import (
	"archive/tar"
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var gzipMagic = []byte{0x1f, 0x8b}

// Extract unpacks a .tar or .tar.gz archive into dest. Entries that would
// land outside dest are rejected.
func Extract(archivePath, dest string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer f.Close()

	br := bufio.NewReader(f)
	var r io.Reader = br
	if magic, err := br.Peek(2); err == nil && magic[0] == gzipMagic[0] && magic[1] == gzipMagic[1] {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return fmt.Errorf("invalid gzip stream: %w", err)
		}
		defer gz.Close()
		r = gz
	}

	tr := tar.NewReader(r)
	entries := 0
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("invalid tar stream: %w", err)
		}
		entries++

		target, err := entryPath(dest, hdr.Name)
		if err != nil {
			return err
		}
		if err := checkParents(dest, target); err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if info, err := os.Lstat(target); err == nil && info.Mode()&fs.ModeSymlink != 0 {
				return fmt.Errorf("archive directory %q replaces a symlink", hdr.Name)
			}
			if err := os.MkdirAll(target, dirMode(hdr.FileInfo().Mode())); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := prepareEntry(target); err != nil {
				return err
			}
			if err := writeFile(target, tr, hdr.FileInfo().Mode().Perm()); err != nil {
				return err
			}
		case tar.TypeSymlink:
			if err := checkLinkname(dest, target, hdr); err != nil {
				return err
			}
			if err := prepareEntry(target); err != nil {
				return err
			}
			if err := os.Symlink(hdr.Linkname, target); err != nil {
				return err
			}
		case tar.TypeLink:
			if err := extractHardLink(dest, target, hdr); err != nil {
				return err
			}
		default:
			// devices and fifos have no place in a release
		}
	}

	if entries == 0 {
		return fmt.Errorf("archive is empty")
	}
	return verifySymlinks(dest)
}

func entryPath(dest, name string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("archive entry %q escapes the extraction directory", name)
	}
	return filepath.Join(dest, clean), nil
}

// checkParents refuses entries whose parent directories inside dest are
// symlinks, so nothing is written through a link.
func checkParents(dest, target string) error {
	rel, err := filepath.Rel(dest, target)
	if err != nil {
		return err
	}
	parts := strings.Split(rel, string(filepath.Separator))
	dir := dest
	for _, part := range parts[:len(parts)-1] {
		dir = filepath.Join(dir, part)
		info, err := os.Lstat(dir)
		if os.IsNotExist(err) {
			return nil
		}
		if err != nil {
			return err
		}
		if info.Mode()&fs.ModeSymlink != 0 {
			return fmt.Errorf("archive entry %s is written through symlink %s", rel, part)
		}
	}
	return nil
}

// checkLinkname rejects symlinks that point outside dest
func checkLinkname(dest, target string, hdr *tar.Header) error {
	link := filepath.FromSlash(hdr.Linkname)
	if link == "" || filepath.IsAbs(link) || !isWithin(filepath.Join(filepath.Dir(target), link), dest) {
		return fmt.Errorf("archive symlink %q -> %q escapes the extraction directory", hdr.Name, hdr.Linkname)
	}
	return nil
}

// extractHardLink copies the already extracted file hdr.Linkname to target
func extractHardLink(dest, target string, hdr *tar.Header) error {
	source, err := entryPath(dest, hdr.Linkname)
	if err != nil {
		return err
	}
	if err := checkParents(dest, source); err != nil {
		return err
	}
	info, err := os.Lstat(source)
	if err != nil || !info.Mode().IsRegular() {
		return fmt.Errorf("archive hard link %q -> %q does not name an earlier regular file", hdr.Name, hdr.Linkname)
	}
	if err := prepareEntry(target); err != nil {
		return err
	}
	return copyFile(source, target, info.Mode().Perm())
}

// prepareEntry creates the parent directory and removes any non-directory
// already at target, so the new entry never follows an old symlink.
func prepareEntry(target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	info, err := os.Lstat(target)
	switch {
	case os.IsNotExist(err):
		return nil
	case err != nil:
		return err
	case info.IsDir():
		return fmt.Errorf("archive entry %s replaces a directory", target)
	default:
		return os.Remove(target)
	}
}

// verifySymlinks resolves every extracted symlink and fails when one is
// dangling or leads outside dest through a chain of links.
func verifySymlinks(dest string) error {
	root, err := filepath.EvalSymlinks(dest)
	if err != nil {
		return err
	}
	return filepath.WalkDir(dest, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.Type()&fs.ModeSymlink == 0 {
			return nil
		}
		rel, _ := filepath.Rel(dest, path)
		resolved, err := filepath.EvalSymlinks(path)
		if err != nil {
			return fmt.Errorf("archive symlink %s does not resolve inside the release: %w", rel, err)
		}
		if !isWithin(resolved, root) {
			return fmt.Errorf("archive symlink %s escapes the extraction directory", rel)
		}
		return nil
	})
}

func dirMode(mode fs.FileMode) fs.FileMode {
	perm := mode.Perm()
	if perm == 0 {
		return 0o755
	}
	return perm | 0o700
}

func writeFile(path string, r io.Reader, perm fs.FileMode) error {
	if perm == 0 {
		perm = 0o644
	}
	out, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// WriteBackup archives dir into a gzip-compressed tarball at archivePath.
// Paths matched by m are left out. The archive appears atomically.
func WriteBackup(dir, archivePath string, m *Matcher) (err error) {
	if err := os.MkdirAll(filepath.Dir(archivePath), 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(archivePath), ".backup-*.tar.gz")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	gz := gzip.NewWriter(tmp)
	tw := tar.NewWriter(gz)

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil || rel == "." {
			return err
		}
		if m.Excluded(rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		return addToArchive(tw, path, filepath.ToSlash(rel), d)
	})
	if err != nil {
		return err
	}

	if err = tw.Close(); err != nil {
		return err
	}
	if err = gz.Close(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), archivePath)
}

func addToArchive(tw *tar.Writer, path, name string, d fs.DirEntry) error {
	info, err := d.Info()
	if err != nil {
		return err
	}

	var link string
	if info.Mode()&fs.ModeSymlink != 0 {
		if link, err = os.Readlink(path); err != nil {
			return err
		}
	}

	hdr, err := tar.FileInfoHeader(info, link)
	if err != nil {
		return err
	}
	hdr.Name = name
	if info.IsDir() {
		hdr.Name += "/"
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}

	if !info.Mode().IsRegular() {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(tw, f)
	return err
}
