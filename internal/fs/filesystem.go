package fs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// FileName returns the final element of p, or false if p has none.
// Trailing separators and trailing "." components are ignored, so "/a/b/"
// and "/a/b/." both name "b". Empty paths, roots, "." and paths ending in
// ".." have no file name.
func FileName(p string) (string, bool) {
	const seps = string(filepath.Separator) + "/"
	trimmed := strings.TrimRight(p, seps)
	for len(trimmed) > 1 && trimmed[len(trimmed)-1] == '.' && strings.ContainsRune(seps, rune(trimmed[len(trimmed)-2])) {
		trimmed = strings.TrimRight(trimmed[:len(trimmed)-1], seps)
	}
	if trimmed == "" || trimmed == filepath.VolumeName(p) {
		return "", false
	}
	name := filepath.Base(trimmed)
	switch name {
	case ".", "..", string(filepath.Separator):
		return "", false
	}
	return name, true
}

// CopyFile copies the bytes of src to dst on afs, truncating any existing
// file at dst. The copy keeps the source permission bits.
// Only regular files can be copied.
func CopyFile(afs afero.Fs, src, dst string) error {
	info, err := afs.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	// Reject special file types; reading a named pipe would block forever.
	mode := info.Mode()
	if mode.IsDir() {
		return fmt.Errorf("cannot copy directory: %s", src)
	}
	if !mode.IsRegular() {
		return fmt.Errorf("not a regular file: %s", src)
	}

	if filepath.Clean(src) == filepath.Clean(dst) {
		// Already in place; opening dst for writing would truncate the source.
		return nil
	}

	in, err := afs.Open(src)
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	defer in.Close()

	out, err := afs.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode.Perm())
	if err != nil {
		return fmt.Errorf("creating destination: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying data: %w", err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("closing destination: %w", err)
	}
	return nil
}

// Size returns the byte length reported by stat for path.
func Size(afs afero.Fs, path string) (int64, error) {
	info, err := afs.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
