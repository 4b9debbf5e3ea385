package fsops

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrProtected is returned when a deletion would touch a path on the
// never-delete list.
var ErrProtected = errors.New("path is protected")

// protectedPaths must never be deleted under any circumstances. The check is
// an exact match after cleaning: children of these directories remain
// deletable (that is where caches live).
var protectedPaths = []string{
	"/",
	"/bin", "/sbin", "/lib", "/lib64",
	"/usr", "/usr/bin", "/usr/lib", "/usr/local",
	"/etc", "/boot", "/dev", "/proc", "/sys",
	"/var", "/opt", "/srv", "/home", "/root", "/tmp",
	"/System", "/Library", "/Applications", "/Users",
	"/private", "/private/var", "/private/tmp", "/private/etc",
	"/Volumes",
}

// IsProtected reports whether path may never be deleted. Besides the fixed
// list, the user's home directory itself and anything mounted directly under
// the filesystem root are refused.
func IsProtected(path string) bool {
	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return true
	}

	for _, p := range protectedPaths {
		if abs == p {
			return true
		}
	}

	if home, err := os.UserHomeDir(); err == nil && home != "" {
		if abs == filepath.Clean(home) {
			return true
		}
	}

	// Refuse first-level entries of the root volume outright; no cleanup
	// target lives at depth one.
	if strings.Count(abs, string(filepath.Separator)) <= 1 {
		return true
	}

	return false
}

// SafeDelete measures and then removes the file or directory tree at path.
// It returns the number of bytes freed. Protected paths are refused.
func SafeDelete(path string) (uint64, error) {
	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return 0, err
	}
	if IsProtected(abs) {
		return 0, fmt.Errorf("%w: %s", ErrProtected, abs)
	}

	freed := Measure(abs).Bytes
	if err := os.RemoveAll(abs); err != nil {
		return 0, err
	}
	return freed, nil
}

// RemoveContents deletes every entry inside dir while keeping dir itself.
// Entries that fail to delete are skipped; the first error is returned after
// the sweep so one stubborn entry never blocks the rest.
func RemoveContents(dir string) (uint64, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}

	var freed uint64
	var firstErr error
	for _, entry := range entries {
		n, err := SafeDelete(filepath.Join(dir, entry.Name()))
		if err != nil && firstErr == nil {
			firstErr = err
		}
		freed += n
	}
	return freed, firstErr
}
