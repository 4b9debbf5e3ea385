package fsops

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/shirou/gopsutil/v4/disk"
	"golang.org/x/sys/unix"
)

// Sample is a point-in-time size measurement of a path or volume.
type Sample struct {
	Path  string
	Bytes uint64
}

// Measure returns the total size of the file or directory tree at path.
// Measurement is best-effort: a missing path, a path that vanishes mid-scan,
// or a permission error yields a zero (or partial) sample, never an error.
// No caching — every call re-measures.
func Measure(path string) Sample {
	s := Sample{Path: path}

	info, err := os.Lstat(path)
	if err != nil {
		return s
	}
	if !info.IsDir() {
		s.Bytes = uint64(info.Size())
		return s
	}

	_ = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entry, keep walking
		}
		if d.Type().IsRegular() {
			if fi, err := d.Info(); err == nil {
				s.Bytes += uint64(fi.Size())
			}
		}
		return nil
	})

	return s
}

// FreeSpace samples the available space on the volume hosting the user's
// home directory, falling back to the root volume, then to a raw statfs.
func FreeSpace() (Sample, error) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = "/"
	}

	if u, err := disk.Usage(home); err == nil {
		return Sample{Path: u.Path, Bytes: u.Free}, nil
	}
	if u, err := disk.Usage("/"); err == nil {
		return Sample{Path: u.Path, Bytes: u.Free}, nil
	}

	var st unix.Statfs_t
	if err := unix.Statfs("/", &st); err != nil {
		return Sample{Path: "/"}, err
	}
	return Sample{Path: "/", Bytes: uint64(st.Bavail) * uint64(st.Bsize)}, nil
}
