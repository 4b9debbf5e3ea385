package analyze

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// DirEntry represents a file or directory in the scan tree.
type DirEntry struct {
	Path     string
	Name     string
	Size     int64
	IsDir    bool
	Children []*DirEntry
	Parent   *DirEntry
	ModTime  time.Time
}

// IsOld returns true if the entry hasn't been modified in 6+ months.
func (e *DirEntry) IsOld() bool {
	return time.Since(e.ModTime) > 180*24*time.Hour
}

// Percentage returns the entry's size as a percentage of parentSize.
func (e *DirEntry) Percentage(parentSize int64) float64 {
	if parentSize == 0 {
		return 0
	}
	return float64(e.Size) / float64(parentSize) * 100
}

// Scanner performs parallel recursive directory scanning.
type Scanner struct {
	sem          chan struct{}
	exclude      map[string]bool
	mu           sync.Mutex
	warnings     []string
	scannedCount atomic.Int64
}

// NewScanner creates a scanner with bounded concurrency.
// exclude is a list of directory names (case-insensitive) to skip.
func NewScanner(maxConcurrency int, exclude []string) *Scanner {
	if maxConcurrency <= 0 {
		maxConcurrency = 8
	}
	excMap := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		excMap[strings.ToLower(e)] = true
	}
	return &Scanner{
		sem:     make(chan struct{}, maxConcurrency),
		exclude: excMap,
	}
}

// Warnings returns any warnings accumulated during scanning.
func (s *Scanner) Warnings() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.warnings...)
}

// ScannedCount returns the number of entries scanned so far.
func (s *Scanner) ScannedCount() int64 {
	return s.scannedCount.Load()
}

func (s *Scanner) addWarning(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.warnings) < 500 {
		s.warnings = append(s.warnings, msg)
	}
}

// Scan performs a parallel recursive scan of the given root path. Symlinks
// are never followed — Lstat everywhere — so cycles cannot occur.
func (s *Scanner) Scan(rootPath string) (*DirEntry, error) {
	rootPath = filepath.Clean(rootPath)

	info, err := os.Lstat(rootPath)
	if err != nil {
		return nil, err
	}

	root := &DirEntry{
		Path:    rootPath,
		Name:    info.Name(),
		IsDir:   info.IsDir(),
		ModTime: info.ModTime(),
	}

	if !info.IsDir() {
		root.Size = info.Size()
		return root, nil
	}

	s.scanDir(root)
	s.calculateSizes(root)

	return root, nil
}

// scanDir recursively scans a directory, holding the semaphore only during
// the ReadDir I/O to prevent deadlocks from nested acquisition.
func (s *Scanner) scanDir(entry *DirEntry) {
	s.sem <- struct{}{}
	entries, err := os.ReadDir(entry.Path)
	<-s.sem

	if err != nil {
		s.addWarning("cannot read " + entry.Path + ": " + err.Error())
		return
	}

	var wg sync.WaitGroup
	var mu sync.Mutex

	for _, e := range entries {
		childPath := filepath.Join(entry.Path, e.Name())
		s.scannedCount.Add(1)

		if e.IsDir() && s.exclude[strings.ToLower(e.Name())] {
			continue
		}

		// ReadDir reports symlinks as non-directories, so they fall through
		// to the Lstat-backed Info below and are counted by link size only.
		info, err := e.Info()
		if err != nil {
			s.addWarning("cannot stat " + childPath + ": " + err.Error())
			continue
		}

		child := &DirEntry{
			Path:    childPath,
			Name:    e.Name(),
			IsDir:   e.IsDir(),
			Parent:  entry,
			ModTime: info.ModTime(),
		}

		if !e.IsDir() {
			child.Size = info.Size()
		} else {
			wg.Add(1)
			go func(dir *DirEntry) {
				defer wg.Done()
				s.scanDir(dir)
			}(child)
		}

		mu.Lock()
		entry.Children = append(entry.Children, child)
		mu.Unlock()
	}

	wg.Wait()
}

// calculateSizes walks the tree bottom-up, summing sizes from children,
// then sorts each level by size descending.
func (s *Scanner) calculateSizes(entry *DirEntry) {
	if !entry.IsDir {
		return
	}

	var total int64
	for _, child := range entry.Children {
		s.calculateSizes(child)
		total += child.Size
	}
	entry.Size = total

	sort.Slice(entry.Children, func(i, j int) bool {
		return entry.Children[i].Size > entry.Children[j].Size
	})
}
