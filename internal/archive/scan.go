package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"aircheck/internal/services"
)

// File is a recording located in the archive tree.
type File struct {
	Path    string
	Name    string
	Year    string
	Month   string
	ModTime time.Time
}

// Timestamp returns the broadcast time encoded in the file name, falling
// back to the modification time when the name does not follow the archive
// convention.
func (f File) Timestamp() time.Time {
	if meta, err := ParseFilename(f.Name); err == nil {
		return meta.Broadcast
	}
	return f.ModTime
}

// ScanOptions narrow an archive scan. Month requires Year. Limit zero means
// unlimited.
type ScanOptions struct {
	Year  int
	Month int
	Limit int
}

// Scan finds MP3 recordings under base, which is laid out as YYYY/MM/*.mp3.
// Results are sorted newest first by modification time.
func Scan(base string, opts ScanOptions) ([]File, error) {
	info, err := os.Stat(base)
	if err != nil || !info.IsDir() {
		return nil, services.Wrap(services.ErrNotFound, "archive", "scan",
			fmt.Sprintf("archive path not found: %s", base), err)
	}
	if opts.Month != 0 && opts.Year == 0 {
		return nil, services.Wrap(services.ErrValidation, "archive", "scan",
			"month filter requires a year filter", nil)
	}

	var files []File
	switch {
	case opts.Year != 0 && opts.Month != 0:
		files = appendMonth(files, base, fmt.Sprintf("%04d", opts.Year), fmt.Sprintf("%02d", opts.Month))
	case opts.Year != 0:
		files = appendYear(files, base, fmt.Sprintf("%04d", opts.Year))
	default:
		entries, err := os.ReadDir(base)
		if err != nil {
			return nil, fmt.Errorf("read archive root: %w", err)
		}
		for _, entry := range entries {
			if entry.IsDir() && isDigits(entry.Name()) {
				files = appendYear(files, base, entry.Name())
			}
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i].ModTime.After(files[j].ModTime) })
	if opts.Limit > 0 && len(files) > opts.Limit {
		files = files[:opts.Limit]
	}
	return files, nil
}

func appendYear(files []File, base, year string) []File {
	entries, err := os.ReadDir(filepath.Join(base, year))
	if err != nil {
		return files
	}
	for _, entry := range entries {
		if entry.IsDir() && isDigits(entry.Name()) {
			files = appendMonth(files, base, year, entry.Name())
		}
	}
	return files
}

func appendMonth(files []File, base, year, month string) []File {
	dir := filepath.Join(base, year, month)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return files
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".mp3") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, File{
			Path:    filepath.Join(dir, entry.Name()),
			Name:    entry.Name(),
			Year:    year,
			Month:   month,
			ModTime: info.ModTime(),
		})
	}
	return files
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
