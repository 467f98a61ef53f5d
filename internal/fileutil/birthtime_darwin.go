//go:build darwin

package fileutil

import (
	"os"
	"syscall"
	"time"
)

// BirthTime returns the file's creation time from the HFS+/APFS birth time.
func BirthTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	if stat, ok := info.Sys().(*syscall.Stat_t); ok {
		return time.Unix(stat.Birthtimespec.Sec, stat.Birthtimespec.Nsec), nil
	}
	return info.ModTime(), nil
}
