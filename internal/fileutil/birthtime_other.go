//go:build !linux && !darwin

package fileutil

import (
	"os"
	"time"
)

// BirthTime falls back to the modification time on platforms without a
// reliable creation-time source.
func BirthTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}
