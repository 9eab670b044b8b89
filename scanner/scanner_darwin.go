//go:build darwin
// +build darwin

package scanner

import (
	"os"
	"syscall"
	"time"
)

// fileTimes returns creation and modification times. macOS exposes the real
// birth time through Birthtimespec.
func fileTimes(_ string, info os.FileInfo) (created time.Time, modified time.Time) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return time.Time{}, time.Time{}
	}
	created = time.Unix(stat.Birthtimespec.Sec, stat.Birthtimespec.Nsec)
	modified = time.Unix(stat.Mtimespec.Sec, stat.Mtimespec.Nsec)
	return created, modified
}
