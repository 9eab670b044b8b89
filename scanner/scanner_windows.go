//go:build windows
// +build windows

package scanner

import (
	"os"
	"syscall"
	"time"
)

func fileTimes(_ string, info os.FileInfo) (created time.Time, modified time.Time) {
	stat, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return time.Time{}, time.Time{}
	}
	created = time.Unix(0, stat.CreationTime.Nanoseconds())
	modified = time.Unix(0, stat.LastWriteTime.Nanoseconds())
	return created, modified
}
