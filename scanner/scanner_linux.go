//go:build linux
// +build linux

package scanner

import (
	"os"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// fileTimes returns creation and modification times. Linux has no birth time
// in stat(2); statx reports it on filesystems that record one, and the ctime
// is the fallback.
func fileTimes(path string, info os.FileInfo) (created time.Time, modified time.Time) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return time.Time{}, time.Time{}
	}
	modified = time.Unix(stat.Mtim.Sec, stat.Mtim.Nsec)
	created = time.Unix(stat.Ctim.Sec, stat.Ctim.Nsec)

	var stx unix.Statx_t
	if err := unix.Statx(unix.AT_FDCWD, path, unix.AT_SYMLINK_NOFOLLOW, unix.STATX_BTIME, &stx); err == nil {
		if stx.Mask&unix.STATX_BTIME != 0 && stx.Btime.Sec > 0 {
			created = time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec))
		}
	}
	return created, modified
}
