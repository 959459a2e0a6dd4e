//go:build linux

package sweep

import (
	"io/fs"
	"syscall"
	"time"
)

// fileTimes extracts access, inode-change, and modification times from
// a stat result.
func fileTimes(info fs.FileInfo) (atime, ctime, mtime time.Time) {
	mtime = info.ModTime()
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return mtime, mtime, mtime
	}
	atime = time.Unix(st.Atim.Sec, st.Atim.Nsec)
	ctime = time.Unix(st.Ctim.Sec, st.Ctim.Nsec)
	return atime, ctime, mtime
}
