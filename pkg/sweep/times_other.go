//go:build !linux

package sweep

import (
	"io/fs"
	"time"
)

// fileTimes falls back to the modification time for all three grounds
// on platforms where the stat access and change times are not portably
// available. Scratch purging is deployed on Linux; other platforms get
// a conservative approximation.
func fileTimes(info fs.FileInfo) (atime, ctime, mtime time.Time) {
	mtime = info.ModTime()
	return mtime, mtime, mtime
}
