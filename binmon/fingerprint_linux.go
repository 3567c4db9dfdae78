package binmon

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

const statxMask = unix.STATX_BTIME | unix.STATX_CTIME | unix.STATX_INO

func takeFingerprint(path string, now time.Time) (Fingerprint, error) {
	var st unix.Statx_t

	err := unix.Statx(unix.AT_FDCWD, path, 0, statxMask, &st)
	switch {
	case err == nil:
		// ok
	case errors.Is(err, unix.ENOENT):
		return Fingerprint{Taken: now}, nil
	case errors.Is(err, unix.ENOSYS):
		// Kernels older than 4.11.
		return statFingerprint(path, now)
	default:
		return Fingerprint{}, &os.PathError{Op: "statx", Path: path, Err: err}
	}

	ts := st.Ctime
	if st.Mask&unix.STATX_BTIME != 0 {
		ts = st.Btime
	}

	return Fingerprint{
		Taken:   now,
		Created: time.Unix(ts.Sec, int64(ts.Nsec)),
		Inode:   st.Ino,
		Exists:  true,
	}, nil
}
