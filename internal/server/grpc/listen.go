package grpcserver

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// ErrDaemonRunning is returned by ListenUnix when another daemon owns the socket.
var ErrDaemonRunning = errors.New("another keyvaultd is running")

// UnixListener is a unix socket listener guarded by an flock next to the socket.
type UnixListener struct {
	net.Listener
	path string
	lock *flock.Flock
}

// ListenUnix creates the socket at path with owner-only permissions. A socket left
// behind by a dead daemon is replaced.
func ListenUnix(path string) (*UnixListener, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	fl := flock.New(path + ".lock")
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", fl.Path(), err)
	}
	if !ok {
		return nil, ErrDaemonRunning
	}

	if err := removeStale(path); err != nil {
		_ = fl.Unlock()
		return nil, err
	}
	lis, err := net.Listen("unix", path)
	if err != nil {
		_ = fl.Unlock()
		return nil, err
	}
	if err := os.Chmod(path, 0o600); err != nil {
		_ = lis.Close()
		_ = fl.Unlock()
		return nil, err
	}
	return &UnixListener{Listener: lis, path: path, lock: fl}, nil
}

// Close stops listening, removes the socket and releases the lock.
func (l *UnixListener) Close() error {
	err := l.Listener.Close()
	_ = os.Remove(l.path)
	if uerr := l.lock.Unlock(); err == nil {
		err = uerr
	}
	return err
}

func removeStale(path string) error {
	fi, err := os.Lstat(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if fi.Mode()&os.ModeSocket == 0 {
		return fmt.Errorf("%s exists and is not a socket", path)
	}
	if c, err := net.DialTimeout("unix", path, 200*time.Millisecond); err == nil {
		_ = c.Close()
		return ErrDaemonRunning
	}
	return os.Remove(path)
}
