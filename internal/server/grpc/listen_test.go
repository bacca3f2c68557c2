package grpcserver

import (
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListenUnix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.sock")

	l, err := ListenUnix(path)
	require.NoError(t, err)

	fi, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), fi.Mode().Perm())

	_, err = ListenUnix(path)
	require.ErrorIs(t, err, ErrDaemonRunning)

	require.NoError(t, l.Close())
	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err))

	l2, err := ListenUnix(path)
	require.NoError(t, err)
	require.NoError(t, l2.Close())
}

func TestListenUnix_ReplacesStaleSocket(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.sock")
	raw, err := net.Listen("unix", path)
	require.NoError(t, err)
	raw.(*net.UnixListener).SetUnlinkOnClose(false)
	require.NoError(t, raw.Close())
	_, err = os.Stat(path)
	require.NoError(t, err, "socket file left behind")

	l, err := ListenUnix(path)
	require.NoError(t, err)
	require.NoError(t, l.Close())
}

func TestListenUnix_RefusesRegularFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.sock")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	_, err := ListenUnix(path)
	require.ErrorContains(t, err, "not a socket")
}
