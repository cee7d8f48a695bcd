package cmd

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDialSSH_MissingKey(t *testing.T) {
	_, err := dialSSH("127.0.0.1:1", "root", filepath.Join(t.TempDir(), "nope"), "", false, 50*time.Millisecond)
	require.Error(t, err)
	require.Contains(t, err.Error(), "load key")
}

func TestDialSSH_StrictHostKeyMissingKnownHosts(t *testing.T) {
	tmp := t.TempDir()
	_, err := dialSSH("127.0.0.1:1", "root", writeKey(t, tmp), filepath.Join(tmp, "nope"), true, 50*time.Millisecond)
	require.Error(t, err)
	require.Contains(t, err.Error(), "strict-host-key is enabled")
}

func TestDialSSH_ConnectionRefused(t *testing.T) {
	_, err := dialSSH("127.0.0.1:1", "root", writeKey(t, t.TempDir()), "", false, 50*time.Millisecond)
	require.Error(t, err)
}

func TestSSHTarget(t *testing.T) {
	require.Equal(t, "backup01:22", sshTarget("backup01", 0))
	require.Equal(t, "backup01:2222", sshTarget("backup01", 2222))
	require.Equal(t, "10.0.0.1:22", sshTarget("10.0.0.1", 22))
	require.Equal(t, "[::1]:22", sshTarget("::1", 0))
}
