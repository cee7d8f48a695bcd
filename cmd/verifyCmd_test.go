package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func runVerify(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetConfig()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	t.Cleanup(func() { rootCmd.SetOut(nil); rootCmd.SetArgs(nil) })
	rootCmd.SetArgs(append([]string{"verify"}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVerify_ValidSettings(t *testing.T) {
	tmp := t.TempDir()
	key := writeKey(t, tmp)
	dir := filepath.Join(tmp, "data")
	writeTemp(t, dir, "f", "x")
	p := writeTemp(t, tmp, "s.yaml", "ssh_key: "+key+"\nbackup_host: backup01\nbackup_src: ["+dir+", "+filepath.Join(tmp, "gone")+"]\nbackup_dest: /backups\n")

	out, err := runVerify(t, "--settings", p)
	require.NoError(t, err)
	require.Contains(t, out, "Settings OK")
	require.Contains(t, out, "gone not found, it will be skipped")
}

func TestVerify_MissingKeyFile(t *testing.T) {
	tmp := t.TempDir()
	p := writeTemp(t, tmp, "s.yaml", "ssh_key: "+filepath.Join(tmp, "nokey")+"\nbackup_host: backup01\nbackup_src: [/etc]\nbackup_dest: /backups\n")
	_, err := runVerify(t, "-s", p)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid settings: ssh key file")
}

func TestVerify_InvalidSettings(t *testing.T) {
	p := writeTemp(t, t.TempDir(), "s.yaml", "backup_host: backup01\n")
	_, err := runVerify(t, "--settings", p)
	require.Error(t, err)
	require.Contains(t, err.Error(), "ssh_key is invalid")
}

func TestVerify_RequiresSettingsPath(t *testing.T) {
	_, err := runVerify(t)
	require.Error(t, err)
	require.Contains(t, err.Error(), "--settings is required")
}
