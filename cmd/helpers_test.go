package cmd

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/fliphess/rsync-backup/internal/lg"
)

// writeTemp creates a file with content under dir and returns its path.
func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

// writeKey writes a fresh unencrypted RSA private key and returns its path.
func writeKey(t *testing.T, dir string) string {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	return writeTemp(t, dir, "id_rsa", string(pemBytes))
}

// observedLogger returns a debug-level logger and the recorder behind it.
func observedLogger() (lg.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return lg.FromCore(core), logs
}

// resetConfig clears global configuration so tests don't leak state.
func resetConfig() {
	viper.Reset()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	rootCmd.PersistentFlags().VisitAll(reset)
	rootCmd.Flags().VisitAll(reset)
	verifyCmd.Flags().VisitAll(reset)
	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) { _ = viper.BindPFlag(f.Name, f) })
	cfgSettings = ""
	cfgVerbosity = 0
	cfgLogFile = ""
	cfgReportPath = ""
	cfgUser = "root"
	cfgSSHPort = defaultSSHPort
	cfgKnownHosts = ""
	cfgStrictHost = false
	cfgConnTimeout = time.Second
	cfgRsyncPath = ""
	cfgSSHPath = ""
	cfgProbeCmd = ""
	cfgNoop = false
}

type fakeProber struct {
	result probeResult
	calls  int
}

func (f *fakeProber) probeConnectivity(ctx context.Context, host, keyPath string) probeResult {
	f.calls++
	return f.result
}

type transferCall struct {
	source, target, host, key string
}

type fakeTransferrer struct {
	failures map[string]int // source -> exit code
	calls    []transferCall
}

func (f *fakeTransferrer) transfer(ctx context.Context, sourceDir, targetPath, host, keyPath string) transferOutcome {
	f.calls = append(f.calls, transferCall{sourceDir, targetPath, host, keyPath})
	if code, ok := f.failures[sourceDir]; ok {
		return transferOutcome{exitCode: code, output: "rsync error\n"}
	}
	return transferOutcome{ok: true}
}

func (f *fakeTransferrer) sources() []string {
	out := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, c.source)
	}
	return out
}
