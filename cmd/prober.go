package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/fliphess/rsync-backup/internal/lg"
)

// probeResult is the outcome of the pre-flight reachability check.
type probeResult struct {
	ok      bool
	message string
}

// sshProber checks that the backup host accepts our key and can run a
// trivial command. The check is advisory: a later transfer may still fail.
type sshProber struct {
	log  lg.Logger
	opts sshOptions
}

func newSSHProber(log lg.Logger, opts sshOptions) *sshProber {
	return &sshProber{log: log, opts: opts}
}

// probeConnectivity never returns an error: every transport problem is
// logged and folded into a failed probeResult.
func (p *sshProber) probeConnectivity(ctx context.Context, host, keyPath string) probeResult {
	target := sshTarget(host, p.opts.Port)
	client, err := dialSSHFunc(target, p.opts.User, keyPath, p.opts.KnownHosts, p.opts.StrictHostKey, p.opts.ConnTimeout)
	if err != nil {
		p.log.Error("Testing ssh gave an error", lg.String("host", target), lg.Err(err))
		return probeResult{message: fmt.Sprintf("ssh connection to %s failed: %v", target, err)}
	}
	defer func() {
		if client != nil {
			_ = client.Close()
		}
	}()

	out, exitCode, err := runRemoteCommandFunc(ctx, sshClientWrapper{client}, p.opts.ProbeCommand)
	if len(out) > 0 {
		p.log.Debug("probe output", lg.String("output", strings.TrimSpace(string(out))))
	}
	if exitCode == 0 && err == nil {
		return probeResult{ok: true}
	}
	if exitCode > 0 {
		return probeResult{message: fmt.Sprintf("%q on %s exited with status %d", p.opts.ProbeCommand, target, exitCode)}
	}
	p.log.Error("Testing ssh gave an error", lg.String("host", target), lg.Err(err))
	return probeResult{message: fmt.Sprintf("%q on %s failed: %v", p.opts.ProbeCommand, target, err)}
}
