package cmd

import (
	"context"
	"fmt"
	"os"
	"path"
	"time"

	"github.com/fliphess/rsync-backup/internal/lg"
)

type runState int

const (
	stateInit runState = iota
	stateConfigValidated
	stateProbed
	stateSyncing
	stateDone
	stateAborted
)

func (s runState) String() string {
	switch s {
	case stateInit:
		return "init"
	case stateConfigValidated:
		return "config_validated"
	case stateProbed:
		return "probed"
	case stateSyncing:
		return "syncing"
	case stateDone:
		return "done"
	case stateAborted:
		return "aborted"
	}
	return fmt.Sprintf("runState(%d)", int(s))
}

type connectivityProber interface {
	probeConnectivity(ctx context.Context, host, keyPath string) probeResult
}

type directoryTransferrer interface {
	transfer(ctx context.Context, sourceDir, targetPath, host, keyPath string) transferOutcome
}

// orchestrator owns the continue-or-abort policy of a backup run: one probe,
// then one transfer per source directory in configuration order, stopping at
// the first failed transfer. Directories after a failure are never touched.
type orchestrator struct {
	log         lg.Logger
	prober      connectivityProber
	transferrer directoryTransferrer
	fqdn        func() (string, error)
	opts        sshOptions
	noop        bool

	state  runState
	report *runReport
}

func newOrchestrator(log lg.Logger, opts sshOptions, runID string) *orchestrator {
	return &orchestrator{
		log:         log,
		prober:      newSSHProber(log, opts),
		transferrer: newRsyncExecutor(log, opts),
		fqdn:        fqdnFunc,
		opts:        opts,
		report:      newRunReport(runID, ""),
	}
}

// run executes the backup described by s. A nil error means every directory
// was either transferred or skipped because it does not exist locally.
func (o *orchestrator) run(ctx context.Context, s *settings) error {
	start := time.Now()
	o.state = stateInit
	o.report.BackupHost = s.BackupHost

	if err := checkKeyFile(s.SSHKey); err != nil {
		o.log.Error(fmt.Sprintf("SSH Keysfile %s not found!", s.SSHKey), lg.Err(err))
		return o.abort(s, fmt.Errorf("%w: %v", ErrConfiguration, err))
	}
	o.state = stateConfigValidated

	if o.noop {
		o.log.Info("Noop mode: not testing ssh connectivity and not running rsync")
	} else {
		o.log.Info(fmt.Sprintf("Testing remote server %s for ssh connectivity", s.BackupHost))
		res := o.prober.probeConnectivity(ctx, s.BackupHost, s.SSHKey)
		if !res.ok {
			o.log.Error(fmt.Sprintf("Failed to connect to %s", s.BackupHost), lg.String("reason", res.message))
			return o.abort(s, fmt.Errorf("%w: %s", ErrConnectivity, res.message))
		}
	}
	o.state = stateProbed

	fqdn, err := o.fqdn()
	if err != nil {
		o.log.Error("Could not determine the local fully-qualified domain name", lg.Err(err))
		return o.abort(s, fmt.Errorf("%w: resolve local fqdn: %v", ErrConfiguration, err))
	}
	target := path.Join(s.BackupDest, fqdn)
	o.report.Target = target

	o.log.Info("Starting backup routine")
	o.state = stateSyncing
	for _, dir := range s.BackupSrc {
		if !isDir(dir) {
			o.log.Error(fmt.Sprintf("Dir %s not found! Skipping!", dir), lg.Err(ErrMissingSource))
			o.report.add(dirResult{Source: dir, Status: dirSkipped})
			continue
		}

		if o.noop {
			line := rsyncCommandLine(o.opts, dir, target, s.BackupHost, s.SSHKey)
			o.log.Info("Planned: " + line)
			o.report.add(dirResult{Source: dir, Status: dirPlanned, Command: line})
			continue
		}

		o.log.Info(fmt.Sprintf("Rsyncing sourcedir %s to %s:%s", dir, s.BackupHost, target))
		out := o.transferrer.transfer(ctx, dir, target, s.BackupHost, s.SSHKey)
		if !out.ok {
			code := out.exitCode
			o.report.add(dirResult{Source: dir, Status: dirFailed, ExitCode: &code})
			o.log.Error(fmt.Sprintf("Failed to sync %s to %s:%s", dir, s.BackupHost, target), lg.Int("exit_code", code))
			return o.abort(s, fmt.Errorf("%w: %s exited with status %d", ErrTransfer, dir, code))
		}
		o.report.add(dirResult{Source: dir, Status: dirTransferred})
	}

	o.state = stateDone
	o.report.finish(o.state, nil, s.BackupSrc)
	o.log.Info("All dirs done!", lg.Since(start))
	return nil
}

func (o *orchestrator) abort(s *settings, err error) error {
	o.state = stateAborted
	o.report.finish(o.state, err, s.BackupSrc)
	return err
}

func isDir(p string) bool {
	fi, err := os.Stat(p)
	return err == nil && fi.IsDir()
}
