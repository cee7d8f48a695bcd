package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/fliphess/rsync-backup/internal/lg"
)

// transferOutcome is Success (ok) or Failure carrying rsync's exit code and
// everything it printed.
type transferOutcome struct {
	ok       bool
	exitCode int
	output   string
}

// rsyncExecutor runs one rsync subprocess per source directory.
type rsyncExecutor struct {
	log  lg.Logger
	opts sshOptions
}

func newRsyncExecutor(log lg.Logger, opts sshOptions) *rsyncExecutor {
	return &rsyncExecutor{log: log, opts: opts}
}

// transfer syncs sourceDir to host:targetPath and blocks until rsync exits.
// rsync's stderr is merged into stdout; each line is logged at debug level
// while it is also captured for the failure report.
func (e *rsyncExecutor) transfer(ctx context.Context, sourceDir, targetPath, host, keyPath string) transferOutcome {
	cmd := exec.CommandContext(ctx, e.opts.RsyncPath, rsyncArgs(e.opts, sourceDir, targetPath, host, keyPath)...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return e.failed(sourceDir, targetPath, host, -1, err.Error())
	}
	cmd.Stderr = cmd.Stdout

	e.log.Debug("starting rsync", lg.String("command", rsyncCommandLine(e.opts, sourceDir, targetPath, host, keyPath)))
	if err := cmd.Start(); err != nil {
		return e.failed(sourceDir, targetPath, host, -1, fmt.Sprintf("start %s: %v", e.opts.RsyncPath, err))
	}

	var captured strings.Builder
	streamErr := streamLines(stdout, func(line string) {
		e.log.Debug(line)
		captured.WriteString(line)
		captured.WriteByte('\n')
	})
	waitErr := cmd.Wait()

	if waitErr == nil && streamErr == nil {
		e.log.Info(fmt.Sprintf("Rsync for %s to %s at %s [OK]", sourceDir, targetPath, host))
		return transferOutcome{ok: true}
	}

	exitCode := -1
	var ee *exec.ExitError
	switch {
	case errors.As(waitErr, &ee):
		exitCode = ee.ExitCode()
	case waitErr != nil:
		captured.WriteString(waitErr.Error())
	default:
		captured.WriteString("reading rsync output: " + streamErr.Error())
	}
	return e.failed(sourceDir, targetPath, host, exitCode, captured.String())
}

func (e *rsyncExecutor) failed(sourceDir, targetPath, host string, exitCode int, output string) transferOutcome {
	e.log.Error(fmt.Sprintf("Rsync for %s to %s at %s: exitcode: %d [FAILED]", sourceDir, targetPath, host, exitCode),
		lg.Int("exit_code", exitCode))
	e.log.Debug("Output was: " + output)
	return transferOutcome{exitCode: exitCode, output: output}
}
