package cmd

import (
	"bufio"
	"bytes"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

// Per-directory states recorded in the run report.
const (
	dirTransferred  = "transferred"
	dirSkipped      = "skipped"
	dirFailed       = "failed"
	dirPlanned      = "planned"
	dirNotAttempted = "not_attempted"
)

// runReport summarises one backup run; --report writes it to disk.
type runReport struct {
	RunID      string      `yaml:"run_id"`
	BackupHost string      `yaml:"backup_host"`
	Target     string      `yaml:"target,omitempty"`
	Started    string      `yaml:"started"`
	Finished   string      `yaml:"finished,omitempty"`
	State      string      `yaml:"state"`
	Error      string      `yaml:"error,omitempty"`
	Dirs       []dirResult `yaml:"dirs"`
}

// dirResult records what happened to one configured source directory.
type dirResult struct {
	Source   string `yaml:"source"`
	Status   string `yaml:"status"`
	ExitCode *int   `yaml:"exit_code,omitempty"`
	Command  string `yaml:"command,omitempty"`
}

func newRunReport(runID, host string) *runReport {
	return &runReport{
		RunID:      runID,
		BackupHost: host,
		Started:    time.Now().Format(time.RFC3339),
		State:      stateInit.String(),
		Dirs:       []dirResult{},
	}
}

func (r *runReport) add(res dirResult) {
	r.Dirs = append(r.Dirs, res)
}

// finish stamps the terminal state. On abort every directory after the last
// recorded one is marked as never attempted.
func (r *runReport) finish(state runState, err error, sources []string) {
	r.State = state.String()
	r.Finished = time.Now().Format(time.RFC3339)
	if err != nil {
		r.Error = err.Error()
	}
	if state == stateAborted && len(r.Dirs) <= len(sources) {
		for _, src := range sources[len(r.Dirs):] {
			r.add(dirResult{Source: src, Status: dirNotAttempted})
		}
	}
}

// writeRunReport serializes the report as YAML with two-space indentation.
func writeRunReport(w io.Writer, r *runReport) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		_ = enc.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	if _, err := bw.Write(buf.Bytes()); err != nil {
		return err
	}
	return bw.Flush()
}
