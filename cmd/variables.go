package cmd

import "time"

// Version is the CLI version string injected at build time via -ldflags.
var Version = "0.1.0"

var (
	// Configuration populated by flags and/or RSYNC_BACKUP_* environment
	// variables, shared by the root command and its subcommands.
	cfgSettings    string
	cfgVerbosity   int
	cfgLogFile     string
	cfgReportPath  string
	cfgUser        string
	cfgSSHPort     int
	cfgKnownHosts  string
	cfgStrictHost  bool
	cfgConnTimeout time.Duration
	cfgRsyncPath   string
	cfgSSHPath     string
	cfgProbeCmd    string
	cfgNoop        bool
)

// Allow tests to stub dialing, remote execution and name resolution.
var (
	dialSSHFunc          = dialSSH
	runRemoteCommandFunc = runRemoteCommand
	fqdnFunc             = localFQDN
)

// sshOptionsFromFlags assembles the remote-shell policy from the current
// configuration.
func sshOptionsFromFlags() sshOptions {
	opts := defaultSSHOptions()
	if cfgUser != "" {
		opts.User = cfgUser
	}
	if cfgSSHPort > 0 {
		opts.Port = cfgSSHPort
	}
	if cfgConnTimeout > 0 {
		opts.ConnTimeout = cfgConnTimeout
	}
	if cfgRsyncPath != "" {
		opts.RsyncPath = cfgRsyncPath
	}
	if cfgSSHPath != "" {
		opts.SSHPath = cfgSSHPath
	}
	if cfgProbeCmd != "" {
		opts.ProbeCommand = cfgProbeCmd
	}
	opts.StrictHostKey = cfgStrictHost
	opts.KnownHosts = cfgKnownHosts
	return opts
}
