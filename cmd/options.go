package cmd

import "time"

// sshOptions is the remote-shell policy shared by the probe and by rsync's
// transport. Host keys are not verified unless StrictHostKey is set.
type sshOptions struct {
	User          string
	StrictHostKey bool
	KnownHosts    string
	Port          int
	ConnTimeout   time.Duration
	SSHPath       string
	RsyncPath     string
	ProbeCommand  string
}

const defaultSSHPort = 22

func defaultSSHOptions() sshOptions {
	return sshOptions{
		User:         "root",
		Port:         defaultSSHPort,
		ConnTimeout:  time.Second,
		SSHPath:      "/usr/bin/ssh",
		RsyncPath:    "/usr/bin/rsync",
		ProbeCommand: "uptime",
	}
}
