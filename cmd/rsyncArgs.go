package cmd

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// sshCommand renders the remote-shell string rsync receives through -e. rsync
// splits it on whitespace honouring quotes, so the key path is shell-quoted.
func sshCommand(opts sshOptions, keyPath string) string {
	knownHosts, strict := "/dev/null", "no"
	if opts.StrictHostKey {
		knownHosts, strict = shellQuote(opts.KnownHosts), "yes"
	}
	parts := []string{shellQuote(opts.SSHPath)}
	if opts.Port != 0 && opts.Port != defaultSSHPort {
		parts = append(parts, "-p", strconv.Itoa(opts.Port))
	}
	parts = append(parts,
		"-o", "UserKnownHostsFile="+knownHosts,
		"-o", "StrictHostKeyChecking="+strict,
		"-i", shellQuote(keyPath),
		"-x",
		"-o", fmt.Sprintf("ConnectTimeout=%d", connectTimeoutSeconds(opts)),
		"-o", "PasswordAuthentication=no",
	)
	return strings.Join(parts, " ")
}

// connectTimeoutSeconds rounds the connection timeout up to whole seconds, the
// only unit ssh's ConnectTimeout accepts.
func connectTimeoutSeconds(opts sshOptions) int {
	s := int(math.Ceil(opts.ConnTimeout.Seconds()))
	if s < 1 {
		return 1
	}
	return s
}

// rsyncArgs builds the argument vector (without the binary) for a recursive,
// archive-mode, verbose sync of sourceDir to user@host:targetPath.
func rsyncArgs(opts sshOptions, sourceDir, targetPath, host, keyPath string) []string {
	return []string{
		"--recursive", "-av",
		"-e", sshCommand(opts, keyPath),
		sourceDir,
		fmt.Sprintf("%s@%s:%s", opts.User, host, targetPath),
	}
}

// rsyncCommandLine renders the full invocation for logs and --noop output.
func rsyncCommandLine(opts sshOptions, sourceDir, targetPath, host, keyPath string) string {
	args := rsyncArgs(opts, sourceDir, targetPath, host, keyPath)
	quoted := make([]string, 0, len(args)+1)
	quoted = append(quoted, shellQuote(opts.RsyncPath))
	for _, a := range args {
		quoted = append(quoted, shellQuote(a))
	}
	return strings.Join(quoted, " ")
}
