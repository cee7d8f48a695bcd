package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "RSYNC_BACKUP"

// init configures the persistent flags, binds them to RSYNC_BACKUP_*
// environment variables via Viper and registers the subcommands.
func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgSettings, "settings", "s", "", "Where to find the settings file (required)")
	pf.CountVarP(&cfgVerbosity, "verbosity", "v", "Raise console log level: -v warning, -vv info, -vvv debug")
	pf.StringVar(&cfgLogFile, "log-file", "/var/log/byte/backup-script.log", "Append-only debug log file (empty disables)")
	pf.StringVar(&cfgReportPath, "report", "", "Write a YAML run report to this path")
	pf.StringVarP(&cfgUser, "user", "u", "root", "Remote user for the probe and rsync")
	pf.IntVarP(&cfgSSHPort, "ssh-port", "p", defaultSSHPort, "SSH port of the backup host")
	pf.StringVar(&cfgKnownHosts, "known-hosts", filepath.Join(os.Getenv("HOME"), ".ssh", "known_hosts"), "Path to known_hosts file (used with --strict-host-key)")
	pf.BoolVar(&cfgStrictHost, "strict-host-key", false, "Verify the backup host key against --known-hosts")
	pf.DurationVar(&cfgConnTimeout, "conn-timeout", time.Second, "SSH connection timeout")
	pf.StringVar(&cfgRsyncPath, "rsync-path", "/usr/bin/rsync", "rsync binary")
	pf.StringVar(&cfgSSHPath, "ssh-path", "/usr/bin/ssh", "ssh binary used as rsync's remote shell")
	pf.StringVar(&cfgProbeCmd, "probe-command", "uptime", "Command run on the backup host to test connectivity")
	pf.BoolVar(&cfgNoop, "noop", false, "Do not probe or transfer; print the planned rsync commands")

	for _, name := range []string{
		"settings", "verbosity", "log-file", "report", "user", "ssh-port", "known-hosts", "strict-host-key",
		"conn-timeout", "rsync-path", "ssh-path", "probe-command", "noop",
	} {
		_ = viper.BindPFlag(name, pf.Lookup(name))
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	cobra.OnInitialize(applyEnvOverrides)

	rootCmd.AddCommand(verifyCmd)
}

// applyEnvOverrides copies values Viper resolved (flag or environment) back
// into the cfg* variables.
func applyEnvOverrides() {
	if v := viper.GetString("settings"); v != "" {
		cfgSettings = v
	}
	if v := viper.GetInt("verbosity"); v > cfgVerbosity {
		cfgVerbosity = v
	}
	if viper.IsSet("log-file") {
		cfgLogFile = viper.GetString("log-file")
	}
	if v := viper.GetString("report"); v != "" {
		cfgReportPath = v
	}
	if v := viper.GetString("user"); v != "" {
		cfgUser = v
	}
	if v := viper.GetInt("ssh-port"); v > 0 {
		cfgSSHPort = v
	}
	if v := viper.GetString("known-hosts"); v != "" {
		cfgKnownHosts = v
	}
	if v := viper.GetString("conn-timeout"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfgConnTimeout = d
		}
	}
	if v := viper.GetString("rsync-path"); v != "" {
		cfgRsyncPath = v
	}
	if v := viper.GetString("ssh-path"); v != "" {
		cfgSSHPath = v
	}
	if v := viper.GetString("probe-command"); v != "" {
		cfgProbeCmd = v
	}
	if viper.IsSet("strict-host-key") {
		cfgStrictHost = viper.GetBool("strict-host-key")
	}
	if viper.IsSet("noop") {
		cfgNoop = viper.GetBool("noop")
	}
}
