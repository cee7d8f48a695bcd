// Package cmd implements the rsync-backup command-line interface.
//
// A run reads the YAML settings file, verifies the SSH key exists, probes the
// backup host once over SSH and then rsyncs each source directory, in order,
// to <backup_dest>/<local fqdn> on that host. The first failed transfer ends
// the run; missing source directories are only skipped.
//
// Start with rootCmd.go for the CLI wiring, orchestrator.go for the run
// policy, prober.go for the connectivity check and transferExecutor.go for
// the rsync subprocess handling.
package cmd
