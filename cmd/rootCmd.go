package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/fliphess/rsync-backup/internal/lg"
)

var rootCmd = &cobra.Command{
	Use:   "rsync-backup",
	Short: "Back up local directories to a remote host with rsync over SSH",
	Long: "Reads a YAML settings file, checks that the backup host is reachable over SSH, then rsyncs every " +
		"configured source directory to <backup_dest>/<local fqdn> on the backup host, stopping at the first failure.",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfgSettings == "" {
			return errors.New("--settings is required (path to settings YAML)")
		}
		if cfgSSHPort < 1 || cfgSSHPort > 65535 {
			return fmt.Errorf("%w: --ssh-port %d out of range", ErrConfiguration, cfgSSHPort)
		}

		runID := uuid.NewString()
		logger, closeLog, err := lg.New(lg.Config{
			Name:      "backup",
			Verbosity: cfgVerbosity,
			File:      cfgLogFile,
			Console:   cmd.ErrOrStderr(),
		})
		if err != nil {
			return fmt.Errorf("%w: %v", ErrConfiguration, err)
		}
		defer func() { _ = closeLog() }()
		defer func() { _ = logger.Sync() }()
		logger = logger.With(lg.String("run_id", runID))

		logger.Info(fmt.Sprintf("Reading settings file %s", cfgSettings))
		s, err := loadSettings(cfgSettings)
		if err != nil {
			logger.Error(fmt.Sprintf("Failed to parse settingsfile %s", cfgSettings), lg.Err(err))
			return fmt.Errorf("%w: failed to read settings: %v", ErrConfiguration, err)
		}

		o := newOrchestrator(logger, sshOptionsFromFlags(), runID)
		o.noop = cfgNoop
		runErr := o.run(cmd.Context(), s)

		if cfgNoop {
			for _, d := range o.report.Dirs {
				if d.Status == dirPlanned {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), d.Command)
				}
			}
		}

		if cfgReportPath != "" {
			if err := saveRunReport(cfgReportPath, o.report); err != nil {
				logger.Error("Failed to write run report", lg.String("path", cfgReportPath), lg.Err(err))
				if runErr == nil {
					return err
				}
			}
		}
		return runErr
	},
}

func saveRunReport(path string, r *runReport) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create report dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	if err := writeRunReport(f, r); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write YAML report: %w", err)
	}
	return f.Close()
}
