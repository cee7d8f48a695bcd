package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// verifyCmd checks a settings file without touching the network.
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Validate a settings file and its SSH key",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfgSettings == "" {
			return errors.New("--settings is required (path to settings YAML)")
		}
		s, err := loadSettings(cfgSettings)
		if err != nil {
			return fmt.Errorf("invalid settings: %w", err)
		}
		if err := checkKeyFile(s.SSHKey); err != nil {
			return fmt.Errorf("invalid settings: %w", err)
		}
		for _, dir := range s.BackupSrc {
			if !isDir(dir) {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "warning: %s not found, it will be skipped\n", dir)
			}
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Settings OK")
		return nil
	},
}
