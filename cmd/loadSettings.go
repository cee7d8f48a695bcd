package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// loadSettings reads and validates the YAML settings file. Any failure here is
// fatal to the run: a missing or malformed file never yields a partially
// populated settings value.
func loadSettings(path string) (*settings, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(b))) == 0 {
		return nil, fmt.Errorf("settings file %s is empty", path)
	}
	s := &settings{}
	if err := yamlUnmarshal(b, s); err != nil {
		return nil, err
	}
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, fmt.Errorf("%s is invalid (%s)", yamlKey(verrs[0]), verrs[0].Tag())
		}
		return nil, err
	}
	return s, nil
}

// yamlKey maps a validation error back to the settings key the operator wrote.
func yamlKey(fe validator.FieldError) string {
	switch fe.StructField() {
	case "SSHKey":
		return "ssh_key"
	case "BackupHost":
		return "backup_host"
	case "BackupDest":
		return "backup_dest"
	default:
		if strings.HasPrefix(fe.StructField(), "BackupSrc") {
			return strings.Replace(fe.StructField(), "BackupSrc", "backup_src", 1)
		}
		return fe.Field()
	}
}

// checkKeyFile enforces that the SSH private key is a readable regular file
// before any network activity is attempted.
func checkKeyFile(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("ssh key file %s not found: %w", path, err)
	}
	if !fi.Mode().IsRegular() {
		return fmt.Errorf("ssh key file %s is not a regular file", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("ssh key file %s is not readable: %w", path, err)
	}
	return f.Close()
}
