package cmd

// settings models the YAML settings file consumed by rsync-backup. Every key
// is required; backup_src is processed in the order given.
type settings struct {
	SSHKey     string   `yaml:"ssh_key" validate:"required"`
	BackupHost string   `yaml:"backup_host" validate:"required,hostname_rfc1123|ip"`
	BackupSrc  []string `yaml:"backup_src" validate:"required,min=1,dive,required"`
	BackupDest string   `yaml:"backup_dest" validate:"required"`
}
