// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/storage"
)

// StorageOptions selects the storage location.
type StorageOptions struct {
	Path string
}

// AddStorageArgs wires the storage path flag.
func AddStorageArgs(cmd *cobra.Command, o *StorageOptions) {
	cmd.Flags().StringVar(&o.Path, "path", "",
		"Storage directory. Defaults to the configured path (~/.planner.db).")
}

// Persistence opens storage, honouring an explicit --path.
func (o *StorageOptions) Persistence() (storage.Persistence, error) {
	if o.Path != "" {
		return storage.Load(storage.PathConfig(o.Path))
	}
	return storage.Load(nil)
}
