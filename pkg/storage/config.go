package storage

import (
	"fmt"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config locates the storage base path.
type Config interface {
	BasePath() string
}

// LoadConfig resolves the storage path from a .planner config file or
// PLANNER_* environment variables, defaulting to ~/.planner.db.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("path", "~/.planner.db")
	v.SetConfigName(".planner") // .yaml is implicit
	v.SetEnvPrefix("PLANNER")
	v.AutomaticEnv()
	v.AddConfigPath("./")
	v.AddConfigPath("$HOME")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("storage: read config: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("storage: expand path: %w", err)
	}
	return &fileConfig{Path: path}, nil
}

// PathConfig pins the base path directly; used by tests and flags.
func PathConfig(path string) Config {
	return &fileConfig{Path: path}
}

type fileConfig struct {
	Path string `json:"path"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}
