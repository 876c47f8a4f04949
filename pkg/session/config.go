package session

import (
	"log"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config tells the client where the token slot lives and which service
// to talk to.
type Config interface {
	BasePath() string
	APIBase() string
}

func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/.habit.db")
	viper.SetDefault("api", "http://localhost:5000")
	viper.SetConfigName(".habit") // .yaml is implicit
	viper.SetEnvPrefix("HABIT")
	viper.AutomaticEnv()

	if override := os.Getenv("HABIT_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatalf("error reading config file: %v", err)
			return nil, err
		}
	}

	path := viper.GetString("path")
	if expanded, err := homedir.Expand(path); err == nil {
		path = expanded
	}

	return &fileConfig{Path: path, API: viper.GetString("api")}, nil
}

type fileConfig struct {
	Path string `json:"path"`
	API  string `json:"api"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) APIBase() string {
	return f.API
}
