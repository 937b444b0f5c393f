// Package config wires viper for the CLI: config file, environment
// overrides, and defaults for where the container lives.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// InitConfig sets up viper. Precedence is viper's natural ordering: explicit
// config file, then FAV_* environment variables, then defaults.
func InitConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		configDir := filepath.Join(home, ".config", "fav")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("FAV")

	viper.SetDefault("data_dir", filepath.Join(os.Getenv("HOME"), ".local", "share", "fav"))
	viper.SetDefault("container_path", "")
	viper.SetDefault("reload_command", "")

	// A missing config file is fine; defaults and env cover everything.
	_ = viper.ReadInConfig()
}

// ContainerPath returns the path of the favorites container file.
func ContainerPath() string {
	if p := viper.GetString("container_path"); p != "" {
		return p
	}
	return filepath.Join(viper.GetString("data_dir"), "favorites.karc")
}

// ReloadCommand returns the shell command run after a successful save, or
// empty when no reload is configured.
func ReloadCommand() string {
	return viper.GetString("reload_command")
}

// AddGlobalFlags registers the persistent flags shared by every command.
func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/fav/config.yaml)")
}
