package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/shelftools/fav/cmd"
	"github.com/shelftools/fav/cmd/config"
)

func main() {
	logrus.SetOutput(os.Stderr)
	logrus.SetLevel(logrus.WarnLevel)
	if os.Getenv("FAV_DEBUG") != "" {
		logrus.SetLevel(logrus.DebugLevel)
	}

	rootCmd := &cobra.Command{
		Use:   "fav",
		Short: "Manage the favorites sidebar list",
		Long: `fav maintains the ordered list of favorite locations shown in the
sidebar, persisted in a keyed-archive container file.

The container is read, modified, and written back atomically on every
mutating command; a configured reload command can notify the consuming UI
after each save.`,
		SilenceUsage: true,
	}
	config.AddGlobalFlags(rootCmd)

	rootCmd.AddCommand(cmd.NewListCmd())
	rootCmd.AddCommand(cmd.NewAddCmd())
	rootCmd.AddCommand(cmd.NewRemoveCmd())
	rootCmd.AddCommand(cmd.NewClearCmd())
	rootCmd.AddCommand(cmd.NewDumpCmd())
	rootCmd.AddCommand(cmd.NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
