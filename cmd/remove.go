package cmd

import (
	"github.com/spf13/cobra"

	"github.com/shelftools/fav/cmd/config"
	"github.com/shelftools/fav/internal/container"
	"github.com/shelftools/fav/internal/printer"
	"github.com/shelftools/fav/pkg/bookmark"
	"github.com/shelftools/fav/pkg/favorites"
)

func NewRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "remove <path>",
		Short:   "Remove a path from the favorites",
		Aliases: []string{"rm"},
		Long: `Remove the first favorite resolving to the given path.

Removing a path that is not in the list is a no-op, not an error.

Examples:
  fav remove ~/Downloads`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config.InitConfig()
			path := config.ContainerPath()

			root, err := container.Load(path)
			if err != nil {
				return err
			}
			store, err := favorites.Open(root, bookmark.NewFileCodec())
			if err != nil {
				return err
			}

			removed, err := store.Remove(args[0])
			if err != nil {
				return err
			}
			if !removed {
				printer.Info("no favorite for %s", args[0])
				return nil
			}

			if err := container.Save(path, root); err != nil {
				return err
			}
			container.Reload(config.ReloadCommand())
			printer.Success("removed %s", args[0])
			return nil
		},
	}

	return cmd
}
