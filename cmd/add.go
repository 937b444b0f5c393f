package cmd

import (
	"github.com/spf13/cobra"

	"github.com/shelftools/fav/cmd/config"
	"github.com/shelftools/fav/internal/container"
	"github.com/shelftools/fav/internal/printer"
	"github.com/shelftools/fav/pkg/bookmark"
	"github.com/shelftools/fav/pkg/favorites"
)

func NewAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <path>...",
		Short: "Add paths to the favorites",
		Long: `Add one or more paths to the end of the favorites list.

Each path is tried independently: a path that cannot be added (missing
target, already present) is reported and the rest proceed. The container is
saved when at least one path was added.

Examples:
  fav add ~/Projects
  fav add ~/Documents ~/Downloads /tmp/scratch`,
		Args: cobra.MinimumNArgs(1),
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

			results, err := store.AddAll(args)
			for _, r := range results {
				if r.Err != nil {
					printer.Failure("%s: %v", r.Path, r.Err)
				} else {
					printer.Success("added %s", r.Path)
				}
			}
			if err != nil {
				return err
			}

			if err := container.Save(path, root); err != nil {
				return err
			}
			container.Reload(config.ReloadCommand())
			return nil
		},
	}

	return cmd
}
