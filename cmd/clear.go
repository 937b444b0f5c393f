package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shelftools/fav/cmd/config"
	"github.com/shelftools/fav/internal/container"
	"github.com/shelftools/fav/internal/printer"
	"github.com/shelftools/fav/pkg/bookmark"
	"github.com/shelftools/fav/pkg/favorites"
)

func NewClearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every favorite",
		Long: `Empty the favorites list. The container's other properties are kept.

Examples:
  fav clear
  fav clear --yes`,
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

			if !yes {
				fmt.Printf("Remove all %d favorites? [y/N] ", store.Len())
				line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
				if answer := strings.ToLower(strings.TrimSpace(line)); answer != "y" && answer != "yes" {
					printer.Info("aborted")
					return nil
				}
			}

			store.Clear()
			if err := container.Save(path, root); err != nil {
				return err
			}
			container.Reload(config.ReloadCommand())
			printer.Success("cleared favorites")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
