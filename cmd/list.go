package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shelftools/fav/cmd/config"
	"github.com/shelftools/fav/internal/container"
	"github.com/shelftools/fav/pkg/bookmark"
	"github.com/shelftools/fav/pkg/favorites"
)

func NewListCmd() *cobra.Command {
	var listJSON bool

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List favorites in stored order",
		Aliases: []string{"ls"},
		Long: `List the favorites in the order they appear in the sidebar.

Entries whose target may have moved since they were added are marked stale.

Examples:
  fav list
  fav list --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config.InitConfig()

			root, err := container.Load(config.ContainerPath())
			if err != nil {
				return err
			}
			store, err := favorites.Open(root, bookmark.NewFileCodec())
			if err != nil {
				return err
			}

			entries := store.List()
			if listJSON {
				return outputJSON(entries)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			for _, e := range entries {
				mark := ""
				if e.Stale {
					mark = "(stale)"
				}
				fmt.Fprintf(w, "%s\t%s\n", e.Path, mark)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")

	return cmd
}

func outputJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
