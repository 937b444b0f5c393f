package cmd

import (
	"encoding/base64"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/shelftools/fav/cmd/config"
	"github.com/shelftools/fav/internal/container"
	"github.com/shelftools/fav/pkg/keyarch"
)

func NewDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the decoded container as YAML",
		Long: `Decode the whole container and print it as YAML, including the parts the
item commands never touch. Useful for inspecting what other tools wrote.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config.InitConfig()

			root, err := container.Load(config.ContainerPath())
			if err != nil {
				return err
			}
			out, err := yaml.Marshal(yamlNode(root))
			if err != nil {
				return fmt.Errorf("marshal container: %w", err)
			}
			fmt.Print(string(out))
			return nil
		},
	}

	return cmd
}

// yamlNode converts a value tree into yaml.Node form so that map key order
// survives; marshaling a plain Go map would reorder the keys.
func yamlNode(v keyarch.Value) *yaml.Node {
	switch val := v.(type) {
	case *keyarch.Map:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, key := range val.Keys() {
			child, _ := val.Get(key)
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
				yamlNode(child))
		}
		return n
	case *keyarch.Sequence:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range val.Values() {
			n.Content = append(n.Content, yamlNode(item))
		}
		return n
	case keyarch.Blob:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!binary", Value: base64.StdEncoding.EncodeToString(val)}
	case keyarch.Text:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(val)}
	case keyarch.Integer:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(int64(val), 10)}
	case keyarch.Boolean:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(bool(val))}
	case keyarch.Null:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}
