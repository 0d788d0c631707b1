package cmd

import (
	"fmt"

	"github.com/marcus/sortable/internal/config"
	"github.com/marcus/sortable/internal/output"
	"github.com/marcus/sortable/pkg/listview/keymap"
	"github.com/spf13/cobra"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Show key bindings and mouse gestures",
	Long: `Show the key bindings (including overrides from .sortable/config.yaml)
and the mouse gestures of the list.`,
	GroupID: "system",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(getBaseDir())
		if err != nil {
			output.Error("load config: %v", err)
			return err
		}

		km := keymap.NewRegistry()
		keymap.RegisterDefaults(km)
		if err := keymap.ApplyBindings(km, cfg.Bindings); err != nil {
			output.Warning("ignoring key bindings: %v", err)
		}

		text := km.GenerateHelp()
		if raw, _ := cmd.Flags().GetBool("raw"); raw {
			fmt.Println(text)
			return nil
		}
		rendered, err := output.RenderMarkdown(text)
		if err != nil {
			fmt.Println(text)
			return nil
		}
		fmt.Println(rendered)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(keysCmd)
	keysCmd.Flags().Bool("raw", false, "Print the markdown source")
}
