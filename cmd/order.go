package cmd

import (
	"fmt"
	"os"

	"github.com/marcus/sortable/internal/config"
	"github.com/marcus/sortable/internal/items"
	"github.com/marcus/sortable/internal/models"
	"github.com/marcus/sortable/internal/output"
	"github.com/spf13/cobra"
)

var orderCmd = &cobra.Command{
	Use:     "order",
	Aliases: []string{"ls"},
	Short:   "Print the items in list order",
	Long: `Print the items in list order. Orders from the file are normalized to
0..N-1 the same way the interactive list does.`,
	Example: `  sortable order --items groceries.yaml
  sortable order --plain | cut -d' ' -f2`,
	GroupID: "core",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("items")
		jsonOut, _ := cmd.Flags().GetBool("json")
		plain, _ := cmd.Flags().GetBool("plain")

		if path == "" {
			cfg, err := config.Load(getBaseDir())
			if err != nil {
				if jsonOut {
					output.JSONError(output.ErrCodeConfigError, err.Error())
				} else {
					output.Error("load config: %v", err)
				}
				return err
			}
			path = cfg.ItemsFile
		}

		var list []models.Item
		if path != "" {
			var err error
			list, err = items.Load(path)
			if err != nil {
				code := output.ErrCodeInvalidInput
				if os.IsNotExist(err) {
					code = output.ErrCodeNotFound
				}
				if jsonOut {
					output.JSONErrorWithDetails(code, err.Error(), map[string]interface{}{"path": path})
				} else {
					output.Error("load items: %v", err)
				}
				return err
			}
		} else {
			list = items.Default()
		}

		store := items.New(list)
		switch {
		case jsonOut:
			data, err := items.Encode(store.Items())
			if err != nil {
				return err
			}
			fmt.Println(string(data))
		case plain:
			for _, it := range store.Items() {
				fmt.Println(output.ItemOneLinerPlain(it))
			}
		case store.Len() == 0:
			fmt.Println("No items")
		default:
			fmt.Println(output.FormatOrder(store.Items()))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(orderCmd)
	orderCmd.Flags().StringP("items", "i", "", "Items file (JSON or YAML)")
	orderCmd.Flags().Bool("json", false, "Output as JSON")
	orderCmd.Flags().Bool("plain", false, "One unstyled line per item: order id checkbox title")
}
