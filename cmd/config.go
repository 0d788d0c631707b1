package cmd

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/marcus/sortable/internal/config"
	"github.com/marcus/sortable/internal/models"
	"github.com/marcus/sortable/internal/output"
	"github.com/marcus/sortable/pkg/listview/keymap"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// validConfigKeys lists the supported config keys for set.
var validConfigKeys = []string{
	"row_height",
	"long_press",
	"settle_duration",
	"frame_interval",
	"move_tolerance",
	"edge_inset",
	"items_file",
	"log.level",
	"log.format",
	"log.file",
}

func isValidConfigKey(key string) bool {
	for _, k := range validConfigKeys {
		if k == key {
			return true
		}
	}
	return false
}

// setConfigValue parses val and stores it under key
func setConfigValue(cfg *models.Config, key, val string) error {
	parseInt := func() (int, error) {
		n, err := strconv.Atoi(val)
		if err != nil {
			return 0, fmt.Errorf("invalid integer %q for %s", val, key)
		}
		return n, nil
	}
	parseDuration := func() (time.Duration, error) {
		d, err := time.ParseDuration(val)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q for %s (e.g. 500ms)", val, key)
		}
		return d, nil
	}

	var err error
	switch key {
	case "row_height":
		cfg.RowHeight, err = parseInt()
	case "move_tolerance":
		cfg.MoveTolerance, err = parseInt()
	case "edge_inset":
		cfg.EdgeInset, err = parseInt()
	case "long_press":
		cfg.LongPress, err = parseDuration()
	case "settle_duration":
		cfg.SettleDuration, err = parseDuration()
	case "frame_interval":
		cfg.FrameInterval, err = parseDuration()
	case "items_file":
		cfg.ItemsFile = val
	case "log.level":
		cfg.Log.Level = val
	case "log.format":
		cfg.Log.Format = val
	case "log.file":
		cfg.Log.File = val
	default:
		err = fmt.Errorf("unknown config key: %s", key)
	}
	return err
}

var configCmd = &cobra.Command{
	Use:     "config",
	Short:   "Manage sortable configuration",
	GroupID: "system",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config to .sortable/config.yaml",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := getBaseDir()
		force, _ := cmd.Flags().GetBool("force")
		if _, err := os.Stat(config.Path(dir)); err == nil && !force {
			output.Warning("%s already exists (use --force to overwrite)", config.Path(dir))
			return nil
		}
		if err := config.Save(dir, config.Default()); err != nil {
			output.Error("save config: %v", err)
			return err
		}
		output.Success("Wrote %s", config.Path(dir))
		output.Info("Override keys with 'sortable config bind <context:key> <command>'")
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")
		cfg, err := config.Load(getBaseDir())
		if err != nil {
			if jsonOut {
				output.JSONError(output.ErrCodeConfigError, err.Error())
			} else {
				output.Error("load config: %v", err)
			}
			return err
		}
		if jsonOut {
			return output.JSON(cfg)
		}
		bindings := cfg.Bindings
		cfg.Bindings = nil
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		fmt.Print(string(data))

		fmt.Print(output.SectionHeader("bindings"))
		if len(bindings) == 0 {
			fmt.Println(output.IndentString("(defaults; for example:)", 2))
			bindings = keymap.ExampleBindings()
		}
		keys := make([]string, 0, len(bindings))
		for k := range bindings {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Println(output.IndentString(fmt.Sprintf("%s: %s", k, bindings[k]), 2))
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if !isValidConfigKey(key) {
			output.Error("unknown config key: %s", key)
			fmt.Println("Valid keys:", strings.Join(validConfigKeys, ", "))
			return fmt.Errorf("unknown config key: %s", key)
		}

		err := config.Update(getBaseDir(), func(cfg *models.Config) error {
			return setConfigValue(cfg, key, val)
		})
		if err != nil {
			output.Error("%v", err)
			return err
		}
		output.Success("Set %s = %s", key, val)
		return nil
	},
}

var configBindCmd = &cobra.Command{
	Use:   "bind <context:key> [command]",
	Short: "Override a key binding (omit the command to remove the override)",
	Example: `  sortable config bind list:d remove
  sortable config bind global:ctrl+q quit
  sortable config bind list:d`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		binding := args[0]
		command := ""
		if len(args) == 2 {
			command = args[1]
			if !keymap.IsCommand(keymap.Command(command)) {
				output.Error("unknown command: %s", command)
				names := make([]string, 0)
				for _, c := range keymap.AllCommands() {
					names = append(names, string(c))
				}
				fmt.Println("Commands:", strings.Join(names, ", "))
				return fmt.Errorf("unknown command: %s", command)
			}
		}

		if err := config.SetBinding(getBaseDir(), binding, command); err != nil {
			output.Error("%v", err)
			return err
		}
		if command == "" {
			output.Success("Removed binding %s", binding)
		} else {
			output.Success("Bound %s to %s", binding, command)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configShowCmd, configSetCmd, configBindCmd)
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing config")
	configShowCmd.Flags().Bool("json", false, "Output as JSON")
}
