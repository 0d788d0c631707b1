package cmd

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/sortable/internal/config"
	"github.com/marcus/sortable/internal/items"
	"github.com/marcus/sortable/internal/logging"
	"github.com/marcus/sortable/internal/models"
	"github.com/marcus/sortable/internal/output"
	"github.com/marcus/sortable/internal/watch"
	"github.com/marcus/sortable/pkg/listview"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the reorderable list",
	Long: `Open the list in the terminal.

Mouse:
  Press and hold a row    Lift it for dragging
  Drag a lifted row       Move it; other rows make room
  Drag near an edge       Scroll while moving
  Click [ ] / ×           Check / remove an item
  Wheel                   Scroll

Keys:
  j/k            Move cursor
  J/K            Move item down/up
  Space          Check / uncheck
  x              Remove item
  n              New item
  r              Reload items file
  ?              Toggle help
  q              Quit`,
	Example: `  sortable run
  sortable run --items groceries.yaml --print`,
	GroupID: "core",
	RunE:    runList,
}

func addListFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("items", "i", "", "Items file (JSON or YAML); defaults to items_file from config")
	cmd.Flags().Bool("print", false, "Print the final order as JSON on exit")
	cmd.Flags().Bool("no-watch", false, "Do not reload the items file when it changes")
	cmd.Flags().String("log-file", "", "Write logs to this file")
	cmd.Flags().String("log-level", "", "Log level: debug, info, warn, error")
	cmd.Flags().Int("row-height", 0, "Lines per row (overrides config)")
	cmd.Flags().Bool("remember", false, "Save --items as the default items file")
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(getBaseDir())
	if err != nil {
		output.Error("load config: %v", err)
		return err
	}
	if err := applyListFlags(cmd, cfg); err != nil {
		output.Error("%v", err)
		return err
	}

	if remember, _ := cmd.Flags().GetBool("remember"); remember && cfg.ItemsFile != "" {
		if err := config.SetItemsFile(getBaseDir(), cfg.ItemsFile); err != nil {
			output.Warning("could not save items file: %v", err)
		}
	}

	if !output.IsTerminal() {
		err := errors.New("the list needs an interactive terminal; use 'sortable order' to print it")
		output.Error("%v", err)
		return err
	}

	log, closeLog, err := logging.Open(cfg.Log)
	if err != nil {
		output.Error("open log: %v", err)
		return err
	}
	defer closeLog()

	var list []models.Item
	if cfg.ItemsFile != "" {
		list, err = items.Load(cfg.ItemsFile)
		if err != nil {
			output.Error("load items: %v", err)
			return err
		}
	}

	var watcher *watch.Watcher
	noWatch, _ := cmd.Flags().GetBool("no-watch")
	if cfg.ItemsFile != "" && !noWatch {
		watcher, err = watch.New(cfg.ItemsFile, watch.DefaultDebounce, log)
		if err != nil {
			output.Warning("file watch disabled: %v", err)
		} else if err := watcher.Start(); err != nil {
			output.Warning("file watch disabled: %v", err)
			watcher = nil
		} else {
			defer watcher.Stop()
		}
	}

	model, err := listview.New(listview.Options{
		Config:    cfg,
		Items:     list,
		ItemsFile: cfg.ItemsFile,
		Watcher:   watcher,
		Logger:    log,
	})
	if err != nil {
		output.Error("%v", err)
		return err
	}

	log.Info("list opened", "items", model.Items.Len(), "file", cfg.ItemsFile, "version", versionStr)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("error running list: %w", err)
	}

	if printOrder, _ := cmd.Flags().GetBool("print"); printOrder {
		if m, ok := final.(listview.Model); ok {
			return output.JSON(m.Items.Items())
		}
	}
	return nil
}

// applyListFlags layers command-line flags over the loaded config
func applyListFlags(cmd *cobra.Command, cfg *models.Config) error {
	if path, _ := cmd.Flags().GetString("items"); path != "" {
		cfg.ItemsFile = path
	}
	if file, _ := cmd.Flags().GetString("log-file"); file != "" {
		cfg.Log.File = file
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Log.Level = level
	}
	if h, _ := cmd.Flags().GetInt("row-height"); h != 0 {
		cfg.RowHeight = h
	}
	return config.Validate(cfg)
}

func init() {
	rootCmd.AddCommand(runCmd)
	addListFlags(runCmd)
}
