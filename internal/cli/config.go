package cli

import (
	"fmt"
	"strconv"
	"strings"

	"temario/internal/store"

	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the persisted configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.config()
			if err != nil {
				return writeErr(cmd, err)
			}
			path, err := store.ConfigPath()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"path": path, "config": cfg}})
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Persist one setting to config.yaml",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Start from the file + env layers only; command-line overrides are not persisted.
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := setConfigKey(&cfg, args[0], args[1]); err != nil {
				return writeErr(cmd, err)
			}
			if err := store.SaveConfig(cfg); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": cfg})
		},
	}

	cmd.AddCommand(setCmd)
	return cmd
}

func setConfigKey(cfg *store.Config, key, value string) error {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "-", "_") {
	case "data_dir":
		cfg.DataDir = value
	case "file":
		cfg.File = value
	case "depth_policy":
		cfg.DepthPolicy = strings.ToLower(strings.TrimSpace(value))
	case "max_text_bytes":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("max_text_bytes: %w", err)
		}
		cfg.MaxTextBytes = n
	case "backup":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("backup: %w", err)
		}
		cfg.Backup = b
	case "check_conflicts":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("check_conflicts: %w", err)
		}
		cfg.CheckConflicts = b
	default:
		return fmt.Errorf("unknown config key: %q", key)
	}
	return cfg.Validate()
}
