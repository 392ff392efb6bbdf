package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/evcraddock/lease-rules/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change lr settings",
	}
	cmd.AddCommand(newConfigShowCmd(), newConfigSetCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if isJSON() {
				return printJSON(cmd.OutOrStdout(), map[string]interface{}{
					"db_path":            cfg.DBPath,
					"dev_mode":           cfg.DevMode,
					"port":               cfg.Port,
					"duration_tolerance": cfg.DurationTolerance,
					"min_verifications":  cfg.MinVerifications,
					"server_url":         cfg.ServerURL,
				})
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("marshaling config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Persist a setting to the config file",
		Long:  "Persist a setting. Keys: db_path, server_url, dev_mode, port, duration_tolerance, min_verifications.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := config.LoadFile()
			if err != nil {
				return err
			}
			if err := setConfigValue(&file, args[0], args[1]); err != nil {
				return err
			}
			if err := config.Save(file); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], args[1])
			return nil
		},
	}
}

func setConfigValue(c *config.Config, key, value string) error {
	switch key {
	case "db_path":
		c.DBPath = value
	case "server_url":
		c.ServerURL = value
	case "dev_mode":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid dev_mode: %s", value)
		}
		c.DevMode = b
	case "port":
		return setInt(&c.Port, key, value)
	case "duration_tolerance":
		return setIntPtr(&c.DurationTolerance, key, value)
	case "min_verifications":
		return setIntPtr(&c.MinVerifications, key, value)
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

func setInt(dst *int, key, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return fmt.Errorf("invalid %s: %s", key, value)
	}
	*dst = n
	return nil
}

// setIntPtr stores a parsed value behind a fresh pointer so 0 persists as a
// real setting.
func setIntPtr(dst **int, key, value string) error {
	var n int
	if err := setInt(&n, key, value); err != nil {
		return err
	}
	*dst = &n
	return nil
}
