package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/graaaaa/vrcvisits/internal/config"
)

func (c *cli) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ConfigPath()
			if err != nil {
				return c.report(err)
			}
			fmt.Fprintln(c.stdout, path)
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective config (file plus environment overrides)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := json.MarshalIndent(c.loadConfig(), "", "  ")
			if err != nil {
				return c.report(err)
			}
			fmt.Fprintln(c.stdout, string(data))
			return nil
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with default values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.report(initConfig(c.stdout, force))
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	cmd.AddCommand(pathCmd, showCmd, initCmd)
	return cmd
}

// initConfig writes the default config and prints its path. An existing file
// is kept unless force is set.
func initConfig(out io.Writer, force bool) error {
	path, err := config.ConfigPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if err := config.SaveConfig(config.DefaultConfig()); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Fprintln(out, path)
	return nil
}
