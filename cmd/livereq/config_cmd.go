package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/unkn0wn-root/livereq/internal/config"
	"github.com/unkn0wn-root/livereq/internal/errdef"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the settings file",
		Args:  cobra.NoArgs,
	}
	cmd.AddCommand(newConfigPathCmd(), newConfigInitCmd())
	return cmd
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the settings and log file locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, handle, err := config.LoadSettings()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "settings: %s\n", handle.Path)
			fmt.Fprintf(out, "log:      %s\n", config.LogPath())
			return nil
		},
	}
}

func newConfigInitCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a settings.toml with the default values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			handle := config.SettingsHandle{
				Path:   filepath.Join(config.Dir(), "settings.toml"),
				Format: config.SettingsFormatTOML,
			}
			if _, err := os.Stat(handle.Path); err == nil && !force {
				return errdef.New(errdef.CodeConfig, "%s already exists (use --force to overwrite)", handle.Path)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return errdef.Wrap(errdef.CodeFilesystem, err, "stat %s", handle.Path)
			}
			if err := config.SaveSettings(config.DefaultSettings(), handle); err != nil {
				return errdef.Wrap(errdef.CodeFilesystem, err, "save settings")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", handle.Path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing settings file")
	return cmd
}
