package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the " + appName + " config directory",
	Long:  "Commands for initialising and inspecting the " + appName + " config directory.",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config directory and every block file that would be loaded",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}
		dirs := resolveBlockDirs(configDir, flagBlockDirs)
		files, err := resolveBlockFiles(dirs, flagFiles)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "config: %s\n", configDir)
		for _, d := range dirs {
			fmt.Fprintf(out, "dir:    %s\n", d)
		}
		for _, f := range files {
			fmt.Fprintf(out, "file:   %s\n", f)
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}
