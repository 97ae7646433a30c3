package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

const configInitHeader = "# " + appName + " block definitions\n" +
	"# ─────────────────────────────────────────────────────────────────────────────\n" +
	"# Every *.yml / *.yaml file below this directory is loaded on startup.\n" +
	"# Kinds defined here override built-in kinds of the same name.\n" +
	"# Reference:  " + appName + " example\n" +
	"# ─────────────────────────────────────────────────────────────────────────────\n\n"

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialise the " + appName + " config directory with a starter block file",
	Long: "Create the " + appName + " config directory and populate it with a starter\n" +
		"block file so the palette is immediately inspectable.\n\n" +
		"Directories created:\n" +
		"  <config>/blocks/   block definition files\n\n" +
		"When the file exists and stdin is a terminal you are asked before it is\n" +
		"overwritten; --force skips the question.\n\n" +
		"The default config directory follows the same priority as every command:\n" +
		"  $BLOCKSHELL_CONFIG_DIR > $XDG_CONFIG_HOME/" + appName + " > ~/.config/" + appName,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		dir, _ := cmd.Flags().GetString("dir")

		if dir == "" {
			var err error
			dir, err = resolveConfigDir()
			if err != nil {
				return err
			}
		}
		if !force {
			existing := filepath.Join(dir, "blocks", "blocks.yml")
			if _, err := os.Stat(existing); err == nil && isatty.IsTerminal(os.Stdin.Fd()) {
				ok, err := confirmOverwrite(existing)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(os.Stderr, "left unchanged")
					return nil
				}
				force = true
			}
		}
		blocksFile, err := initConfigDir(dir, force)
		if err != nil {
			return err
		}

		fmt.Fprintf(os.Stderr, "initialised %s\n", dir)
		fmt.Fprintf(os.Stderr, "  %s\n", blocksFile)
		fmt.Fprintf(os.Stderr, "\nRun `%s list` to see the palette.\n", appName)
		return nil
	},
}

// initConfigDir creates <dir>/blocks and writes the starter block file,
// returning its path.
func initConfigDir(dir string, force bool) (string, error) {
	blocksDir := filepath.Join(dir, "blocks")
	if err := os.MkdirAll(blocksDir, 0o755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", blocksDir, err)
	}
	blocksFile := filepath.Join(blocksDir, "blocks.yml")
	if err := writeInitFile(blocksFile, configInitHeader, exampleYAML, force); err != nil {
		return "", err
	}
	return blocksFile, nil
}

// confirmOverwrite asks before replacing an existing starter file.
func confirmOverwrite(path string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(path + " already exists").
		Description("Replace it with the starter block file?").
		Affirmative("Overwrite").
		Negative("Keep").
		Value(&ok).
		Run()
	if err != nil {
		return false, fmt.Errorf("confirming overwrite: %w", err)
	}
	return ok, nil
}

func writeInitFile(path, header string, content []byte, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if header != "" {
		fmt.Fprint(f, header)
	}
	_, err = f.Write(content)
	return err
}

func init() {
	configInitCmd.Flags().Bool("force", false, "overwrite existing files")
	configInitCmd.Flags().String("dir", "", "target config directory (default: auto-resolved)")
}
