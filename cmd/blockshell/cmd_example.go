package main

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

//go:embed example.yml
var exampleYAML []byte

const exampleHeader = `# blockshell: block file reference
# Check it with:  blockshell --file <this-file> list
# Inspect a kind: blockshell --file <this-file> show vector_xyz

`

var exampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Print a reference block file covering every feature",
	Long: "Print a block definition file that demonstrates categories, messages,\n" +
		"expression and statement blocks, typed inputs, fields and computed\n" +
		"tooltips. Use --output to write to a file instead of stdout.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		w := os.Stdout
		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating %s: %w", output, err)
			}
			defer f.Close()
			w = f
		}

		fmt.Fprint(w, exampleHeader)
		if _, err := w.Write(exampleYAML); err != nil {
			return err
		}

		if output != "" {
			fmt.Fprintf(os.Stderr, "written to %s\n", output)
		}
		return nil
	},
}

func init() {
	exampleCmd.Flags().StringP("output", "o", "", "write to file instead of stdout")
}
