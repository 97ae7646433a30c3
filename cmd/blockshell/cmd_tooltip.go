package main

import (
	"fmt"
	"os"

	"blockkit/cmd/blockshell/blocks"
	"blockkit/cmd/blockshell/workspace"

	"github.com/spf13/cobra"
)

var tooltipCmd = &cobra.Command{
	Use:   "tooltip <block>",
	Short: "Print the tooltip a block shows",
	Long: "Place a block on a scratch workspace and print its tooltip.\n\n" +
		"Computed tooltips depend on where the block sits. Use --parent to plug\n" +
		"the block into an instance of another kind first; --socket picks the\n" +
		"socket (default: the first one that accepts the block) and --inline\n" +
		"overrides the parent's inline-inputs setting.",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeBlockNames,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadPalette(logger)
		if err != nil {
			return err
		}
		parentName, _ := cmd.Flags().GetString("parent")
		socket, _ := cmd.Flags().GetString("socket")
		var inline *bool
		if cmd.Flags().Changed("inline") {
			v, _ := cmd.Flags().GetBool("inline")
			inline = &v
		}
		tip, err := tooltipInContext(p.reg, args[0], parentName, socket, inline)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, tip)
		return nil
	},
}

// tooltipInContext resolves the tooltip of a fresh instance of kindName,
// optionally plugged into a fresh instance of parentName.
func tooltipInContext(reg *blocks.Registry, kindName, parentName, socket string, inline *bool) (string, error) {
	ws := workspace.New(reg).WithLogger(logger)
	child, err := ws.Place(kindName)
	if err != nil {
		return "", err
	}
	if parentName != "" {
		parent, err := ws.Place(parentName)
		if err != nil {
			return "", err
		}
		if inline != nil {
			if err := ws.SetInputsInline(parent.ID(), *inline); err != nil {
				return "", err
			}
		}
		if socket == "" {
			socket, err = firstAcceptingSocket(parent.Kind(), child.Kind())
			if err != nil {
				return "", err
			}
		}
		ok, err := ws.Connect(parent.ID(), socket, child.ID())
		if err != nil {
			return "", err
		}
		if !ok {
			return "", fmt.Errorf("%w: %s does not fit %s.%s", errRejected, kindName, parentName, socket)
		}
	}
	return blocks.NewTooltipResolver(ws).Resolve(child), nil
}

func firstAcceptingSocket(parent, child *blocks.BlockKind) (string, error) {
	for _, s := range parent.Sockets() {
		if s.Name != "" && blocks.CanConnect(child, s) {
			return s.Name, nil
		}
	}
	return "", fmt.Errorf("%w: no socket of %s accepts %s", errRejected, parent.Name(), child.Name())
}

func init() {
	tooltipCmd.Flags().String("parent", "", "plug the block into an instance of this kind")
	tooltipCmd.Flags().String("socket", "", "socket of the parent to plug into")
	tooltipCmd.Flags().Bool("inline", false, "render the parent's inputs inline")
	tooltipCmd.RegisterFlagCompletionFunc("parent", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return completeBlockNames(cmd, nil, toComplete)
	})
}
