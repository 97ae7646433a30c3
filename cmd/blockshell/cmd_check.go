package main

import (
	"errors"
	"fmt"
	"os"

	"blockkit/cmd/blockshell/blocks"
	"blockkit/pkg/lib"

	"github.com/spf13/cobra"
)

var errRejected = errors.New("connection rejected")

var checkCmd = &cobra.Command{
	Use:   "check <child> <parent> [socket]",
	Short: "Check whether one block kind may plug into another",
	Long: "Check a connection between two block kinds.\n\n" +
		"With a socket, check whether <child> may plug into that socket of <parent>.\n" +
		"Without one, check whether <child> may chain below <parent>.\n\n" +
		"Exits with status 2 when the connection is rejected.",
	Args:              cobra.RangeArgs(2, 3),
	ValidArgsFunction: completeBlockArg(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadPalette(logger)
		if err != nil {
			return err
		}
		child, err := p.lookupKind(args[0])
		if err != nil {
			return err
		}
		parent, err := p.lookupKind(args[1])
		if err != nil {
			return err
		}
		var socket string
		if len(args) == 3 {
			socket = args[2]
		}
		ok, reason, err := checkConnection(child, parent, socket)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintf(os.Stdout, "rejected: %s\n", reason)
			return lib.WithExitCode(errRejected, 2)
		}
		fmt.Fprintf(os.Stdout, "compatible: %s\n", reason)
		return nil
	},
}

// checkConnection decides whether child may connect to parent, through the
// named socket or, when socket is empty, by chaining below parent.
func checkConnection(child, parent *blocks.BlockKind, socket string) (bool, string, error) {
	if socket == "" {
		ok := blocks.CanChain(parent, child)
		switch {
		case ok:
			return true, fmt.Sprintf("%s chains below %s", child.Name(), parent.Name()), nil
		case !parent.Chaining().AcceptsNext:
			return false, fmt.Sprintf("%s has no next connection", parent.Name()), nil
		default:
			return false, fmt.Sprintf("%s has no previous connection", child.Name()), nil
		}
	}

	s, found := parent.Socket(socket)
	if !found {
		return false, "", fmt.Errorf("%s has no socket %q", parent.Name(), socket)
	}
	ok := blocks.CanConnect(child, s)
	switch s.Kind {
	case blocks.SocketValue:
		if child.IsStatement() {
			return false, fmt.Sprintf("%s is a statement and %s.%s takes a value", child.Name(), parent.Name(), socket), nil
		}
		verdict := "accepts"
		if !ok {
			verdict = "does not accept"
		}
		return ok, fmt.Sprintf("%s.%s (%s) %s %s", parent.Name(), socket, s.Check, verdict, child.Output()), nil
	case blocks.SocketStatement:
		if ok {
			return true, fmt.Sprintf("%s nests in %s.%s", child.Name(), parent.Name(), socket), nil
		}
		return false, fmt.Sprintf("%s has no previous connection", child.Name()), nil
	default:
		return false, fmt.Sprintf("%s.%s holds fields only", parent.Name(), socket), nil
	}
}
