package main

import (
	"fmt"
	"io"
	"strings"

	"blockkit/cmd/blockshell/blocks"
)

// shapeOf summarises how a kind plugs into others: "→ Colour" for an
// expression, "statement (prev, next)" for a statement.
func shapeOf(k *blocks.BlockKind) string {
	if !k.IsStatement() {
		return "→ " + k.Output().String()
	}
	var ends []string
	if k.Chaining().AcceptsPrevious {
		ends = append(ends, "prev")
	}
	if k.Chaining().AcceptsNext {
		ends = append(ends, "next")
	}
	return "statement (" + strings.Join(ends, ", ") + ")"
}

// socketSummary lists the named sockets of a kind as NAME:check.
func socketSummary(k *blocks.BlockKind) string {
	var parts []string
	for _, s := range k.Sockets() {
		switch s.Kind {
		case blocks.SocketValue:
			parts = append(parts, s.Name+":"+s.Check.String())
		case blocks.SocketStatement:
			parts = append(parts, s.Name+":stmt")
		}
	}
	return strings.Join(parts, " ")
}

// describeKind prints everything a kind declares.
func describeKind(w io.Writer, k *blocks.BlockKind) {
	fmt.Fprintf(w, "block %q\n", k.Name())
	fmt.Fprintf(w, "  shape:    %s\n", shapeOf(k))
	fmt.Fprintf(w, "  category: %s (%s)\n", k.Category(), k.Colour().Hex())
	if k.InputsInline() {
		fmt.Fprintln(w, "  inputs:   inline")
	}
	switch {
	case k.Tooltip().IsDynamic():
		fmt.Fprintln(w, "  tooltip:  <computed>")
	case k.Tooltip().Text() != "":
		fmt.Fprintf(w, "  tooltip:  %q\n", k.Tooltip().Text())
	}
	if k.HelpReference() != "" {
		fmt.Fprintf(w, "  help:     %s\n", k.HelpReference())
	}

	for i, s := range k.Sockets() {
		fmt.Fprintln(w)
		if s.Name != "" {
			fmt.Fprintf(w, "  socket [%d] %s (%s)\n", i, s.Name, s.Kind)
		} else {
			fmt.Fprintf(w, "  socket [%d] (%s)\n", i, s.Kind)
		}
		if s.Kind == blocks.SocketValue {
			fmt.Fprintf(w, "    accepts: %s\n", s.Check)
		}
		if s.Align != blocks.AlignLeft {
			fmt.Fprintf(w, "    align:   %s\n", s.Align)
		}
		for _, f := range s.Fields {
			fmt.Fprintf(w, "    field:   %s\n", describeField(f))
		}
	}
}

func describeField(f blocks.Field) string {
	var b strings.Builder
	b.WriteString(string(f.Kind))
	if f.Name != "" {
		fmt.Fprintf(&b, " %s", f.Name)
	}
	if f.Text != "" {
		fmt.Fprintf(&b, " %q", f.Text)
	}
	if f.Default != "" {
		fmt.Fprintf(&b, " = %s", f.Default)
	}
	if len(f.Options) > 0 {
		opts := make([]string, len(f.Options))
		for i, o := range f.Options {
			if o.Label == o.Value {
				opts[i] = o.Value
			} else {
				opts[i] = o.Label + "→" + o.Value
			}
		}
		fmt.Fprintf(&b, " [%s]", strings.Join(opts, ", "))
	}
	return b.String()
}
