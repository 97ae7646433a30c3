package main

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"blockkit/cmd/blockshell/blocks"
	"blockkit/cmd/blockshell/workspace"
)

// shellCommands maps each shell command to its usage line.
var shellCommands = map[string]string{
	"place":      "place <kind>                    put a new block on the workspace",
	"connect":    "connect <parent> <socket> <child> plug child into a socket of parent",
	"chain":      "chain <upper> <lower>           attach lower below upper",
	"disconnect": "disconnect <block>              detach a block from its parent",
	"remove":     "remove <block>                  delete a block",
	"inline":     "inline <block> on|off           set whether a block renders inputs inline",
	"tooltip":    "tooltip <block>                 print the tooltip the block shows now",
	"ls":         "ls                              list the placed blocks",
	"kinds":      "kinds                           list the registered block kinds",
	"reload":     "reload                          reload block files and re-check connections",
	"history":    "history                         show command history",
	"help":       "help                            show this help",
	"exit":       "exit                            leave the shell",
}

// session is the state behind the interactive shell: a registry, a scratch
// workspace and short aliases (b1, b2, ...) for the placed instances.
type session struct {
	reg     *blocks.Registry
	ws      *workspace.Workspace
	tips    *blocks.TooltipResolver
	aliases map[string]blocks.InstanceID
	names   map[blocks.InstanceID]string
	order   []string
	seq     int
	history []string
	load    func() (*palette, error)
}

func newSession(p *palette, load func() (*palette, error)) *session {
	ws := workspace.New(p.reg).WithLogger(logger)
	return &session{
		reg:     p.reg,
		ws:      ws,
		tips:    blocks.NewTooltipResolver(ws),
		aliases: make(map[string]blocks.InstanceID),
		names:   make(map[blocks.InstanceID]string),
		load:    load,
	}
}

// exec runs one shell line and returns its output.
func (s *session) exec(line string) (string, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return "", nil
	}
	s.history = append(s.history, line)
	cmd, args := parts[0], parts[1:]

	switch cmd {
	case "place":
		if err := wantArgs(cmd, args, 1); err != nil {
			return "", err
		}
		return s.place(args[0])
	case "connect":
		if err := wantArgs(cmd, args, 3); err != nil {
			return "", err
		}
		return s.connect(args[0], args[1], args[2])
	case "chain":
		if err := wantArgs(cmd, args, 2); err != nil {
			return "", err
		}
		return s.chain(args[0], args[1])
	case "disconnect":
		if err := wantArgs(cmd, args, 1); err != nil {
			return "", err
		}
		id, err := s.resolve(args[0])
		if err != nil {
			return "", err
		}
		if err := s.ws.Disconnect(id); err != nil {
			return "", err
		}
		return "detached " + args[0], nil
	case "remove":
		if err := wantArgs(cmd, args, 1); err != nil {
			return "", err
		}
		return s.remove(args[0])
	case "inline":
		if err := wantArgs(cmd, args, 2); err != nil {
			return "", err
		}
		id, err := s.resolve(args[0])
		if err != nil {
			return "", err
		}
		var on bool
		switch args[1] {
		case "on":
			on = true
		case "off":
		default:
			return "", fmt.Errorf("inline: expected on or off, got %q", args[1])
		}
		if err := s.ws.SetInputsInline(id, on); err != nil {
			return "", err
		}
		return fmt.Sprintf("%s inline %s", args[0], args[1]), nil
	case "tooltip":
		if err := wantArgs(cmd, args, 1); err != nil {
			return "", err
		}
		id, err := s.resolve(args[0])
		if err != nil {
			return "", err
		}
		inst, _ := s.ws.Instance(id)
		return s.tips.Resolve(inst), nil
	case "ls":
		return s.list(), nil
	case "kinds":
		return strings.Join(s.reg.Names(), "\n"), nil
	case "reload":
		return s.reload()
	case "history":
		var b strings.Builder
		for i, h := range s.history {
			fmt.Fprintf(&b, "%d: %s\n", i+1, h)
		}
		return strings.TrimSuffix(b.String(), "\n"), nil
	case "help":
		var lines []string
		for _, name := range slices.Sorted(maps.Keys(shellCommands)) {
			lines = append(lines, "  "+shellCommands[name])
		}
		return strings.Join(lines, "\n"), nil
	default:
		return "", fmt.Errorf("unknown command %q (try help)", cmd)
	}
}

func wantArgs(cmd string, args []string, n int) error {
	if len(args) != n {
		return fmt.Errorf("usage: %s", strings.Join(strings.Fields(shellCommands[cmd])[:n+1], " "))
	}
	return nil
}

func (s *session) place(kind string) (string, error) {
	b, err := s.ws.Place(kind)
	if err != nil {
		return "", err
	}
	s.seq++
	alias := fmt.Sprintf("b%d", s.seq)
	s.aliases[alias] = b.ID()
	s.names[b.ID()] = alias
	s.order = append(s.order, alias)
	return fmt.Sprintf("%s = %s", alias, kind), nil
}

func (s *session) resolve(alias string) (blocks.InstanceID, error) {
	id, ok := s.aliases[alias]
	if !ok {
		return "", fmt.Errorf("%w: %s", workspace.ErrUnknownInstance, alias)
	}
	return id, nil
}

func (s *session) connect(parent, socket, child string) (string, error) {
	pid, err := s.resolve(parent)
	if err != nil {
		return "", err
	}
	cid, err := s.resolve(child)
	if err != nil {
		return "", err
	}
	ok, err := s.ws.Connect(pid, socket, cid)
	if err != nil {
		return "", err
	}
	if !ok {
		return fmt.Sprintf("rejected: %s does not fit %s.%s", child, parent, socket), nil
	}
	return fmt.Sprintf("%s.%s ← %s", parent, socket, child), nil
}

func (s *session) chain(upper, lower string) (string, error) {
	uid, err := s.resolve(upper)
	if err != nil {
		return "", err
	}
	lid, err := s.resolve(lower)
	if err != nil {
		return "", err
	}
	ok, err := s.ws.Chain(uid, lid)
	if err != nil {
		return "", err
	}
	if !ok {
		return fmt.Sprintf("rejected: %s cannot chain below %s", lower, upper), nil
	}
	return fmt.Sprintf("%s ↓ %s", upper, lower), nil
}

func (s *session) remove(alias string) (string, error) {
	id, err := s.resolve(alias)
	if err != nil {
		return "", err
	}
	if err := s.ws.Remove(id); err != nil {
		return "", err
	}
	delete(s.aliases, alias)
	delete(s.names, id)
	s.order = slices.DeleteFunc(s.order, func(a string) bool { return a == alias })
	return "removed " + alias, nil
}

// list prints one line per placed block: alias, kind and where it is attached.
func (s *session) list() string {
	if len(s.order) == 0 {
		return "workspace is empty"
	}
	var lines []string
	for _, alias := range s.order {
		b, ok := s.ws.Block(s.aliases[alias])
		if !ok {
			continue
		}
		line := fmt.Sprintf("%-4s %s", alias, b.Kind().Name())
		if pid, ok := b.ParentID(); ok {
			line += "  (in " + s.names[pid] + ")"
		}
		if b.InputsInline() {
			line += "  [inline]"
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// reload re-reads the palette, re-registers every kind and drops the
// connections the new definitions no longer allow.
func (s *session) reload() (string, error) {
	p, err := s.load()
	if err != nil {
		return "", err
	}
	for name, kind := range p.reg.All() {
		s.reg.Register(name, kind)
	}
	dropped := s.ws.Revalidate()
	out := fmt.Sprintf("reloaded %d kind(s)", p.reg.Len())
	for _, d := range dropped {
		if d.Socket != "" {
			out += fmt.Sprintf("\ndropped %s.%s ← %s", s.names[d.Parent], d.Socket, s.names[d.Child])
		} else {
			out += fmt.Sprintf("\ndropped %s ↓ %s", s.names[d.Parent], s.names[d.Child])
		}
	}
	return out, nil
}

// complete suggests the first completion for the word being typed: a command
// name first, a kind name after place, a block alias anywhere else.
func (s *session) complete(input string) string {
	if input == "" {
		return ""
	}
	parts := strings.Fields(input)
	if strings.HasSuffix(input, " ") {
		parts = append(parts, "")
	}
	if len(parts) == 1 {
		return firstWithPrefix(slices.Sorted(maps.Keys(shellCommands)), parts[0], "")
	}
	word := parts[len(parts)-1]
	head := strings.TrimSuffix(input, word)
	var candidates []string
	if parts[0] == "place" {
		candidates = s.reg.Names()
	} else {
		candidates = s.order
	}
	return firstWithPrefix(candidates, word, head)
}

func firstWithPrefix(candidates []string, word, head string) string {
	for _, c := range candidates {
		if strings.HasPrefix(c, word) && c != word {
			return head + c
		}
	}
	return ""
}
