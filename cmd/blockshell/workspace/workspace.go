// Package workspace is a minimal in-memory block workspace. The editor owns
// the real one; this one exists so connection rules and tooltips can be
// exercised without it.
//
// A Workspace is not safe for concurrent use.
package workspace

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"blockkit/cmd/blockshell/blocks"

	"github.com/google/uuid"
)

var (
	ErrUnknownInstance = errors.New("unknown block instance")
	ErrUnknownSocket   = errors.New("unknown socket")
	ErrSocketOccupied  = errors.New("socket already connected")
	ErrCycle           = errors.New("connection would create a cycle")
)

// Block is one placed instance. Its parent is held as an id, so dropping the
// parent from the workspace never keeps it alive through the child.
type Block struct {
	id           blocks.InstanceID
	kind         *blocks.BlockKind
	parent       blocks.InstanceID
	parentSocket string // "" when attached through the next link
	inline       bool
	inputs       map[string]blocks.InstanceID
	next         blocks.InstanceID
}

func (b *Block) ID() blocks.InstanceID   { return b.id }
func (b *Block) Kind() *blocks.BlockKind { return b.kind }
func (b *Block) InputsInline() bool      { return b.inline }

// Next returns the block chained below this one.
func (b *Block) Next() (blocks.InstanceID, bool) {
	return b.next, b.next != ""
}

func (b *Block) ParentID() (blocks.InstanceID, bool) {
	return b.parent, b.parent != ""
}

// Input returns the child connected to the named socket.
func (b *Block) Input(socket string) (blocks.InstanceID, bool) {
	id, ok := b.inputs[socket]
	return id, ok
}

// Workspace owns the placed blocks.
type Workspace struct {
	reg    *blocks.Registry
	blocks map[blocks.InstanceID]*Block
	logger *slog.Logger
}

// New returns an empty workspace placing kinds from reg.
func New(reg *blocks.Registry) *Workspace {
	return &Workspace{
		reg:    reg,
		blocks: make(map[blocks.InstanceID]*Block),
		logger: slog.Default(),
	}
}

// WithLogger sets the logger used for revalidation events. A nil logger
// selects slog.Default().
func (w *Workspace) WithLogger(l *slog.Logger) *Workspace {
	if l == nil {
		l = slog.Default()
	}
	w.logger = l
	return w
}

// Place creates an instance of the named kind as currently registered.
func (w *Workspace) Place(kindName string) (*Block, error) {
	kind, ok := w.reg.Lookup(kindName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", blocks.ErrNotFound, kindName)
	}
	return w.PlaceKind(kind), nil
}

// PlaceKind creates an instance of kind.
func (w *Workspace) PlaceKind(kind *blocks.BlockKind) *Block {
	b := &Block{
		id:     blocks.InstanceID(uuid.NewString()),
		kind:   kind,
		inline: kind.InputsInline(),
		inputs: make(map[string]blocks.InstanceID),
	}
	w.blocks[b.id] = b
	return b
}

// Instance implements blocks.InstanceSource.
func (w *Workspace) Instance(id blocks.InstanceID) (blocks.Instance, bool) {
	b, ok := w.blocks[id]
	if !ok {
		return nil, false
	}
	return b, true
}

// Block returns the placed instance with the given id.
func (w *Workspace) Block(id blocks.InstanceID) (*Block, bool) {
	b, ok := w.blocks[id]
	return b, ok
}

// Len returns the number of placed instances.
func (w *Workspace) Len() int { return len(w.blocks) }

func (w *Workspace) get(id blocks.InstanceID) (*Block, error) {
	b, ok := w.blocks[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownInstance, id)
	}
	return b, nil
}

// SetInputsInline changes how an instance lays out its inputs.
func (w *Workspace) SetInputsInline(id blocks.InstanceID, inline bool) error {
	b, err := w.get(id)
	if err != nil {
		return err
	}
	b.inline = inline
	return nil
}

// Connect plugs child into the named socket of parent. A type mismatch is
// reported as ok == false with a nil error; errors are for requests that
// make no sense (unknown ids or sockets, occupied sockets, cycles).
// A child that is attached elsewhere is detached first.
func (w *Workspace) Connect(parentID blocks.InstanceID, socket string, childID blocks.InstanceID) (bool, error) {
	parent, err := w.get(parentID)
	if err != nil {
		return false, err
	}
	child, err := w.get(childID)
	if err != nil {
		return false, err
	}
	sock, ok := parent.kind.Socket(socket)
	if !ok {
		return false, fmt.Errorf("%w: %s.%s", ErrUnknownSocket, parent.kind.Name(), socket)
	}
	if _, taken := parent.inputs[socket]; taken {
		return false, fmt.Errorf("%w: %s.%s", ErrSocketOccupied, parent.kind.Name(), socket)
	}
	if w.isAncestor(childID, parentID) {
		return false, ErrCycle
	}
	if !blocks.CanConnect(child.kind, sock) {
		return false, nil
	}

	w.detach(child)
	parent.inputs[socket] = childID
	child.parent = parentID
	child.parentSocket = socket
	return true, nil
}

// Chain attaches lower below upper in a statement stack.
func (w *Workspace) Chain(upperID, lowerID blocks.InstanceID) (bool, error) {
	upper, err := w.get(upperID)
	if err != nil {
		return false, err
	}
	lower, err := w.get(lowerID)
	if err != nil {
		return false, err
	}
	if upper.next != "" {
		return false, fmt.Errorf("%w: %s.next", ErrSocketOccupied, upper.kind.Name())
	}
	if w.isAncestor(lowerID, upperID) {
		return false, ErrCycle
	}
	if !blocks.CanChain(upper.kind, lower.kind) {
		return false, nil
	}

	w.detach(lower)
	upper.next = lowerID
	lower.parent = upperID
	return true, nil
}

// Disconnect detaches a block from its parent. It is a no-op for top-level blocks.
func (w *Workspace) Disconnect(id blocks.InstanceID) error {
	b, err := w.get(id)
	if err != nil {
		return err
	}
	w.detach(b)
	return nil
}

// Remove deletes a block. Its children stay in the workspace as top-level blocks.
func (w *Workspace) Remove(id blocks.InstanceID) error {
	b, err := w.get(id)
	if err != nil {
		return err
	}
	w.detach(b)
	for _, childID := range b.inputs {
		if child, ok := w.blocks[childID]; ok {
			w.detach(child)
		}
	}
	if next, ok := w.blocks[b.next]; ok {
		w.detach(next)
	}
	delete(w.blocks, id)
	return nil
}

func (w *Workspace) detach(b *Block) {
	if b.parent == "" {
		return
	}
	if parent, ok := w.blocks[b.parent]; ok {
		if b.parentSocket != "" {
			delete(parent.inputs, b.parentSocket)
		} else if parent.next == b.id {
			parent.next = ""
		}
	}
	b.parent = ""
	b.parentSocket = ""
}

// isAncestor reports whether candidate is id itself or one of its ancestors.
func (w *Workspace) isAncestor(candidate, id blocks.InstanceID) bool {
	seen := map[blocks.InstanceID]struct{}{}
	for cur := id; cur != ""; {
		if cur == candidate {
			return true
		}
		if _, loop := seen[cur]; loop {
			return false
		}
		seen[cur] = struct{}{}
		b, ok := w.blocks[cur]
		if !ok {
			return false
		}
		cur = b.parent
	}
	return false
}

// Detached records a connection dropped by Revalidate.
type Detached struct {
	Parent blocks.InstanceID
	Socket string // "" for a next link
	Child  blocks.InstanceID
}

// Revalidate rebinds every instance to the kind currently registered under
// its name, then drops connections the new definitions no longer allow.
// Instances whose kind was removed from the registry keep their old definition.
func (w *Workspace) Revalidate() []Detached {
	for _, b := range w.blocks {
		if current, ok := w.reg.Lookup(b.kind.Name()); ok && current != b.kind {
			b.kind = current
			w.logger.Debug("instance rebound", "id", b.id, "kind", current.Name())
		}
	}

	var dropped []Detached
	for _, id := range slices.Sorted(maps.Keys(w.blocks)) {
		b := w.blocks[id]
		for _, socket := range slices.Sorted(maps.Keys(b.inputs)) {
			childID := b.inputs[socket]
			child, ok := w.blocks[childID]
			if !ok {
				delete(b.inputs, socket)
				continue
			}
			sock, ok := b.kind.Socket(socket)
			if ok && blocks.CanConnect(child.kind, sock) {
				continue
			}
			w.detach(child)
			dropped = append(dropped, Detached{Parent: b.id, Socket: socket, Child: childID})
		}
		if next, ok := w.blocks[b.next]; ok && !blocks.CanChain(b.kind, next.kind) {
			w.detach(next)
			dropped = append(dropped, Detached{Parent: b.id, Child: next.id})
		}
	}
	for _, d := range dropped {
		w.logger.Info("connection dropped", "parent", d.Parent, "socket", d.Socket, "child", d.Child)
	}
	return dropped
}
