package blocks

import "slices"

// SocketKind distinguishes the connection points a block can declare.
type SocketKind int

const (
	// SocketValue takes one expression block whose output type is checked.
	SocketValue SocketKind = iota
	// SocketStatement takes a stack of statement blocks.
	SocketStatement
	// SocketDummy carries fields only and never accepts a connection.
	SocketDummy
)

func (k SocketKind) String() string {
	switch k {
	case SocketValue:
		return "value"
	case SocketStatement:
		return "statement"
	case SocketDummy:
		return "dummy"
	default:
		return "unknown"
	}
}

// Align is a rendering hint. It has no effect on connection rules.
type Align int

const (
	AlignLeft Align = iota
	AlignCentre
	AlignRight
)

func (a Align) String() string {
	switch a {
	case AlignCentre:
		return "centre"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// FieldKind identifies a field widget. Widgets are built by the editor;
// blocks only carry the identifier and its arguments.
type FieldKind string

const (
	FieldLabel    FieldKind = "field_label"
	FieldColour   FieldKind = "field_colour"
	FieldDropdown FieldKind = "field_dropdown"
	FieldInput    FieldKind = "field_input"
	FieldNumber   FieldKind = "field_number"
)

// Option is one dropdown entry.
type Option struct {
	Label string
	Value string
}

// Field is an editable or static widget placed on a socket row.
//   - Text is the label text for FieldLabel.
//   - Default is the initial value (e.g. "#ffffff" for FieldColour).
//   - Options is the explicit option list for FieldDropdown.
type Field struct {
	Kind    FieldKind
	Name    string
	Text    string
	Default string
	Options []Option
}

// Socket is a typed connection point on a block.
// Name must be unique within its block; dummy sockets may be unnamed.
// Check applies to value sockets only; an empty set accepts any type.
type Socket struct {
	Name   string
	Kind   SocketKind
	Check  TypeSet
	Align  Align
	Fields []Field
}

func (s Socket) clone() Socket {
	out := s
	out.Fields = make([]Field, len(s.Fields))
	for i, f := range s.Fields {
		f.Options = slices.Clone(f.Options)
		out.Fields[i] = f
	}
	return out
}

// Chaining holds the statement connection flags.
type Chaining struct {
	AcceptsPrevious bool
	AcceptsNext     bool
}

// Set reports whether the block takes part in statement chaining at all.
func (c Chaining) Set() bool { return c.AcceptsPrevious || c.AcceptsNext }

// BlockKind is the immutable definition of one kind of block.
// It is built by NewBlockKind and never changes afterwards; accessors return
// copies so callers cannot reach into it.
//
// A BlockKind is either an expression (Output != TypeNone) or a statement
// (Chaining().Set()), never both.
type BlockKind struct {
	name         string
	sockets      []Socket
	output       TypeName
	chaining     Chaining
	category     Category
	colour       Colour
	tooltip      Tooltip
	help         string
	inputsInline bool
}

// Name returns the name the kind was built under.
func (b *BlockKind) Name() string { return b.name }

// Sockets returns the sockets in declaration order.
func (b *BlockKind) Sockets() []Socket {
	out := make([]Socket, len(b.sockets))
	for i, s := range b.sockets {
		out[i] = s.clone()
	}
	return out
}

// Socket returns the named socket.
func (b *BlockKind) Socket(name string) (Socket, bool) {
	for _, s := range b.sockets {
		if s.Name == name && name != "" {
			return s.clone(), true
		}
	}
	return Socket{}, false
}

// Output returns the declared output type, or TypeNone for statements.
func (b *BlockKind) Output() TypeName { return b.output }

// Chaining returns the previous/next connection flags.
func (b *BlockKind) Chaining() Chaining { return b.chaining }

// IsStatement reports whether the block chains rather than produces a value.
func (b *BlockKind) IsStatement() bool { return b.output == TypeNone }

// Category returns the display grouping.
func (b *BlockKind) Category() Category { return b.category }

// Colour is the category hue resolved when the kind was built.
func (b *BlockKind) Colour() Colour { return b.colour }

// Tooltip returns the static text or computed tooltip.
func (b *BlockKind) Tooltip() Tooltip { return b.tooltip }

// HelpReference is returned verbatim; it is never validated.
func (b *BlockKind) HelpReference() string { return b.help }

// InputsInline is the default layout for new instances of this kind.
func (b *BlockKind) InputsInline() bool { return b.inputsInline }
