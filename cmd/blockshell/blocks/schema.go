package blocks

// Schema is the declarative description of a block kind, as written by
// startup code or decoded from a definition file. It is format-agnostic:
// no serialization tags.
//
// Exactly one of Output or Chaining must be set:
//
//   - Output (TypeName): the block is an expression producing that type.
//   - Chaining: the block is a statement that links to previous/next blocks.
type Schema struct {
	Sockets  []Socket
	Output   TypeName
	Chaining Chaining
	Category Category

	// Tooltip is either static text or a function evaluated on every query.
	// The zero Tooltip is the empty static text.
	Tooltip Tooltip

	// HelpURL is stored and handed back untouched.
	HelpURL string

	InputsInline bool
}

// ValueInput is a shorthand for a value socket accepting the given types.
func ValueInput(name string, align Align, accepts ...TypeName) Socket {
	return Socket{Name: name, Kind: SocketValue, Check: NewTypeSet(accepts...), Align: align}
}

// StatementInput is a shorthand for a statement socket.
func StatementInput(name string) Socket {
	return Socket{Name: name, Kind: SocketStatement}
}

// DummyInput is a shorthand for a row that only carries fields.
func DummyInput(name string, fields ...Field) Socket {
	return Socket{Name: name, Kind: SocketDummy, Fields: fields}
}

// WithFields returns a copy of s with fields appended.
func (s Socket) WithFields(fields ...Field) Socket {
	out := s.clone()
	out.Fields = append(out.Fields, fields...)
	return out
}
