package blocks

// NewBlockKind validates s and builds the immutable BlockKind it describes.
// Any problem with the schema is returned as a *SchemaError.
func NewBlockKind(name string, s Schema, cats *Categories) (*BlockKind, error) {
	colour, err := validateSchema(name, s, cats)
	if err != nil {
		return nil, err
	}

	sockets := make([]Socket, len(s.Sockets))
	for i, sock := range s.Sockets {
		sockets[i] = sock.clone()
	}

	return &BlockKind{
		name:         name,
		sockets:      sockets,
		output:       s.Output,
		chaining:     s.Chaining,
		category:     s.Category,
		colour:       colour,
		tooltip:      s.Tooltip,
		help:         s.HelpURL,
		inputsInline: s.InputsInline,
	}, nil
}
