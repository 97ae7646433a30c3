package blocks

// validateSchema checks a schema once, at construction time, and returns the
// resolved category colour. A schema that passes is consistent for the whole
// life of the BlockKind built from it.
func validateSchema(name string, s Schema, cats *Categories) (Colour, error) {
	// XOR rule: exactly one of output or chaining.
	hasOutput := s.Output != TypeNone
	hasChaining := s.Chaining.Set()
	switch {
	case hasOutput && hasChaining:
		return Colour{}, schemaErrorf(name, ErrOutputAndChaining, "output %s with previous=%t next=%t",
			s.Output, s.Chaining.AcceptsPrevious, s.Chaining.AcceptsNext)
	case !hasOutput && !hasChaining:
		return Colour{}, schemaErrorf(name, ErrNoOutputOrChaining, "")
	}

	if hasOutput && !s.Output.Valid() {
		return Colour{}, schemaErrorf(name, ErrUnknownType, "output %q", string(s.Output))
	}

	if err := validateSockets(name, s.Sockets); err != nil {
		return Colour{}, err
	}

	colour, err := cats.HueOf(s.Category)
	if err != nil {
		return Colour{}, schemaErrorf(name, ErrUnknownCategory, "%q", s.Category)
	}
	return colour, nil
}

// validateSockets checks socket name uniqueness and the type names used in
// value socket checks. Unnamed sockets are exempt from the uniqueness rule.
// Only value sockets may carry a check.
func validateSockets(block string, sockets []Socket) error {
	seen := map[string]struct{}{}
	for i, sock := range sockets {
		if sock.Name != "" {
			if _, dup := seen[sock.Name]; dup {
				return schemaErrorf(block, ErrDuplicateSocket, "%s (socket %d)", sock.Name, i)
			}
			seen[sock.Name] = struct{}{}
		}
		if !sock.Check.Empty() && sock.Kind != SocketValue {
			return schemaErrorf(block, ErrCheckOnNonValue, "%s socket %q accepts %s", sock.Kind, sock.Name, sock.Check)
		}
		for _, t := range sock.Check.Members() {
			if !t.Valid() {
				return schemaErrorf(block, ErrUnknownType, "socket %s accepts %q", sock.Name, string(t))
			}
		}
	}
	return nil
}
