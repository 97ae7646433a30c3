package blocks

import (
	"fmt"
	"slices"
	"strings"
)

// TypeName tags the value carried by a socket connection.
//
// The set of type names is closed: only the constants below are valid.
// The zero value TypeNone means "no value", i.e. the block is a statement.
type TypeName string

const (
	TypeNone    TypeName = ""
	TypeNumber  TypeName = "Number"
	TypeString  TypeName = "String"
	TypeBoolean TypeName = "Boolean"
	TypeColour  TypeName = "Colour"
	TypeVector  TypeName = "Vector"
)

var allTypes = []TypeName{TypeNumber, TypeString, TypeBoolean, TypeColour, TypeVector}

// Types returns every valid type name.
func Types() []TypeName {
	return slices.Clone(allTypes)
}

// Valid reports whether t is a member of the closed type set.
// TypeNone is not a member.
func (t TypeName) Valid() bool {
	return slices.Contains(allTypes, t)
}

func (t TypeName) String() string {
	if t == TypeNone {
		return "none"
	}
	return string(t)
}

// ParseTypeName maps s to a type name. Matching is exact; "colour" is not "Colour".
func ParseTypeName(s string) (TypeName, error) {
	t := TypeName(s)
	if !t.Valid() {
		return TypeNone, fmt.Errorf("%w: %q", ErrUnknownType, s)
	}
	return t, nil
}

// TypeSet is the set of types a value socket accepts.
// The empty set accepts any output type.
type TypeSet struct {
	types []TypeName
}

// NewTypeSet returns a set holding the given types. Duplicates are collapsed.
func NewTypeSet(types ...TypeName) TypeSet {
	var out []TypeName
	for _, t := range types {
		if !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return TypeSet{types: out}
}

// AnyType is the empty, accept-everything set.
func AnyType() TypeSet { return TypeSet{} }

// Empty reports whether the set has no members, i.e. accepts any type.
func (s TypeSet) Empty() bool { return len(s.types) == 0 }

// Contains reports whether t is a member.
func (s TypeSet) Contains(t TypeName) bool { return slices.Contains(s.types, t) }

// Members returns the set contents in declaration order.
func (s TypeSet) Members() []TypeName { return slices.Clone(s.types) }

func (s TypeSet) String() string {
	if s.Empty() {
		return "any"
	}
	parts := make([]string, len(s.types))
	for i, t := range s.types {
		parts[i] = string(t)
	}
	return strings.Join(parts, "|")
}

// IsCompatible reports whether a block with the given output type can plug
// into a value socket accepting the given set.
//
// A statement (TypeNone) never fits a value socket. An empty accepted set
// takes any output. Otherwise the names must match exactly; there is no
// widening between types.
func IsCompatible(output TypeName, accepted TypeSet) bool {
	if output == TypeNone {
		return false
	}
	if accepted.Empty() {
		return true
	}
	return accepted.Contains(output)
}
