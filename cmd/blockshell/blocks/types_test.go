package blocks

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsCompatible(t *testing.T) {
	tests := []struct {
		name     string
		output   TypeName
		accepted TypeSet
		want     bool
	}{
		{"statement never fits untyped socket", TypeNone, AnyType(), false},
		{"statement never fits typed socket", TypeNone, NewTypeSet(TypeNumber), false},
		{"untyped socket takes number", TypeNumber, AnyType(), true},
		{"untyped socket takes vector", TypeVector, AnyType(), true},
		{"exact match", TypeColour, NewTypeSet(TypeColour), true},
		{"no widening vector to colour", TypeVector, NewTypeSet(TypeColour), false},
		{"no widening colour to vector", TypeColour, NewTypeSet(TypeVector), false},
		{"member of larger set", TypeString, NewTypeSet(TypeNumber, TypeString), true},
		{"not a member", TypeBoolean, NewTypeSet(TypeNumber, TypeString), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCompatible(tt.output, tt.accepted))
		})
	}
}

func TestIsCompatible_EveryTypeFitsEmptySet(t *testing.T) {
	for _, typ := range Types() {
		assert.True(t, IsCompatible(typ, AnyType()), "type %s", typ)
	}
}

func TestParseTypeName(t *testing.T) {
	typ, err := ParseTypeName("Colour")
	require.NoError(t, err)
	assert.Equal(t, TypeColour, typ)

	_, err = ParseTypeName("colour")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownType))

	_, err = ParseTypeName("")
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestTypeSet(t *testing.T) {
	s := NewTypeSet(TypeNumber, TypeNumber, TypeString)
	assert.Equal(t, []TypeName{TypeNumber, TypeString}, s.Members())
	assert.Equal(t, "Number|String", s.String())
	assert.Equal(t, "any", AnyType().String())

	members := s.Members()
	members[0] = TypeVector
	assert.True(t, s.Contains(TypeNumber), "Members must return a copy")
}

func TestTypeNameValid(t *testing.T) {
	assert.False(t, TypeNone.Valid())
	assert.False(t, TypeName("Texture").Valid())
	for _, typ := range Types() {
		assert.True(t, typ.Valid())
	}
}
